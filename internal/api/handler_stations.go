package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"station-board-backend/internal/store"
)

// ListStations handles GET /api/stations?floor=.
func (h *Handler) ListStations(c *gin.Context) {
	floor := c.Query("floor")
	if floor == "" {
		h.badRequest(c, "floor is required")
		return
	}
	stations, err := h.store.ListStations(c.Request.Context(), floor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stations)
}

// GetStationOrder handles GET /api/station-order?floor=.
func (h *Handler) GetStationOrder(c *gin.Context) {
	floor := c.Query("floor")
	order, err := h.store.GetStationOrder(c.Request.Context(), floor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"floor": floor, "stations": order})
}

type saveOrderRequest struct {
	Floor    string             `json:"floor" binding:"required"`
	Stations []store.OrderEntry `json:"stations" binding:"required"`
}

// SaveStationOrder handles POST /api/station-order.
func (h *Handler) SaveStationOrder(c *gin.Context) {
	var req saveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "floor and stations are required")
		return
	}
	res, err := h.store.SaveStationOrder(c.Request.Context(), req.Floor, req.Stations)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type resetOrderRequest struct {
	Floor string `json:"floor" binding:"required"`
}

// ResetStationOrder handles POST /api/station-order/reset.
func (h *Handler) ResetStationOrder(c *gin.Context) {
	var req resetOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "floor is required")
		return
	}
	n, err := h.store.ResetStationOrder(c.Request.Context(), req.Floor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"floor": req.Floor, "reset": n})
}

// ListProcedures handles GET /api/procedures?department=.
func (h *Handler) ListProcedures(c *gin.Context) {
	procedures, err := h.store.ListProcedures(c.Request.Context(), c.Query("department"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, procedures)
}
