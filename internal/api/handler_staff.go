package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"station-board-backend/internal/model"
)

type toggleRequest struct {
	StaffID int64 `json:"station_staff_id" binding:"required"`
}

// ToggleStaff handles POST /api/staff/toggle.
func (h *Handler) ToggleStaff(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "station_staff_id is required")
		return
	}
	res, err := h.engine.ToggleActive(c.Request.Context(), req.StaffID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type addStaffRequest struct {
	StationID      int64  `json:"station_id" binding:"required"`
	StaffName      string `json:"staff_name" binding:"required"`
	StaffType      string `json:"staff_type"`
	WorkStartTime  string `json:"work_start_time"`
	WorkEndTime    string `json:"work_end_time"`
	BreakStartTime string `json:"break_start_time"`
	BreakEndTime   string `json:"break_end_time"`
	WorkDate       string `json:"work_date"`
}

// AddStaff handles POST /api/staff.
func (h *Handler) AddStaff(c *gin.Context) {
	var req addStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "station_id and staff_name are required")
		return
	}
	staff := &model.Staff{
		StationID:      req.StationID,
		StaffName:      req.StaffName,
		StaffType:      req.StaffType,
		WorkStartTime:  req.WorkStartTime,
		WorkEndTime:    req.WorkEndTime,
		BreakStartTime: req.BreakStartTime,
		BreakEndTime:   req.BreakEndTime,
		WorkDate:       req.WorkDate,
	}
	if err := h.engine.AddStaff(c.Request.Context(), staff); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"station_staff_id": staff.ID, "work_date": staff.WorkDate, "status": staff.Status()})
}

// StationStaff handles GET /api/stations/:station_id/staff. With
// ?available=true the list is reduced to active staff, one per name.
func (h *Handler) StationStaff(c *gin.Context) {
	stationID, ok := h.pathID(c, "station_id")
	if !ok {
		return
	}
	availableOnly, _ := strconv.ParseBool(c.DefaultQuery("available", "false"))

	ctx := c.Request.Context()
	var err error
	var staff any
	if availableOnly {
		staff, err = h.engine.AvailableStaff(ctx, stationID)
	} else {
		staff, err = h.engine.StaffBoard(ctx, stationID)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"station_id": stationID, "work_date": h.engine.Today(), "staff": staff})
}
