package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type assignRequest struct {
	StaffID  int64  `json:"station_staff_id" binding:"required"`
	RoomID   int64  `json:"room_id" binding:"required"`
	WorkDate string `json:"work_date"`
}

// Assign handles POST /api/assignments.
func (h *Handler) Assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "station_staff_id and room_id are required")
		return
	}
	a, err := h.engine.Assign(c.Request.Context(), req.StaffID, req.RoomID, req.WorkDate)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

type cancelRequest struct {
	StaffID  int64  `json:"station_staff_id" binding:"required"`
	WorkDate string `json:"work_date"`
}

// CancelAssignment handles POST /api/assignments/cancel.
func (h *Handler) CancelAssignment(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "station_staff_id is required")
		return
	}
	h.cancel(c, req.StaffID, req.WorkDate)
}

// DeleteAssignment handles DELETE /api/assignments/:station_staff_id[?work_date=].
func (h *Handler) DeleteAssignment(c *gin.Context) {
	staffID, ok := h.pathID(c, "station_staff_id")
	if !ok {
		return
	}
	h.cancel(c, staffID, c.Query("work_date"))
}

func (h *Handler) cancel(c *gin.Context, staffID int64, workDate string) {
	a, err := h.engine.Cancel(c.Request.Context(), staffID, workDate)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

type doctorAssignmentRequest struct {
	DoctorID int64 `json:"doctor_id" binding:"required"`
	RoomID   int64 `json:"room_id" binding:"required"`
}

// AssignDoctor handles POST /api/doctor-assignments.
func (h *Handler) AssignDoctor(c *gin.Context) {
	var req doctorAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "doctor_id and room_id are required")
		return
	}
	a, err := h.engine.AssignDoctor(c.Request.Context(), req.DoctorID, req.RoomID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// UnassignDoctor handles POST /api/doctor-assignments/cancel.
func (h *Handler) UnassignDoctor(c *gin.Context) {
	var req doctorAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "doctor_id and room_id are required")
		return
	}
	a, err := h.engine.UnassignDoctor(c.Request.Context(), req.DoctorID, req.RoomID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}
