package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"station-board-backend/internal/store"
)

type createRoomRequest struct {
	StationID   int64  `json:"station_id" binding:"required"`
	RoomName    string `json:"room_name" binding:"required"`
	RoomNumber  string `json:"room_number"`
	MaxPatients int    `json:"max_patients"`
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "station_id and room_name are required")
		return
	}

	room, err := h.engine.CreateRoom(c.Request.Context(), store.CreateRoomInput{
		StationID:   req.StationID,
		RoomName:    req.RoomName,
		RoomNumber:  req.RoomNumber,
		MaxPatients: req.MaxPatients,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// DeleteRoom handles DELETE /api/rooms/:room_id.
func (h *Handler) DeleteRoom(c *gin.Context) {
	roomID, ok := h.pathID(c, "room_id")
	if !ok {
		return
	}
	room, err := h.engine.DeleteRoom(c.Request.Context(), roomID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// AvailableRoomsResponse is a station's rooms with today's load.
type AvailableRoomsResponse struct {
	StationID int64            `json:"station_id"`
	WorkDate  string           `json:"work_date"`
	Rooms     []store.RoomLoad `json:"rooms"`
}

// AvailableRooms handles GET /api/rooms/available?station_id=.
func (h *Handler) AvailableRooms(c *gin.Context) {
	stationID, ok := h.queryID(c, "station_id")
	if !ok {
		return
	}
	rooms, err := h.engine.AvailableRooms(c.Request.Context(), stationID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AvailableRoomsResponse{
		StationID: stationID,
		WorkDate:  h.engine.Today(),
		Rooms:     rooms,
	})
}

// RoomDoctors handles GET /api/rooms/:room_id/doctors.
func (h *Handler) RoomDoctors(c *gin.Context) {
	roomID, ok := h.pathID(c, "room_id")
	if !ok {
		return
	}
	doctors, err := h.engine.RoomDoctors(c.Request.Context(), roomID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"room_id": roomID, "work_date": h.engine.Today(), "doctors": doctors})
}
