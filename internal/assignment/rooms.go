package assignment

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"station-board-backend/internal/model"
	"station-board-backend/internal/store"
)

// CreateRoom adds a room to a station, numbering it when no number is given.
func (e *Engine) CreateRoom(ctx context.Context, in store.CreateRoomInput) (*model.Room, error) {
	if err := requirePositive("station_id", in.StationID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.RoomName) == "" {
		return nil, store.InvalidInput("room_name is required")
	}
	if in.MaxPatients < 0 {
		return nil, store.InvalidInput("max_patients must not be negative")
	}
	room, err := e.store.CreateRoom(ctx, in)
	if err != nil {
		return nil, err
	}
	e.logger.Info("room created",
		zap.Int64("station_id", room.StationID), zap.Int64("room_id", room.ID), zap.String("room_number", room.RoomNumber))
	e.notify(room.StationID, "room_created")
	return room, nil
}

// DeleteRoom removes a room and releases its staff and doctors.
func (e *Engine) DeleteRoom(ctx context.Context, roomID int64) (*model.Room, error) {
	if err := requirePositive("room_id", roomID); err != nil {
		return nil, err
	}
	room, err := e.store.DeleteRoom(ctx, roomID, e.now().UTC())
	if err != nil {
		return nil, err
	}
	e.logger.Info("room deleted", zap.Int64("station_id", room.StationID), zap.Int64("room_id", room.ID))
	e.notify(room.StationID, "room_deleted")
	return room, nil
}

// AvailableRooms lists a station's rooms with today's staff load.
// An unknown station yields an empty list.
func (e *Engine) AvailableRooms(ctx context.Context, stationID int64) ([]store.RoomLoad, error) {
	if err := requirePositive("station_id", stationID); err != nil {
		return nil, err
	}
	return e.store.ListRoomLoads(ctx, stationID, e.Today(), e.cfg.MaxStaffPerRoom)
}

// AssignDoctor puts a doctor in a room for today. Repeating it is a no-op.
func (e *Engine) AssignDoctor(ctx context.Context, doctorID, roomID int64) (*model.DoctorAssignment, error) {
	if err := requirePositive("doctor_id", doctorID); err != nil {
		return nil, err
	}
	if err := requirePositive("room_id", roomID); err != nil {
		return nil, err
	}
	a, err := e.store.AssignDoctor(ctx, doctorID, roomID, e.Today(), e.now().UTC())
	if err != nil {
		return nil, err
	}
	e.notifyRoom(ctx, roomID, "doctor_assigned")
	return a, nil
}

// UnassignDoctor removes a doctor from a room for today.
func (e *Engine) UnassignDoctor(ctx context.Context, doctorID, roomID int64) (*model.DoctorAssignment, error) {
	if err := requirePositive("doctor_id", doctorID); err != nil {
		return nil, err
	}
	if err := requirePositive("room_id", roomID); err != nil {
		return nil, err
	}
	a, err := e.store.UnassignDoctor(ctx, doctorID, roomID, e.Today())
	if err != nil {
		return nil, err
	}
	e.notifyRoom(ctx, roomID, "doctor_unassigned")
	return a, nil
}

// RoomDoctors lists the doctors active in a room today.
func (e *Engine) RoomDoctors(ctx context.Context, roomID int64) ([]model.DoctorAssignment, error) {
	if err := requirePositive("room_id", roomID); err != nil {
		return nil, err
	}
	return e.store.ListRoomDoctors(ctx, roomID, e.Today())
}
