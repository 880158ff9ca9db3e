package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"station-board-backend/internal/db/dbtest"
	"station-board-backend/internal/model"
)

const (
	today     = "2026-10-18"
	yesterday = "2026-10-17"
)

var testNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	return NewGormStore(dbtest.New(t), nil)
}

func seedStation(t *testing.T, s Store, id int64, floor string) *model.Station {
	t.Helper()
	st := &model.Station{ID: id, Name: "Station", Floor: floor, Department: "Internal Medicine"}
	require.NoError(t, s.CreateStation(context.Background(), st))
	return st
}

func seedRoom(t *testing.T, s Store, stationID int64) *model.Room {
	t.Helper()
	room, err := s.CreateRoom(context.Background(), CreateRoomInput{StationID: stationID, RoomName: "Exam"})
	require.NoError(t, err)
	return room
}

func seedStaff(t *testing.T, s Store, stationID int64, name, workDate string) *model.Staff {
	t.Helper()
	st := &model.Staff{StationID: stationID, StaffName: name, StaffType: "nurse", WorkDate: workDate}
	require.NoError(t, s.AddStaff(context.Background(), st))
	return st
}

func assign(s Store, staffID, roomID int64, workDate string) (*model.RoomStaffAssignment, error) {
	return s.AssignStaff(context.Background(), AssignInput{
		StaffID:  staffID,
		RoomID:   roomID,
		WorkDate: workDate,
		Capacity: 3,
		Now:      testNow,
	})
}
