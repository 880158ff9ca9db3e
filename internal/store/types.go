package store

import (
	"time"

	"station-board-backend/internal/model"
)

// CreateRoomInput carries the fields of a new room. RoomNumber may be empty.
type CreateRoomInput struct {
	StationID   int64
	RoomName    string
	RoomNumber  string
	MaxPatients int
}

// AssignInput describes one staff-to-room assignment request.
type AssignInput struct {
	StaffID  int64
	RoomID   int64
	WorkDate string
	Capacity int
	Now      time.Time
}

// RoomLoad is a room together with today's staff occupancy.
type RoomLoad struct {
	model.Room
	CurrentStaffCount int64 `json:"current_staff_count"`
	Capacity          int   `json:"capacity"`
	IsAvailable       bool  `json:"is_available"`
}

// StationOrder is one row of a floor's station listing.
type StationOrder struct {
	StationID    int64  `json:"station_id"`
	StationName  string `json:"station_name"`
	DisplayOrder *int   `json:"display_order"`
	Position     int    `json:"position"`
}

// OrderEntry is a requested display position for one station.
type OrderEntry struct {
	StationID     int64 `json:"station_id"`
	OrderPosition int   `json:"order_position"`
}

// SaveOrderResult reports the per-station outcome of a batch order save.
type SaveOrderResult struct {
	Updated int     `json:"updated"`
	Skipped int     `json:"skipped"`
	Failed  []int64 `json:"failed,omitempty"`
}

// ResetCounts reports what one day-boundary reset removed or cleared.
type ResetCounts struct {
	DoctorAssignments int64 `json:"doctor_assignments_deleted"`
	StaffAssignments  int64 `json:"staff_assignments_deleted"`
	Staff             int64 `json:"staff_deleted"`
	PatientQueue      int64 `json:"patient_queue_deleted"`
	StalePointers     int64 `json:"staff_pointers_cleared"`
}

// Total sums every category.
func (c ResetCounts) Total() int64 {
	return c.DoctorAssignments + c.StaffAssignments + c.Staff + c.PatientQueue + c.StalePointers
}

// ImportResult reports what a roster import created.
type ImportResult struct {
	Created  int
	Stations []int64
}

// RosterItem is a single staff record from the upstream roster API.
type RosterItem struct {
	StationID      int64  `json:"stationId"`
	StaffName      string `json:"staffName"`
	StaffType      string `json:"staffType"`
	WorkStartTime  string `json:"workStartTime"`
	WorkEndTime    string `json:"workEndTime"`
	BreakStartTime string `json:"breakStartTime"`
	BreakEndTime   string `json:"breakEndTime"`
}
