package model

import "time"

// StaffStatus is the board label of a staff row. It is derived, never stored.
type StaffStatus string

const (
	StaffAvailable StaffStatus = "available"
	StaffOffline   StaffStatus = "offline"
	StaffAssigned  StaffStatus = "assigned"
)

// Staff is one staff member's row for a single operating day.
type Staff struct {
	ID             int64      `gorm:"primaryKey" json:"station_staff_id"`
	StationID      int64      `gorm:"not null;index:idx_station_staff_day" json:"station_id"`
	StaffName      string     `gorm:"size:128;not null" json:"staff_name"`
	StaffType      string     `gorm:"size:64" json:"staff_type"`
	WorkStartTime  string     `gorm:"size:8" json:"work_start_time"`
	WorkEndTime    string     `gorm:"size:8" json:"work_end_time"`
	BreakStartTime string     `gorm:"size:8" json:"break_start_time"`
	BreakEndTime   string     `gorm:"size:8" json:"break_end_time"`
	WorkDate       string     `gorm:"size:10;not null;index:idx_station_staff_day" json:"work_date"`
	IsActive       bool       `gorm:"not null" json:"is_active"`
	AssignedRoomID *int64     `gorm:"index" json:"assigned_room_id"`
	AssignedAt     *time.Time `json:"assigned_at"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for Staff model
func (Staff) TableName() string {
	return "station_staff"
}

// Status computes the board label from the active flag and the room pointer.
func (s Staff) Status() StaffStatus {
	if !s.IsActive {
		return StaffOffline
	}
	if s.AssignedRoomID != nil {
		return StaffAssigned
	}
	return StaffAvailable
}
