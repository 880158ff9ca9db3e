package model

import "time"

// RoomStaffAssignment binds a staff row to a room for one work date.
// At most one row per (StationStaffID, WorkDate) is active.
type RoomStaffAssignment struct {
	ID             int64      `gorm:"primaryKey" json:"assignment_id"`
	StationStaffID int64      `gorm:"not null;index:idx_rsa_staff_day" json:"station_staff_id"`
	RoomID         int64      `gorm:"not null;index:idx_rsa_room_day" json:"room_id"`
	WorkDate       string     `gorm:"size:10;not null;index:idx_rsa_staff_day;index:idx_rsa_room_day" json:"work_date"`
	IsActive       bool       `gorm:"not null" json:"is_active"`
	AssignedAt     time.Time  `gorm:"not null" json:"assigned_at"`
	DeactivatedAt  *time.Time `json:"deactivated_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

// DoctorAssignment binds a doctor to a room for one work date. Several doctors may share a room.
type DoctorAssignment struct {
	ID         int64     `gorm:"primaryKey" json:"assignment_id"`
	RoomID     int64     `gorm:"not null;index:idx_rda_room_day" json:"room_id"`
	DoctorID   int64     `gorm:"not null;index" json:"doctor_id"`
	WorkDate   string    `gorm:"size:10;not null;index:idx_rda_room_day" json:"work_date"`
	IsActive   bool      `gorm:"not null" json:"is_active"`
	AssignedAt time.Time `gorm:"not null" json:"assigned_at"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for RoomStaffAssignment model
func (RoomStaffAssignment) TableName() string {
	return "room_staff_assignments"
}

// TableName specifies the table name for DoctorAssignment model
func (DoctorAssignment) TableName() string {
	return "room_doctor_assignments"
}
