package model

import (
	"fmt"
	"time"
)

// Room is a physical unit owned by exactly one station.
type Room struct {
	ID          int64     `gorm:"primaryKey" json:"room_id"`
	StationID   int64     `gorm:"not null;uniqueIndex:idx_rooms_station_number" json:"station_id"`
	RoomNumber  string    `gorm:"size:64;not null;uniqueIndex:idx_rooms_station_number" json:"room_number"`
	RoomName    string    `gorm:"size:128;not null" json:"room_name"`
	MaxPatients int       `gorm:"not null;default:0" json:"max_patients"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// DefaultRoomNumber is the label given to the n-th room of a station when none is supplied.
func DefaultRoomNumber(n int) string {
	return fmt.Sprintf("Room %d", n)
}
