package model

import "time"

// Station groups the rooms one department operates on a floor.
type Station struct {
	ID         int64  `gorm:"primaryKey" json:"station_id"`
	Name       string `gorm:"size:128;not null" json:"station_name"`
	Floor      string `gorm:"size:32;not null;index" json:"floor"`
	Department string `gorm:"size:128" json:"department"`
	// RoomCount only ever grows; deleting a room does not decrement it.
	RoomCount    int       `gorm:"not null;default:0" json:"room_count"`
	DisplayOrder *int      `json:"display_order"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
