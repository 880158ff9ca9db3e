package model

import "time"

// PatientQueueEntry belongs to the waiting-list collaborator; this service only purges old rows.
type PatientQueueEntry struct {
	ID          int64     `gorm:"primaryKey"`
	StationID   int64     `gorm:"not null;index"`
	RoomID      *int64    `gorm:"index"`
	PatientName string    `gorm:"size:128"`
	QueueNumber int       `gorm:"not null"`
	QueueDate   string    `gorm:"size:10;not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for PatientQueueEntry model
func (PatientQueueEntry) TableName() string {
	return "patient_queue"
}
