package model

import "time"

// Doctor is a catalog entry; doctors are bound to rooms per day through DoctorAssignment.
type Doctor struct {
	ID         int64     `gorm:"primaryKey" json:"doctor_id"`
	Name       string    `gorm:"size:128;not null" json:"doctor_name"`
	Specialty  string    `gorm:"size:128" json:"specialty"`
	Department string    `gorm:"size:128;index" json:"department"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

// Procedure is read-only catalog data served to display collaborators.
type Procedure struct {
	ID         int64  `gorm:"primaryKey" json:"procedure_id"`
	Code       string `gorm:"size:32;uniqueIndex" json:"code"`
	Name       string `gorm:"size:256;not null" json:"name"`
	Department string `gorm:"size:128;index" json:"department"`
}
