package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeStructure defines the expected charge for one class + fee type in an
// academic year. It is not linked to individual students.
type FeeStructure struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	UID          string    `gorm:"size:36;uniqueIndex;not null" json:"id"`
	Class        string    `gorm:"size:20;not null" json:"class"`
	FeeType      string    `gorm:"size:50;not null" json:"fee_type"`
	Amount       float64   `gorm:"not null" json:"amount"`
	AcademicYear string    `gorm:"size:20;not null" json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (f *FeeStructure) BeforeCreate(*gorm.DB) error {
	if f.UID == "" {
		f.UID = uuid.NewString()
	}
	return nil
}
