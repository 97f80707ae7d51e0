package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	UID           string    `gorm:"size:36;uniqueIndex;not null" json:"id"`
	StudentID     string    `gorm:"size:20;uniqueIndex;not null" json:"student_id"` // roll number shown on receipts
	FullName      string    `gorm:"size:100;not null" json:"full_name"`
	Class         string    `gorm:"size:20;not null" json:"class"`
	Section       string    `gorm:"size:10" json:"section"`
	ParentName    string    `gorm:"size:100" json:"parent_name"`
	ParentContact string    `gorm:"size:15" json:"parent_contact"`
	AdmissionDate time.Time `json:"admission_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *Student) BeforeCreate(*gorm.DB) error {
	if s.UID == "" {
		s.UID = uuid.NewString()
	}
	if s.AdmissionDate.IsZero() {
		s.AdmissionDate = time.Now()
	}
	return nil
}
