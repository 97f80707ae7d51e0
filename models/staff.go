package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Staff struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	UID         string    `gorm:"size:36;uniqueIndex;not null" json:"id"`
	StaffID     string    `gorm:"size:20;uniqueIndex;not null" json:"staff_id"`
	FullName    string    `gorm:"size:100;not null" json:"full_name"`
	Designation string    `gorm:"size:50;not null" json:"designation"`
	Department  string    `gorm:"size:50" json:"department"`
	Email       string    `gorm:"size:100" json:"email"`
	Phone       string    `gorm:"size:15" json:"phone"`
	Salary      float64   `gorm:"not null" json:"salary"`
	JoiningDate time.Time `json:"joining_date"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Staff) BeforeCreate(*gorm.DB) error {
	if s.UID == "" {
		s.UID = uuid.NewString()
	}
	if s.JoiningDate.IsZero() {
		s.JoiningDate = time.Now()
	}
	return nil
}
