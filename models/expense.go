package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Expense struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	UID           string    `gorm:"size:36;uniqueIndex;not null" json:"id"`
	Category      string    `gorm:"size:50;not null" json:"category"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Amount        float64   `gorm:"not null" json:"amount"`
	ExpenseDate   time.Time `json:"expense_date"`
	PaymentMethod string    `gorm:"size:20" json:"payment_method"`
	ReceiptNumber string    `gorm:"size:50" json:"receipt_number"`
	CreatedBy     string    `gorm:"size:36" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (e *Expense) BeforeCreate(*gorm.DB) error {
	if e.UID == "" {
		e.UID = uuid.NewString()
	}
	if e.ExpenseDate.IsZero() {
		e.ExpenseDate = time.Now()
	}
	return nil
}
