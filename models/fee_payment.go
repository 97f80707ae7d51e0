package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Accepted payment methods for fee payments.
var FeePaymentMethods = []string{"Cash", "Card", "UPI", "Net Banking", "Cheque"}

type FeePayment struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	UID           string    `gorm:"size:36;uniqueIndex;not null" json:"id"`
	StudentUID    string    `gorm:"size:36;not null;index" json:"student_id"` // references Student.UID, resolved on read
	Amount        float64   `gorm:"not null" json:"amount"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `gorm:"size:20;not null" json:"payment_method"`
	FeeType       string    `gorm:"size:50;not null" json:"fee_type"`
	AcademicYear  string    `gorm:"size:20;not null" json:"academic_year"`
	ReceiptNumber string    `gorm:"size:50;uniqueIndex;not null" json:"receipt_number"`
	Class         string    `gorm:"size:20" json:"class"` // snapshot of the student's class at payment time
	CreatedBy     string    `gorm:"size:36" json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

func (p *FeePayment) BeforeCreate(*gorm.DB) error {
	if p.UID == "" {
		p.UID = uuid.NewString()
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = time.Now()
	}
	return nil
}
