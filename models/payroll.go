package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PayrollStatusPending    = "pending"
	PayrollStatusProcessing = "processing"
	PayrollStatusPaid       = "paid"
)

// Accepted payment methods for salary payouts.
var PayrollPaymentMethods = []string{"Bank Transfer", "Cash", "Cheque", "UPI"}

type Payroll struct {
	ID            uint       `gorm:"primaryKey" json:"-"`
	UID           string     `gorm:"size:36;uniqueIndex;not null" json:"id"`
	StaffUID      string     `gorm:"size:36;not null;uniqueIndex:idx_payroll_staff_month" json:"staff_id"` // references Staff.UID
	Month         string     `gorm:"size:20;not null;uniqueIndex:idx_payroll_staff_month" json:"month"`    // "2024-05" or free text
	BasicSalary   float64    `gorm:"not null" json:"basic_salary"`
	Allowances    float64    `gorm:"default:0" json:"allowances"`
	Deductions    float64    `gorm:"default:0" json:"deductions"`
	NetSalary     float64    `gorm:"not null" json:"net_salary"`
	PaymentStatus string     `gorm:"size:20;default:pending" json:"payment_status"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	PaymentMethod string     `gorm:"size:20" json:"payment_method,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (p *Payroll) BeforeCreate(*gorm.DB) error {
	if p.UID == "" {
		p.UID = uuid.NewString()
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = PayrollStatusPending
	}
	return nil
}

// BeforeSave keeps net salary consistent with its inputs on every write.
// A client-supplied net_salary is always discarded.
func (p *Payroll) BeforeSave(*gorm.DB) error {
	p.NetSalary = p.BasicSalary + p.Allowances - p.Deductions
	return nil
}
