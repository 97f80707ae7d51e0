package reports

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Shuja06/School-ERP/models"
)

// Resolver looks up entities referenced by their portable id. A missing
// referent (deleted or never existed) resolves to nil without an error;
// only storage failures return a non-nil error. Callers must treat the nil
// case as normal — e.g. a payment whose student was deleted still lists,
// with a null student block.
type Resolver interface {
	Student(id string) (*models.Student, error)
	Staff(id string) (*models.Staff, error)
}

type dbResolver struct {
	db *gorm.DB
}

// NewDBResolver returns a Resolver backed by the given gorm connection.
func NewDBResolver(db *gorm.DB) Resolver {
	return &dbResolver{db: db}
}

func (r *dbResolver) Student(id string) (*models.Student, error) {
	var s models.Student
	if err := r.db.First(&s, "uid = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *dbResolver) Staff(id string) (*models.Staff, error) {
	var s models.Staff
	if err := r.db.First(&s, "uid = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// StudentRef is the student block attached to enriched payment rows.
type StudentRef struct {
	FullName string `json:"full_name"`
	Class    string `json:"class"`
	Section  string `json:"section"`
}

// StaffRef is the staff block attached to enriched payroll rows.
type StaffRef struct {
	FullName    string `json:"full_name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

// PaymentEntry is a fee payment with its resolved student, null when the
// reference no longer resolves.
type PaymentEntry struct {
	models.FeePayment
	Students *StudentRef `json:"students"`
}

// PayrollEntry is a payroll record with its resolved staff member.
type PayrollEntry struct {
	models.Payroll
	Staff *StaffRef `json:"staff"`
}

// EnrichPayments resolves the student reference of each payment.
func EnrichPayments(payments []models.FeePayment, res Resolver) ([]PaymentEntry, error) {
	out := make([]PaymentEntry, 0, len(payments))
	for _, p := range payments {
		entry := PaymentEntry{FeePayment: p}
		st, err := res.Student(p.StudentUID)
		if err != nil {
			return nil, err
		}
		if st != nil {
			entry.Students = &StudentRef{FullName: st.FullName, Class: st.Class, Section: st.Section}
		}
		out = append(out, entry)
	}
	return out, nil
}

// EnrichPayrolls resolves the staff reference of each payroll record.
func EnrichPayrolls(payrolls []models.Payroll, res Resolver) ([]PayrollEntry, error) {
	out := make([]PayrollEntry, 0, len(payrolls))
	for _, p := range payrolls {
		entry := PayrollEntry{Payroll: p}
		st, err := res.Staff(p.StaffUID)
		if err != nil {
			return nil, err
		}
		if st != nil {
			entry.Staff = &StaffRef{FullName: st.FullName, Designation: st.Designation, Department: st.Department}
		}
		out = append(out, entry)
	}
	return out, nil
}
