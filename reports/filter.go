package reports

import (
	"errors"
	"time"

	"github.com/Shuja06/School-ERP/models"
)

const dateLayout = "2006-01-02"

// Group keys that would otherwise be empty fall into this bucket so
// breakdown sums stay consistent with report totals.
const UnknownKey = "Unknown"

var (
	ErrPartialDateRange = errors.New("startDate and endDate must be supplied together")
	ErrInvalidDate      = errors.New("dates must be formatted as YYYY-MM-DD")
	ErrInvertedRange    = errors.New("endDate is before startDate")
)

// DateRange is an inclusive [Start, End] window. The zero value matches
// every record.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange builds a range from the startDate/endDate query values.
// Both empty means no filtering; supplying only one of them is an error.
func ParseDateRange(start, end string) (DateRange, error) {
	if start == "" && end == "" {
		return DateRange{}, nil
	}
	if start == "" || end == "" {
		return DateRange{}, ErrPartialDateRange
	}
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return DateRange{}, ErrInvalidDate
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return DateRange{}, ErrInvalidDate
	}
	if e.Before(s) {
		return DateRange{}, ErrInvertedRange
	}
	return DateRange{Start: s, End: e}, nil
}

func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r DateRange) Contains(t time.Time) bool {
	if r.IsZero() {
		return true
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// monthLabel buckets a date as e.g. "Apr-2024". The layout is fixed so
// grouping never depends on the host locale.
func monthLabel(t time.Time) string {
	return t.Format("Jan-2006")
}

// paymentDate is the date a payment is bucketed and filtered by, falling
// back to the creation timestamp when no payment date was recorded.
func paymentDate(p models.FeePayment) time.Time {
	if !p.PaymentDate.IsZero() {
		return p.PaymentDate
	}
	return p.CreatedAt
}

func expenseDate(e models.Expense) time.Time {
	if !e.ExpenseDate.IsZero() {
		return e.ExpenseDate
	}
	return e.CreatedAt
}

// FilterPayments returns the payments whose date falls within the range.
// The result is never nil.
func FilterPayments(payments []models.FeePayment, r DateRange) []models.FeePayment {
	out := []models.FeePayment{}
	for _, p := range payments {
		if r.Contains(paymentDate(p)) {
			out = append(out, p)
		}
	}
	return out
}

// FilterExpenses returns the expenses whose date falls within the range.
// The result is never nil.
func FilterExpenses(expenses []models.Expense, r DateRange) []models.Expense {
	out := []models.Expense{}
	for _, e := range expenses {
		if r.Contains(expenseDate(e)) {
			out = append(out, e)
		}
	}
	return out
}
