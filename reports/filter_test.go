package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shuja06/School-ERP/models"
)

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2024-04-01", "2024-04-30")
	require.NoError(t, err)
	assert.Equal(t, date("2024-04-01"), r.Start)
	assert.Equal(t, date("2024-04-30"), r.End)

	r, err = ParseDateRange("", "")
	require.NoError(t, err)
	assert.True(t, r.IsZero())
}

func TestParseDateRangeErrors(t *testing.T) {
	_, err := ParseDateRange("2024-04-01", "")
	assert.ErrorIs(t, err, ErrPartialDateRange)

	_, err = ParseDateRange("", "2024-04-30")
	assert.ErrorIs(t, err, ErrPartialDateRange)

	_, err = ParseDateRange("01/04/2024", "2024-04-30")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDateRange("2024-04-30", "2024-04-01")
	assert.ErrorIs(t, err, ErrInvertedRange)
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Start: date("2024-04-01"), End: date("2024-04-30")}

	// boundaries are inclusive
	assert.True(t, r.Contains(date("2024-04-01")))
	assert.True(t, r.Contains(date("2024-04-30")))
	assert.True(t, r.Contains(date("2024-04-15")))
	assert.False(t, r.Contains(date("2024-03-31")))
	assert.False(t, r.Contains(date("2024-05-01")))

	assert.True(t, DateRange{}.Contains(date("1999-01-01")))
}

func TestFilterPayments(t *testing.T) {
	payments := []models.FeePayment{
		{ReceiptNumber: "R1", PaymentDate: date("2024-04-10")},
		{ReceiptNumber: "R2", PaymentDate: date("2024-05-10")},
		{ReceiptNumber: "R3", CreatedAt: date("2024-04-20")}, // no payment date, falls back to created_at
	}
	r := DateRange{Start: date("2024-04-01"), End: date("2024-04-30")}

	got := FilterPayments(payments, r)
	require.Len(t, got, 2)
	assert.Equal(t, "R1", got[0].ReceiptNumber)
	assert.Equal(t, "R3", got[1].ReceiptNumber)

	assert.NotNil(t, FilterPayments(nil, r))
}

func TestFilterExpenses(t *testing.T) {
	expenses := []models.Expense{
		{Category: "A", ExpenseDate: date("2024-04-10")},
		{Category: "B", ExpenseDate: date("2024-06-10")},
	}
	r := DateRange{Start: date("2024-04-01"), End: date("2024-04-30")}

	got := FilterExpenses(expenses, r)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Category)
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Apr-2024", monthLabel(time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Dec-2023", monthLabel(time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)))
}
