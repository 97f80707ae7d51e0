package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayrollBeforeSaveDerivesNet(t *testing.T) {
	p := Payroll{BasicSalary: 25000, Allowances: 3000, Deductions: 2000, NetSalary: 999999}
	require.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, 26000.0, p.NetSalary)
}

func TestPayrollBeforeCreateDefaults(t *testing.T) {
	p := Payroll{}
	require.NoError(t, p.BeforeCreate(nil))
	assert.NotEmpty(t, p.UID)
	assert.Equal(t, PayrollStatusPending, p.PaymentStatus)

	// an explicit uid is kept
	q := Payroll{UID: "fixed", PaymentStatus: PayrollStatusPaid}
	require.NoError(t, q.BeforeCreate(nil))
	assert.Equal(t, "fixed", q.UID)
	assert.Equal(t, PayrollStatusPaid, q.PaymentStatus)
}
