package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Shuja06/School-ERP/models"
)

func seedStaff(t *testing.T, db *gorm.DB, n int) []models.Staff {
	t.Helper()
	out := make([]models.Staff, 0, n)
	for i := 0; i < n; i++ {
		s := models.Staff{
			StaffID:     fmt.Sprintf("EMP%03d", i+1),
			FullName:    fmt.Sprintf("Staff %d", i+1),
			Designation: "Teacher",
			Department:  "Science",
			Salary:      25000,
			IsActive:    true,
		}
		require.NoError(t, db.Create(&s).Error)
		out = append(out, s)
	}
	return out
}

func TestPayrollCreateDerivesNetSalary(t *testing.T) {
	db := setupDB(t)
	staff := seedStaff(t, db, 1)
	h := NewPayrollHandler()

	body := fmt.Sprintf(`{"staff_id":%q,"month":"2024-05","basic_salary":25000,"allowances":3000,"deductions":2000}`, staff[0].UID)
	c, rec := newRequest(t, http.MethodPost, "/api/v1/payroll", body)
	require.NoError(t, h.Create(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	var saved models.Payroll
	require.NoError(t, db.First(&saved, "staff_uid = ?", staff[0].UID).Error)
	assert.Equal(t, 26000.0, saved.NetSalary)
	assert.Equal(t, models.PayrollStatusPending, saved.PaymentStatus)
}

func TestPayrollCreateRejectsDuplicateMonth(t *testing.T) {
	db := setupDB(t)
	staff := seedStaff(t, db, 1)
	h := NewPayrollHandler()

	body := fmt.Sprintf(`{"staff_id":%q,"month":"2024-05","basic_salary":25000}`, staff[0].UID)
	c, rec := newRequest(t, http.MethodPost, "/api/v1/payroll", body)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newRequest(t, http.MethodPost, "/api/v1/payroll", body)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "PAYROLL_EXISTS", decodeBody(t, rec)["error"])
}

func TestPayrollUpdateIgnoresClientNetSalary(t *testing.T) {
	db := setupDB(t)
	staff := seedStaff(t, db, 1)
	h := NewPayrollHandler()

	rec1 := models.Payroll{StaffUID: staff[0].UID, Month: "2024-05", BasicSalary: 25000, Allowances: 1000}
	require.NoError(t, db.Create(&rec1).Error)

	c, rec := newRequest(t, http.MethodPut, "/api/v1/payroll/"+rec1.UID, `{"basic_salary":26000,"allowances":0,"net_salary":999999}`)
	c.SetParamNames("id")
	c.SetParamValues(rec1.UID)
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var saved models.Payroll
	require.NoError(t, db.First(&saved, "uid = ?", rec1.UID).Error)
	assert.Equal(t, 26000.0, saved.NetSalary)
}

func TestPayrollBulk(t *testing.T) {
	db := setupDB(t)
	staff := seedStaff(t, db, 3)
	h := NewPayrollHandler()

	// one staff member already has a record for the month
	existing := models.Payroll{StaffUID: staff[0].UID, Month: "2024-05", BasicSalary: 25000}
	require.NoError(t, db.Create(&existing).Error)

	c, rec := newRequest(t, http.MethodPost, "/api/v1/payroll/bulk", `{"month":"2024-05"}`)
	require.NoError(t, h.Bulk(c))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["created"])
	assert.NotContains(t, body, "errors")

	var count int64
	require.NoError(t, db.Model(&models.Payroll{}).Where("month = ?", "2024-05").Count(&count).Error)
	assert.Equal(t, int64(3), count)

	var created models.Payroll
	require.NoError(t, db.First(&created, "staff_uid = ? AND month = ?", staff[1].UID, "2024-05").Error)
	assert.Equal(t, 25000.0, created.BasicSalary)
	assert.Equal(t, 25000.0, created.NetSalary)
	assert.Equal(t, models.PayrollStatusPending, created.PaymentStatus)
}

func TestPayrollBulkRerunCreatesNothing(t *testing.T) {
	db := setupDB(t)
	seedStaff(t, db, 3)
	h := NewPayrollHandler()

	c, rec := newRequest(t, http.MethodPost, "/api/v1/payroll/bulk", `{"month":"2024-06"}`)
	require.NoError(t, h.Bulk(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(3), decodeBody(t, rec)["created"])

	c, rec = newRequest(t, http.MethodPost, "/api/v1/payroll/bulk", `{"month":"2024-06"}`)
	require.NoError(t, h.Bulk(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(0), decodeBody(t, rec)["created"])

	var count int64
	require.NoError(t, db.Model(&models.Payroll{}).Where("month = ?", "2024-06").Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestPayrollDeleteMissing(t *testing.T) {
	setupDB(t)
	h := NewPayrollHandler()

	c, rec := newRequest(t, http.MethodDelete, "/api/v1/payroll/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
