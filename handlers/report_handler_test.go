package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Shuja06/School-ERP/models"
)

func TestDashboardReport(t *testing.T) {
	db := setupDB(t)
	h := NewReportHandler()

	for _, s := range []models.Student{
		{StudentID: "STU001", FullName: "A", Class: "5"},
		{StudentID: "STU002", FullName: "B", Class: "5"},
	} {
		require.NoError(t, db.Create(&s).Error)
	}
	require.NoError(t, db.Create(&models.Staff{StaffID: "EMP001", FullName: "T", Designation: "Teacher", Salary: 25000}).Error)
	require.NoError(t, db.Create(&models.FeePayment{StudentUID: "x", Amount: 5000, ReceiptNumber: "R1"}).Error)
	require.NoError(t, db.Create(&models.Expense{Category: "Utilities", Description: "power", Amount: 2000}).Error)

	rec, body := get(t, h.Dashboard, "/api/v1/reports/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, float64(2), body["totalStudents"])
	assert.Equal(t, float64(1), body["totalStaff"])
	assert.Equal(t, float64(5000), body["totalRevenue"])
	assert.Equal(t, float64(2000), body["totalExpenses"])
	assert.Equal(t, float64(3000), body["netIncome"])
}

func TestFeeCollectionReportFiltersByRange(t *testing.T) {
	db := setupDB(t)
	h := NewReportHandler()

	require.NoError(t, db.Create(&models.FeePayment{StudentUID: "s1", Amount: 1000, ReceiptNumber: "R1", PaymentMethod: "Cash", FeeType: "Tuition", PaymentDate: date("2024-04-10")}).Error)
	require.NoError(t, db.Create(&models.FeePayment{StudentUID: "s1", Amount: 500, ReceiptNumber: "R2", PaymentMethod: "UPI", FeeType: "Transport", PaymentDate: date("2024-06-10")}).Error)

	rec, body := get(t, h.FeeCollection, "/api/v1/reports/fee-collection?startDate=2024-04-01&endDate=2024-04-30")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, float64(1000), body["totalCollection"])
	assert.Equal(t, float64(1), body["totalTransactions"])
}

func TestFeeCollectionReportInvalidRange(t *testing.T) {
	setupDB(t)
	h := NewReportHandler()

	for _, target := range []string{
		"/api/v1/reports/fee-collection?startDate=2024-04-01",
		"/api/v1/reports/fee-collection?startDate=bad&endDate=2024-04-30",
		"/api/v1/reports/fee-collection?startDate=2024-04-30&endDate=2024-04-01",
	} {
		rec, body := get(t, h.FeeCollection, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "INVALID_DATE_RANGE", body["error"], target)
	}
}

func TestOutstandingDuesReport(t *testing.T) {
	db := setupDB(t)
	h := NewReportHandler()

	student := models.Student{StudentID: "STU001", FullName: "Asha Verma", Class: "5"}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&models.FeeStructure{Class: "5", FeeType: "Tuition", Amount: 20000, AcademicYear: "2024-25"}).Error)
	require.NoError(t, db.Create(&models.FeePayment{StudentUID: student.UID, Amount: 12000, ReceiptNumber: "R1"}).Error)

	rec, body := get(t, h.OutstandingDues, "/api/v1/reports/outstanding-dues")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, float64(8000), body["totalOutstanding"])
	assert.Equal(t, float64(1), body["totalStudentsWithDues"])
	dues := body["studentsWithDues"].([]any)
	require.Len(t, dues, 1)
	assert.Equal(t, "Partial", dues[0].(map[string]any)["status"])
}

func TestPayrollReportMonthFilter(t *testing.T) {
	db := setupDB(t)
	h := NewReportHandler()

	staff := models.Staff{StaffID: "EMP001", FullName: "Meena Iyer", Designation: "Teacher", Department: "Science", Salary: 30000}
	require.NoError(t, db.Create(&staff).Error)
	require.NoError(t, db.Create(&models.Payroll{StaffUID: staff.UID, Month: "2024-05", BasicSalary: 30000, PaymentStatus: models.PayrollStatusPaid}).Error)
	require.NoError(t, db.Create(&models.Payroll{StaffUID: staff.UID, Month: "2024-06", BasicSalary: 30000}).Error)

	rec, body := get(t, h.Payroll, "/api/v1/reports/payroll?month=2024-05")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, float64(30000), body["totalPayroll"])
	assert.Equal(t, float64(1), body["totalStaff"])
	assert.Equal(t, float64(30000), body["departmentBreakdown"].(map[string]any)["Science"])
}

func TestIncomeExpenseReport(t *testing.T) {
	db := setupDB(t)
	h := NewReportHandler()

	require.NoError(t, db.Create(&models.FeePayment{StudentUID: "s1", Amount: 1000, ReceiptNumber: "R1", PaymentDate: date("2024-04-10")}).Error)
	require.NoError(t, db.Create(&models.Expense{Category: "Utilities", Description: "power", Amount: 250, ExpenseDate: date("2024-04-15")}).Error)

	rec, body := get(t, h.IncomeExpense, "/api/v1/reports/income-expense")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, float64(1000), body["totalIncome"])
	assert.Equal(t, float64(250), body["totalExpenses"])
	assert.Equal(t, float64(750), body["netAmount"])
	assert.Equal(t, float64(75), body["profitMargin"])
}

func TestExportFeeCollection(t *testing.T) {
	db := setupDB(t)
	h := NewReportHandler()

	require.NoError(t, db.Create(&models.FeePayment{StudentUID: "s1", Amount: 1000, ReceiptNumber: "RCP-001", PaymentMethod: "Cash", FeeType: "Tuition", AcademicYear: "2024-25", PaymentDate: date("2024-04-10")}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/fee-collection/export", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, h.ExportFeeCollection(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "fee-collection.xlsx")

	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	assert.Contains(t, wb.GetSheetList(), "Summary")
	assert.Contains(t, wb.GetSheetList(), "Payments")

	got, err := wb.GetCellValue("Payments", "A2")
	require.NoError(t, err)
	assert.Equal(t, "RCP-001", got)
}
