package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/Shuja06/School-ERP/database"
	"github.com/Shuja06/School-ERP/models"
	"github.com/Shuja06/School-ERP/reports"
)

// ReportHandler loads the record collections a report needs and hands them
// to the aggregation functions in the reports package. A failed read aborts
// the whole report; partial data is never returned.
type ReportHandler struct{}

func NewReportHandler() *ReportHandler { return &ReportHandler{} }

func parseRange(c echo.Context) (reports.DateRange, error) {
	return reports.ParseDateRange(
		strings.TrimSpace(c.QueryParam("startDate")),
		strings.TrimSpace(c.QueryParam("endDate")),
	)
}

// GET /api/v1/reports/dashboard
func (h *ReportHandler) Dashboard(c echo.Context) error {
	var studentCount, staffCount int64
	if err := database.DB.Model(&models.Student{}).Count(&studentCount).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	if err := database.DB.Model(&models.Staff{}).Count(&staffCount).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_COUNT_FAILED"})
	}
	var payments []models.FeePayment
	if err := database.DB.Find(&payments).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var expenses []models.Expense
	if err := database.DB.Find(&expenses).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var payrolls []models.Payroll
	if err := database.DB.Find(&payrolls).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var structures []models.FeeStructure
	if err := database.DB.Find(&structures).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, reports.Dashboard(studentCount, staffCount, payments, expenses, payrolls, structures))
}

// loadFeeCollection builds the fee-collection report for the request's date
// range. On failure it writes the error response itself and reports ok=false.
func (h *ReportHandler) loadFeeCollection(c echo.Context) (reports.FeeCollectionReport, bool) {
	r, err := parseRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE_RANGE"})
		return reports.FeeCollectionReport{}, false
	}
	var payments []models.FeePayment
	if err := database.DB.Order("payment_date DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
		return reports.FeeCollectionReport{}, false
	}
	return reports.FeeCollection(reports.FilterPayments(payments, r)), true
}

// GET /api/v1/reports/fee-collection
func (h *ReportHandler) FeeCollection(c echo.Context) error {
	rep, ok := h.loadFeeCollection(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, rep)
}

// GET /api/v1/reports/outstanding-dues
func (h *ReportHandler) OutstandingDues(c echo.Context) error {
	var students []models.Student
	if err := database.DB.Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var structures []models.FeeStructure
	if err := database.DB.Find(&structures).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var payments []models.FeePayment
	if err := database.DB.Find(&payments).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, reports.OutstandingDues(students, structures, payments))
}

// GET /api/v1/reports/expenses
func (h *ReportHandler) Expenses(c echo.Context) error {
	r, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE_RANGE"})
	}
	var expenses []models.Expense
	if err := database.DB.Order("expense_date DESC").Find(&expenses).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, reports.Expenses(reports.FilterExpenses(expenses, r)))
}

// GET /api/v1/reports/payroll?month=2024-05
func (h *ReportHandler) Payroll(c echo.Context) error {
	month := strings.TrimSpace(c.QueryParam("month"))

	tx := database.DB.Model(&models.Payroll{})
	if month != "" {
		tx = tx.Where("month = ?", month)
	}
	var payrolls []models.Payroll
	if err := tx.Find(&payrolls).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	rep, err := reports.Payroll(payrolls, reports.NewDBResolver(database.DB))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rep)
}

// GET /api/v1/reports/income-expense
func (h *ReportHandler) IncomeExpense(c echo.Context) error {
	r, err := parseRange(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_DATE_RANGE"})
	}
	var payments []models.FeePayment
	if err := database.DB.Find(&payments).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var expenses []models.Expense
	if err := database.DB.Find(&expenses).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, reports.IncomeExpense(
		reports.FilterPayments(payments, r),
		reports.FilterExpenses(expenses, r),
	))
}

// GET /api/v1/reports/fee-collection/export
// Streams the fee-collection report as an .xlsx workbook: a summary sheet
// with the breakdowns and a sheet listing the filtered payments.
func (h *ReportHandler) ExportFeeCollection(c echo.Context) error {
	rep, ok := h.loadFeeCollection(c)
	if !ok {
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	f.SetSheetName("Sheet1", summary)
	f.SetCellValue(summary, "A1", "Total Collection")
	f.SetCellValue(summary, "B1", rep.TotalCollection)
	f.SetCellValue(summary, "A2", "Transactions")
	f.SetCellValue(summary, "B2", rep.TotalTransactions)

	row := 4
	writeBreakdown := func(title string, data map[string]float64) {
		f.SetCellValue(summary, fmt.Sprintf("A%d", row), title)
		row++
		for k, v := range data {
			f.SetCellValue(summary, fmt.Sprintf("A%d", row), k)
			f.SetCellValue(summary, fmt.Sprintf("B%d", row), v)
			row++
		}
		row++
	}
	writeBreakdown("By Month", rep.MonthlyBreakdown)
	writeBreakdown("By Payment Method", rep.PaymentMethodBreakdown)
	writeBreakdown("By Fee Type", rep.FeeTypeBreakdown)

	payments := "Payments"
	if _, err := f.NewSheet(payments); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}
	headers := []string{"Receipt", "Student", "Amount", "Method", "Fee Type", "Academic Year", "Date"}
	for i, hd := range headers {
		f.SetCellValue(payments, fmt.Sprintf("%c1", 'A'+i), hd)
	}
	for i, p := range rep.Payments {
		r := i + 2
		f.SetCellValue(payments, fmt.Sprintf("A%d", r), p.ReceiptNumber)
		f.SetCellValue(payments, fmt.Sprintf("B%d", r), p.StudentUID)
		f.SetCellValue(payments, fmt.Sprintf("C%d", r), p.Amount)
		f.SetCellValue(payments, fmt.Sprintf("D%d", r), p.PaymentMethod)
		f.SetCellValue(payments, fmt.Sprintf("E%d", r), p.FeeType)
		f.SetCellValue(payments, fmt.Sprintf("F%d", r), p.AcademicYear)
		f.SetCellValue(payments, fmt.Sprintf("G%d", r), p.PaymentDate.Format("2006-01-02"))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "EXPORT_FAILED"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="fee-collection.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
