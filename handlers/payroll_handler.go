package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Shuja06/School-ERP/database"
	"github.com/Shuja06/School-ERP/models"
	"github.com/Shuja06/School-ERP/reports"
)

type PayrollHandler struct{}

func NewPayrollHandler() *PayrollHandler { return &PayrollHandler{} }

type payrollPayload struct {
	StaffUID      string   `json:"staff_id" validate:"required,max=36"`
	Month         string   `json:"month" validate:"required,max=20"`
	BasicSalary   *float64 `json:"basic_salary" validate:"required,gte=0"`
	Allowances    float64  `json:"allowances" validate:"gte=0"`
	Deductions    float64  `json:"deductions" validate:"gte=0"`
	PaymentStatus string   `json:"payment_status" validate:"omitempty,oneof=pending processing paid"`
	PaymentDate   string   `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string   `json:"payment_method" validate:"omitempty,oneof='Bank Transfer' Cash Cheque UPI"`
	Notes         string   `json:"notes"`
}

// GET /api/v1/payroll
func (h *PayrollHandler) List(c echo.Context) error {
	var payrolls []models.Payroll
	if err := database.DB.Order("created_at DESC").Find(&payrolls).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	enriched, err := reports.EnrichPayrolls(payrolls, reports.NewDBResolver(database.DB))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, enriched)
}

// POST /api/v1/payroll
// Net salary is derived from basic + allowances - deductions; any
// client-supplied net_salary is ignored.
func (h *PayrollHandler) Create(c echo.Context) error {
	var p payrollPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Month = strings.TrimSpace(p.Month)
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	// One record per staff member per month.
	var dup models.Payroll
	if err := database.DB.Where("staff_uid = ? AND month = ?", p.StaffUID, p.Month).First(&dup).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "PAYROLL_EXISTS"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	rec := models.Payroll{
		StaffUID:      p.StaffUID,
		Month:         p.Month,
		BasicSalary:   *p.BasicSalary,
		Allowances:    p.Allowances,
		Deductions:    p.Deductions,
		PaymentStatus: p.PaymentStatus,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
	}
	if p.PaymentDate != "" {
		if d, err := time.Parse("2006-01-02", p.PaymentDate); err == nil {
			rec.PaymentDate = &d
		}
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, rec)
}

type payrollPatch struct {
	StaffUID      *string  `json:"staff_id" validate:"omitempty,max=36"`
	Month         *string  `json:"month" validate:"omitempty,max=20"`
	BasicSalary   *float64 `json:"basic_salary" validate:"omitempty,gte=0"`
	Allowances    *float64 `json:"allowances" validate:"omitempty,gte=0"`
	Deductions    *float64 `json:"deductions" validate:"omitempty,gte=0"`
	PaymentStatus *string  `json:"payment_status" validate:"omitempty,oneof=pending processing paid"`
	PaymentDate   *string  `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,oneof='Bank Transfer' Cash Cheque UPI"`
	Notes         *string  `json:"notes"`
}

// PUT /api/v1/payroll/:id
// Net salary is recomputed on every update; a net_salary field in the body
// has no effect.
func (h *PayrollHandler) Update(c echo.Context) error {
	var existing models.Payroll
	if err := database.DB.First(&existing, "uid = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var p payrollPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if p.StaffUID != nil {
		existing.StaffUID = *p.StaffUID
	}
	if p.Month != nil {
		existing.Month = strings.TrimSpace(*p.Month)
	}
	if p.BasicSalary != nil {
		existing.BasicSalary = *p.BasicSalary
	}
	if p.Allowances != nil {
		existing.Allowances = *p.Allowances
	}
	if p.Deductions != nil {
		existing.Deductions = *p.Deductions
	}
	if p.PaymentStatus != nil {
		existing.PaymentStatus = *p.PaymentStatus
	}
	if p.PaymentDate != nil {
		if d, err := time.Parse("2006-01-02", *p.PaymentDate); err == nil {
			existing.PaymentDate = &d
		}
	}
	if p.PaymentMethod != nil {
		existing.PaymentMethod = *p.PaymentMethod
	}
	if p.Notes != nil {
		existing.Notes = *p.Notes
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/v1/payroll/:id
func (h *PayrollHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Payroll{}, "uid = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Payroll record deleted successfully", "id": c.Param("id")})
}

type bulkPayrollPayload struct {
	Month string `json:"month" validate:"required,max=20"`
}

type bulkPayrollError struct {
	StaffUID string `json:"staff_id"`
	Error    string `json:"error"`
}

// POST /api/v1/payroll/bulk
// Creates one pending record per staff member for the month, each at the
// staff member's base salary. Staff who already have a record for the month
// are skipped. Per-staff failures are collected, not fatal: the batch
// reports how many records it created and which staff failed.
func (h *PayrollHandler) Bulk(c echo.Context) error {
	var p bulkPayrollPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Month = strings.TrimSpace(p.Month)
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var allStaff []models.Staff
	if err := database.DB.Find(&allStaff).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	created := 0
	failures := []bulkPayrollError{}
	for _, staff := range allStaff {
		var existing models.Payroll
		err := database.DB.Where("staff_uid = ? AND month = ?", staff.UID, p.Month).First(&existing).Error
		if err == nil {
			continue // already generated for this month
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			failures = append(failures, bulkPayrollError{StaffUID: staff.UID, Error: err.Error()})
			continue
		}
		rec := models.Payroll{
			StaffUID:      staff.UID,
			Month:         p.Month,
			BasicSalary:   staff.Salary,
			Allowances:    0,
			Deductions:    0,
			PaymentStatus: models.PayrollStatusPending,
		}
		if err := database.DB.Create(&rec).Error; err != nil {
			failures = append(failures, bulkPayrollError{StaffUID: staff.UID, Error: err.Error()})
			continue
		}
		created++
	}

	resp := map[string]any{
		"message": "Bulk payroll processed",
		"created": created,
	}
	if len(failures) > 0 {
		resp["errors"] = failures
	}
	return c.JSON(http.StatusCreated, resp)
}
