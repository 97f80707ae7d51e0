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

// FeeHandler serves fee structures and fee payments. Payment listings are
// enriched with the referenced student's display fields; a payment whose
// student was deleted keeps listing with a null student block.
type FeeHandler struct{}

func NewFeeHandler() *FeeHandler { return &FeeHandler{} }

/* ===== Fee structures ===== */

type feeStructurePayload struct {
	Class        string   `json:"class" validate:"required,max=20"`
	FeeType      string   `json:"fee_type" validate:"required,max=50"`
	Amount       *float64 `json:"amount" validate:"required,gte=0"`
	AcademicYear string   `json:"academic_year" validate:"required,max=20"`
}

// GET /api/v1/fees/structures
func (h *FeeHandler) ListStructures(c echo.Context) error {
	var items []models.FeeStructure
	if err := database.DB.Order("class ASC, fee_type ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// POST /api/v1/fees/structures
func (h *FeeHandler) CreateStructure(c echo.Context) error {
	var p feeStructurePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Class = strings.TrimSpace(p.Class)
	p.FeeType = strings.TrimSpace(p.FeeType)
	p.AcademicYear = strings.TrimSpace(p.AcademicYear)
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	fs := models.FeeStructure{
		Class:        p.Class,
		FeeType:      p.FeeType,
		Amount:       *p.Amount,
		AcademicYear: p.AcademicYear,
	}
	if err := database.DB.Create(&fs).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, fs)
}

type feeStructurePatch struct {
	Class        *string  `json:"class" validate:"omitempty,max=20"`
	FeeType      *string  `json:"fee_type" validate:"omitempty,max=50"`
	Amount       *float64 `json:"amount" validate:"omitempty,gte=0"`
	AcademicYear *string  `json:"academic_year" validate:"omitempty,max=20"`
}

// PUT /api/v1/fees/structures/:id
func (h *FeeHandler) UpdateStructure(c echo.Context) error {
	var existing models.FeeStructure
	if err := database.DB.First(&existing, "uid = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var p feeStructurePatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if p.Class != nil {
		existing.Class = strings.TrimSpace(*p.Class)
	}
	if p.FeeType != nil {
		existing.FeeType = strings.TrimSpace(*p.FeeType)
	}
	if p.Amount != nil {
		existing.Amount = *p.Amount
	}
	if p.AcademicYear != nil {
		existing.AcademicYear = strings.TrimSpace(*p.AcademicYear)
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/v1/fees/structures/:id
func (h *FeeHandler) DeleteStructure(c echo.Context) error {
	res := database.DB.Delete(&models.FeeStructure{}, "uid = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Fee structure removed", "id": c.Param("id")})
}

/* ===== Fee payments ===== */

type feePaymentPayload struct {
	StudentUID    string   `json:"student_id" validate:"required,max=36"`
	Amount        *float64 `json:"amount" validate:"required,gte=0"`
	PaymentDate   string   `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string   `json:"payment_method" validate:"required,oneof=Cash Card UPI 'Net Banking' Cheque"`
	FeeType       string   `json:"fee_type" validate:"required,max=50"`
	AcademicYear  string   `json:"academic_year" validate:"required,max=20"`
	ReceiptNumber string   `json:"receipt_number" validate:"required,max=50"`
	Class         string   `json:"class" validate:"max=20"`
}

// GET /api/v1/fees/payments
func (h *FeeHandler) ListPayments(c echo.Context) error {
	var payments []models.FeePayment
	if err := database.DB.Order("created_at DESC").Find(&payments).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	enriched, err := reports.EnrichPayments(payments, reports.NewDBResolver(database.DB))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, enriched)
}

// POST /api/v1/fees/payments
func (h *FeeHandler) CreatePayment(c echo.Context) error {
	var p feePaymentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.ReceiptNumber = strings.TrimSpace(p.ReceiptNumber)
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var dup models.FeePayment
	if err := database.DB.Where("receipt_number = ?", p.ReceiptNumber).First(&dup).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "RECEIPT_EXISTS"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	payment := models.FeePayment{
		StudentUID:    p.StudentUID,
		Amount:        *p.Amount,
		PaymentMethod: p.PaymentMethod,
		FeeType:       p.FeeType,
		AcademicYear:  p.AcademicYear,
		ReceiptNumber: p.ReceiptNumber,
		Class:         p.Class,
		CreatedBy:     authUserID(c),
	}
	if p.PaymentDate != "" {
		if d, err := time.Parse("2006-01-02", p.PaymentDate); err == nil {
			payment.PaymentDate = d
		}
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, payment)
}

type feePaymentPatch struct {
	StudentUID    *string  `json:"student_id" validate:"omitempty,max=36"`
	Amount        *float64 `json:"amount" validate:"omitempty,gte=0"`
	PaymentDate   *string  `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,oneof=Cash Card UPI 'Net Banking' Cheque"`
	FeeType       *string  `json:"fee_type" validate:"omitempty,max=50"`
	AcademicYear  *string  `json:"academic_year" validate:"omitempty,max=20"`
	ReceiptNumber *string  `json:"receipt_number" validate:"omitempty,max=50"`
	Class         *string  `json:"class" validate:"omitempty,max=20"`
}

// PUT /api/v1/fees/payments/:id
func (h *FeeHandler) UpdatePayment(c echo.Context) error {
	var existing models.FeePayment
	if err := database.DB.First(&existing, "uid = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var p feePaymentPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if p.StudentUID != nil {
		existing.StudentUID = *p.StudentUID
	}
	if p.Amount != nil {
		existing.Amount = *p.Amount
	}
	if p.PaymentDate != nil {
		if d, err := time.Parse("2006-01-02", *p.PaymentDate); err == nil {
			existing.PaymentDate = d
		}
	}
	if p.PaymentMethod != nil {
		existing.PaymentMethod = *p.PaymentMethod
	}
	if p.FeeType != nil {
		existing.FeeType = *p.FeeType
	}
	if p.AcademicYear != nil {
		existing.AcademicYear = *p.AcademicYear
	}
	if p.ReceiptNumber != nil {
		existing.ReceiptNumber = strings.TrimSpace(*p.ReceiptNumber)
	}
	if p.Class != nil {
		existing.Class = *p.Class
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/v1/fees/payments/:id
func (h *FeeHandler) DeletePayment(c echo.Context) error {
	res := database.DB.Delete(&models.FeePayment{}, "uid = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Payment removed", "id": c.Param("id")})
}
