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
)

type ExpenseHandler struct{}

func NewExpenseHandler() *ExpenseHandler { return &ExpenseHandler{} }

type expensePayload struct {
	Category      string   `json:"category" validate:"required,max=50"`
	Description   string   `json:"description" validate:"required"`
	Amount        *float64 `json:"amount" validate:"required,gte=0"`
	ExpenseDate   string   `json:"expense_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string   `json:"payment_method" validate:"max=20"`
	ReceiptNumber string   `json:"receipt_number" validate:"max=50"`
}

// GET /api/v1/expenses
func (h *ExpenseHandler) List(c echo.Context) error {
	var items []models.Expense
	if err := database.DB.Order("expense_date DESC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// POST /api/v1/expenses
func (h *ExpenseHandler) Create(c echo.Context) error {
	var p expensePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.Category = strings.TrimSpace(p.Category)
	p.Description = strings.TrimSpace(p.Description)
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	e := models.Expense{
		Category:      p.Category,
		Description:   p.Description,
		Amount:        *p.Amount,
		PaymentMethod: p.PaymentMethod,
		ReceiptNumber: p.ReceiptNumber,
		CreatedBy:     authUserID(c),
	}
	if p.ExpenseDate != "" {
		if d, err := time.Parse("2006-01-02", p.ExpenseDate); err == nil {
			e.ExpenseDate = d
		}
	}
	if err := database.DB.Create(&e).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, e)
}

type expensePatch struct {
	Category      *string  `json:"category" validate:"omitempty,max=50"`
	Description   *string  `json:"description"`
	Amount        *float64 `json:"amount" validate:"omitempty,gte=0"`
	ExpenseDate   *string  `json:"expense_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,max=20"`
	ReceiptNumber *string  `json:"receipt_number" validate:"omitempty,max=50"`
}

// PUT /api/v1/expenses/:id
func (h *ExpenseHandler) Update(c echo.Context) error {
	var existing models.Expense
	if err := database.DB.First(&existing, "uid = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var p expensePatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if p.Category != nil {
		existing.Category = strings.TrimSpace(*p.Category)
	}
	if p.Description != nil {
		existing.Description = strings.TrimSpace(*p.Description)
	}
	if p.Amount != nil {
		existing.Amount = *p.Amount
	}
	if p.ExpenseDate != nil {
		if d, err := time.Parse("2006-01-02", *p.ExpenseDate); err == nil {
			existing.ExpenseDate = d
		}
	}
	if p.PaymentMethod != nil {
		existing.PaymentMethod = *p.PaymentMethod
	}
	if p.ReceiptNumber != nil {
		existing.ReceiptNumber = *p.ReceiptNumber
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Expense{}, "uid = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Expense removed", "id": c.Param("id")})
}
