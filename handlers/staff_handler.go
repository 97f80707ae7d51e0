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

type StaffHandler struct{}

func NewStaffHandler() *StaffHandler { return &StaffHandler{} }

type staffPayload struct {
	StaffID     string   `json:"staff_id" validate:"required,max=20"`
	FullName    string   `json:"full_name" validate:"required,max=100"`
	Designation string   `json:"designation" validate:"required,max=50"`
	Department  string   `json:"department" validate:"max=50"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Phone       string   `json:"phone" validate:"max=15"`
	Salary      *float64 `json:"salary" validate:"required,gte=0"`
	JoiningDate string   `json:"joining_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive    *bool    `json:"is_active"`
}

func (p *staffPayload) normalize() {
	p.StaffID = strings.TrimSpace(p.StaffID)
	p.FullName = strings.Join(strings.Fields(p.FullName), " ")
	p.Designation = strings.TrimSpace(p.Designation)
	p.Department = strings.TrimSpace(p.Department)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
	p.JoiningDate = strings.TrimSpace(p.JoiningDate)
}

func (p *staffPayload) apply(s *models.Staff) {
	s.StaffID = p.StaffID
	s.FullName = p.FullName
	s.Designation = p.Designation
	s.Department = p.Department
	s.Email = p.Email
	s.Phone = p.Phone
	if p.Salary != nil {
		s.Salary = *p.Salary
	}
	if p.JoiningDate != "" {
		if d, err := time.Parse("2006-01-02", p.JoiningDate); err == nil {
			s.JoiningDate = d
		}
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	} else if s.ID == 0 {
		s.IsActive = true
	}
}

// GET /api/v1/staff
func (h *StaffHandler) List(c echo.Context) error {
	var items []models.Staff
	if err := database.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/v1/staff/:id
func (h *StaffHandler) Get(c echo.Context) error {
	var s models.Staff
	if err := database.DB.First(&s, "uid = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

// POST /api/v1/staff
func (h *StaffHandler) Create(c echo.Context) error {
	var p staffPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var dup models.Staff
	if err := database.DB.Where("staff_id = ?", p.StaffID).First(&dup).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "STAFF_ID_EXISTS"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var s models.Staff
	p.apply(&s)
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

type staffPatch struct {
	StaffID     *string  `json:"staff_id" validate:"omitempty,max=20"`
	FullName    *string  `json:"full_name" validate:"omitempty,max=100"`
	Designation *string  `json:"designation" validate:"omitempty,max=50"`
	Department  *string  `json:"department" validate:"omitempty,max=50"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Phone       *string  `json:"phone" validate:"omitempty,max=15"`
	Salary      *float64 `json:"salary" validate:"omitempty,gte=0"`
	JoiningDate *string  `json:"joining_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive    *bool    `json:"is_active"`
}

// PUT /api/v1/staff/:id
// Partial patch: only fields present in the body change.
func (h *StaffHandler) Update(c echo.Context) error {
	var existing models.Staff
	if err := database.DB.First(&existing, "uid = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var p staffPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if p.StaffID != nil {
		existing.StaffID = strings.TrimSpace(*p.StaffID)
	}
	if p.FullName != nil {
		existing.FullName = strings.Join(strings.Fields(*p.FullName), " ")
	}
	if p.Designation != nil {
		existing.Designation = strings.TrimSpace(*p.Designation)
	}
	if p.Department != nil {
		existing.Department = strings.TrimSpace(*p.Department)
	}
	if p.Email != nil {
		existing.Email = strings.TrimSpace(strings.ToLower(*p.Email))
	}
	if p.Phone != nil {
		existing.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Salary != nil {
		existing.Salary = *p.Salary
	}
	if p.JoiningDate != nil {
		if d, err := time.Parse("2006-01-02", *p.JoiningDate); err == nil {
			existing.JoiningDate = d
		}
	}
	if p.IsActive != nil {
		existing.IsActive = *p.IsActive
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/v1/staff/:id
func (h *StaffHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Staff{}, "uid = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Staff member deleted successfully", "id": c.Param("id")})
}
