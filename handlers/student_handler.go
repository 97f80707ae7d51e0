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

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

type studentPayload struct {
	StudentID     string `json:"student_id" validate:"required,max=20"`
	FullName      string `json:"full_name" validate:"required,max=100"`
	Class         string `json:"class" validate:"required,max=20"`
	Section       string `json:"section" validate:"max=10"`
	ParentName    string `json:"parent_name" validate:"max=100"`
	ParentContact string `json:"parent_contact" validate:"max=15"`
	AdmissionDate string `json:"admission_date" validate:"omitempty,datetime=2006-01-02"`
}

func (p *studentPayload) normalize() {
	p.StudentID = strings.TrimSpace(p.StudentID)
	p.FullName = strings.Join(strings.Fields(p.FullName), " ")
	p.Class = strings.TrimSpace(p.Class)
	p.Section = strings.TrimSpace(p.Section)
	p.ParentName = strings.Join(strings.Fields(p.ParentName), " ")
	p.ParentContact = strings.TrimSpace(p.ParentContact)
	p.AdmissionDate = strings.TrimSpace(p.AdmissionDate)
}

func (p *studentPayload) apply(s *models.Student) {
	s.StudentID = p.StudentID
	s.FullName = p.FullName
	s.Class = p.Class
	s.Section = p.Section
	s.ParentName = p.ParentName
	s.ParentContact = p.ParentContact
	if p.AdmissionDate != "" {
		if d, err := time.Parse("2006-01-02", p.AdmissionDate); err == nil {
			s.AdmissionDate = d
		}
	}
}

// GET /api/v1/students
func (h *StudentHandler) List(c echo.Context) error {
	var items []models.Student
	if err := database.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /api/v1/students/:id
func (h *StudentHandler) Get(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, "uid = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

// POST /api/v1/students
func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var dup models.Student
	if err := database.DB.Where("student_id = ?", p.StudentID).First(&dup).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "STUDENT_ID_EXISTS"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}

	var s models.Student
	p.apply(&s)
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

type studentPatch struct {
	StudentID     *string `json:"student_id" validate:"omitempty,max=20"`
	FullName      *string `json:"full_name" validate:"omitempty,max=100"`
	Class         *string `json:"class" validate:"omitempty,max=20"`
	Section       *string `json:"section" validate:"omitempty,max=10"`
	ParentName    *string `json:"parent_name" validate:"omitempty,max=100"`
	ParentContact *string `json:"parent_contact" validate:"omitempty,max=15"`
	AdmissionDate *string `json:"admission_date" validate:"omitempty,datetime=2006-01-02"`
}

// PUT /api/v1/students/:id
// Partial patch: only fields present in the body change, last write wins.
func (h *StudentHandler) Update(c echo.Context) error {
	var existing models.Student
	if err := database.DB.First(&existing, "uid = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	var p studentPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if p.StudentID != nil {
		existing.StudentID = strings.TrimSpace(*p.StudentID)
	}
	if p.FullName != nil {
		existing.FullName = strings.Join(strings.Fields(*p.FullName), " ")
	}
	if p.Class != nil {
		existing.Class = strings.TrimSpace(*p.Class)
	}
	if p.Section != nil {
		existing.Section = strings.TrimSpace(*p.Section)
	}
	if p.ParentName != nil {
		existing.ParentName = strings.Join(strings.Fields(*p.ParentName), " ")
	}
	if p.ParentContact != nil {
		existing.ParentContact = strings.TrimSpace(*p.ParentContact)
	}
	if p.AdmissionDate != nil {
		if d, err := time.Parse("2006-01-02", *p.AdmissionDate); err == nil {
			existing.AdmissionDate = d
		}
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /api/v1/students/:id
// No cascade: fee payments referencing the student stay and list with a
// null student block.
func (h *StudentHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Student{}, "uid = ?", c.Param("id"))
	if res.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if res.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Student removed", "id": c.Param("id")})
}
