package handlers

import (
	"errors"
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Shuja06/School-ERP/database"
	"github.com/Shuja06/School-ERP/models"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

// GET /api/v1/users/me
// Profile of the authenticated user.
func (h *UserHandler) Me(c echo.Context) error {
	var u models.User
	if err := database.DB.First(&u, "uid = ?", authUserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, u)
}

// GET /api/v1/users (admin)
func (h *UserHandler) List(c echo.Context) error {
	var users []models.User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"count": len(users), "data": users})
}

type rolePayload struct {
	Role string `json:"role" validate:"required,oneof=admin accountant teacher principal"`
}

// PUT /api/v1/users/:id/role (admin)
// An admin cannot strip their own admin role.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var p rolePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if !slices.Contains(models.Roles, p.Role) {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ROLE"})
	}

	var u models.User
	if err := database.DB.First(&u, "uid = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if u.UID == authUserID(c) && p.Role != models.RoleAdmin {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "CANNOT_DEMOTE_SELF"})
	}

	u.Role = p.Role
	if err := database.DB.Save(&u).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}
