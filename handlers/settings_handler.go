package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Shuja06/School-ERP/database"
	"github.com/Shuja06/School-ERP/models"
)

// SettingsHandler serves the institution's singleton configuration record.
type SettingsHandler struct{}

func NewSettingsHandler() *SettingsHandler { return &SettingsHandler{} }

// getOrCreateSettings returns the single settings row, creating it with
// defaults on first access.
func getOrCreateSettings(db *gorm.DB) (models.Settings, error) {
	var s models.Settings
	err := db.First(&s).Error
	if err == nil {
		return s, nil
	}
	if err != gorm.ErrRecordNotFound {
		return models.Settings{}, err
	}
	s = models.DefaultSettings()
	if err := db.Create(&s).Error; err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

// GET /api/v1/settings
func (h *SettingsHandler) Get(c echo.Context) error {
	s, err := getOrCreateSettings(database.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": s})
}

type schoolInfoPatch struct {
	SchoolName *string `json:"school_name" validate:"omitempty,max=100"`
	SchoolCode *string `json:"school_code" validate:"omitempty,max=20"`
	Address    *string `json:"address" validate:"omitempty,max=255"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	Email      *string `json:"email" validate:"omitempty,email"`
}

// PUT /api/v1/settings/school (admin)
func (h *SettingsHandler) UpdateSchool(c echo.Context) error {
	var p schoolInfoPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if errs := checkPayload(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	s, err := getOrCreateSettings(database.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if p.SchoolName != nil {
		s.SchoolName = strings.TrimSpace(*p.SchoolName)
	}
	if p.SchoolCode != nil {
		s.SchoolCode = strings.TrimSpace(*p.SchoolCode)
	}
	if p.Address != nil {
		s.Address = strings.TrimSpace(*p.Address)
	}
	if p.Phone != nil {
		s.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Email != nil {
		s.Email = strings.TrimSpace(strings.ToLower(*p.Email))
	}
	if err := database.DB.Save(&s).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": s})
}

type notificationsPatch struct {
	EmailEnabled     *bool `json:"email_enabled"`
	SMSEnabled       *bool `json:"sms_enabled"`
	WhatsappEnabled  *bool `json:"whatsapp_enabled"`
	PaymentReminders *bool `json:"payment_reminders"`
}

// PUT /api/v1/settings/notifications (admin)
func (h *SettingsHandler) UpdateNotifications(c echo.Context) error {
	var p notificationsPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	s, err := getOrCreateSettings(database.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if p.EmailEnabled != nil {
		s.Notifications.EmailEnabled = *p.EmailEnabled
	}
	if p.SMSEnabled != nil {
		s.Notifications.SMSEnabled = *p.SMSEnabled
	}
	if p.WhatsappEnabled != nil {
		s.Notifications.WhatsappEnabled = *p.WhatsappEnabled
	}
	if p.PaymentReminders != nil {
		s.Notifications.PaymentReminders = *p.PaymentReminders
	}
	if err := database.DB.Save(&s).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": s})
}

type securityPatch struct {
	TwoFactorAuth *bool `json:"two_factor_auth"`
	AuditLogging  *bool `json:"audit_logging"`
	AutoLogout    *bool `json:"auto_logout"`
}

// PUT /api/v1/settings/security (admin)
func (h *SettingsHandler) UpdateSecurity(c echo.Context) error {
	var p securityPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	s, err := getOrCreateSettings(database.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if p.TwoFactorAuth != nil {
		s.Security.TwoFactorAuth = *p.TwoFactorAuth
	}
	if p.AuditLogging != nil {
		s.Security.AuditLogging = *p.AuditLogging
	}
	if p.AutoLogout != nil {
		s.Security.AutoLogout = *p.AutoLogout
	}
	if err := database.DB.Save(&s).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": s})
}

type dataManagementPatch struct {
	AutoBackup *bool `json:"auto_backup"`
}

// PUT /api/v1/settings/data-management (admin)
func (h *SettingsHandler) UpdateDataManagement(c echo.Context) error {
	var p dataManagementPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	s, err := getOrCreateSettings(database.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	if p.AutoBackup != nil {
		s.DataManagement.AutoBackup = *p.AutoBackup
	}
	if err := database.DB.Save(&s).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": s})
}

// POST /api/v1/settings/backup (admin)
// Stamps the last-backup time. The actual dump runs out of band.
func (h *SettingsHandler) TriggerBackup(c echo.Context) error {
	s, err := getOrCreateSettings(database.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	s.DataManagement.LastBackup = time.Now()
	if err := database.DB.Save(&s).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"last_backup": s.DataManagement.LastBackup},
	})
}
