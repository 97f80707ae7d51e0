package models

import "time"

type NotificationSettings struct {
	EmailEnabled     bool `json:"email_enabled"`
	SMSEnabled       bool `json:"sms_enabled"`
	WhatsappEnabled  bool `json:"whatsapp_enabled"`
	PaymentReminders bool `json:"payment_reminders"`
}

type SecuritySettings struct {
	TwoFactorAuth bool `json:"two_factor_auth"`
	AuditLogging  bool `json:"audit_logging"`
	AutoLogout    bool `json:"auto_logout"`
}

type DataManagementSettings struct {
	AutoBackup bool      `json:"auto_backup"`
	LastBackup time.Time `json:"last_backup"`
}

// Settings is the institution-wide configuration record. Exactly one row
// exists; it is created lazily with defaults (see handlers.getOrCreateSettings).
type Settings struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	SchoolName string `gorm:"size:100" json:"school_name"`
	SchoolCode string `gorm:"size:20" json:"school_code"`
	Address    string `gorm:"size:255" json:"address"`
	Phone      string `gorm:"size:20" json:"phone"`
	Email      string `gorm:"size:100" json:"email"`

	Notifications  NotificationSettings   `gorm:"embedded;embeddedPrefix:notif_" json:"notifications"`
	Security       SecuritySettings       `gorm:"embedded;embeddedPrefix:sec_" json:"security"`
	DataManagement DataManagementSettings `gorm:"embedded;embeddedPrefix:data_" json:"data_management"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSettings returns the record a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{
		SchoolName: "Greenwood High School",
		SchoolCode: "GHS-2024",
		Address:    "123 Education Street, City",
		Phone:      "+91 98765 43210",
		Email:      "admin@greenwood.edu",
		Notifications: NotificationSettings{
			EmailEnabled:     true,
			SMSEnabled:       true,
			WhatsappEnabled:  false,
			PaymentReminders: true,
		},
		Security: SecuritySettings{
			TwoFactorAuth: false,
			AuditLogging:  true,
			AutoLogout:    true,
		},
		DataManagement: DataManagementSettings{
			AutoBackup: true,
			LastBackup: time.Now(),
		},
	}
}
