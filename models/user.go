package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleTeacher    = "teacher"
	RolePrincipal  = "principal"
)

// Roles lists every role a user account may hold.
var Roles = []string{RoleAdmin, RoleAccountant, RoleTeacher, RolePrincipal}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UID       string    `gorm:"size:36;uniqueIndex;not null" json:"id"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash
	FullName  string    `gorm:"size:100" json:"full_name"`
	Role      string    `gorm:"size:20;not null;default:accountant" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.UID == "" {
		u.UID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleAccountant
	}
	return nil
}
