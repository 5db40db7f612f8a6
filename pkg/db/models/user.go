package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username            string         `gorm:"column:username;type:text;not null;uniqueIndex"`
	Email               string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash        string         `gorm:"column:password_hash;not null"`
	Role                enums.UserRole `gorm:"column:role;type:text;not null;default:'customer'"`
	CompanyName         string         `gorm:"column:company_name;not null"`
	IsActive            bool           `gorm:"column:is_active;not null;default:true"`
	FailedLoginAttempts int            `gorm:"column:failed_login_attempts;not null;default:0"`
	LockedUntil         *time.Time     `gorm:"column:locked_until"`
	LastLoginAt         *time.Time     `gorm:"column:last_login_at"`
	Orders              []Order        `gorm:"foreignKey:UserID"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
