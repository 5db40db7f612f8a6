package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/orderflowhq/orderflow-backend/pkg/db/models"
	"github.com/orderflowhq/orderflow-backend/pkg/enums"
)

// View is the client-facing shape of a user account. The password hash and
// lockout bookkeeping never leave the service layer.
type View struct {
	ID          uuid.UUID      `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	Role        enums.UserRole `json:"role"`
	CompanyName string         `json:"company_name"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// FromModel converts a persisted user into its client-facing view.
func FromModel(user *models.User) View {
	return View{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		CompanyName: user.CompanyName,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// UpdateProfileInput carries self-service profile edits.
type UpdateProfileInput struct {
	Email       *string
	CompanyName *string
}

// ChangePasswordInput carries a self-service password change.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}
