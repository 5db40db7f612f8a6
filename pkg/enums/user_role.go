package enums

import "fmt"

// UserRole represents an account's permission level.
type UserRole string

const (
	UserRoleCustomer       UserRole = "customer"
	UserRoleAccountManager UserRole = "account_manager"
	UserRoleAdmin          UserRole = "admin"
	UserRoleSuperAdmin     UserRole = "super_admin"
)

var validUserRoles = []UserRole{
	UserRoleCustomer,
	UserRoleAccountManager,
	UserRoleAdmin,
	UserRoleSuperAdmin,
}

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role can access the CRM surface.
func (u UserRole) IsStaff() bool {
	return u == UserRoleAccountManager || u == UserRoleAdmin || u == UserRoleSuperAdmin
}

// IsAdmin reports whether the role carries administrative privileges.
func (u UserRole) IsAdmin() bool {
	return u == UserRoleAdmin || u == UserRoleSuperAdmin
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
