package enums

import "fmt"

// UserRole represents a platform-level permissions role.
type UserRole string

const (
	UserRoleSuperAdmin UserRole = "SUPER_ADMIN"
	UserRoleVendor     UserRole = "VENDOR"
	UserRoleCustomer   UserRole = "CUSTOMER"
)

var validUserRoles = []UserRole{
	UserRoleSuperAdmin,
	UserRoleVendor,
	UserRoleCustomer,
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
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

// LandingPath returns the dashboard path a freshly authenticated user of this
// role is sent to.
func (r UserRole) LandingPath() string {
	switch r {
	case UserRoleSuperAdmin:
		return "/admin"
	case UserRoleVendor:
		return "/vendor"
	case UserRoleCustomer:
		return "/customer"
	}
	return "/"
}
