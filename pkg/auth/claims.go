package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shopsphere/marketplace-backend/pkg/enums"
)

// AccessTokenClaims is the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID   uuid.UUID      `json:"user_id"`
	Email    string         `json:"email"`
	Role     enums.UserRole `json:"role"`
	VendorID *uuid.UUID     `json:"vendor_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the verified caller identity derived from a token. It is a
// closed type: the only way to obtain one is through NewIdentity, which
// enforces that a VENDOR identity always carries a vendor ID and that no
// other role does. Callers therefore never need a scattered nil-check.
type Identity struct {
	userID   uuid.UUID
	email    string
	role     enums.UserRole
	vendorID *uuid.UUID
}

// NewIdentity validates the role/vendor pairing and builds an Identity.
// A VENDOR role without a vendor ID fails closed.
func NewIdentity(userID uuid.UUID, email string, role enums.UserRole, vendorID *uuid.UUID) (Identity, error) {
	if userID == uuid.Nil {
		return Identity{}, fmt.Errorf("user id is required")
	}
	if !role.IsValid() {
		return Identity{}, fmt.Errorf("invalid role %q", role)
	}
	switch role {
	case enums.UserRoleVendor:
		if vendorID == nil || *vendorID == uuid.Nil {
			return Identity{}, fmt.Errorf("vendor identity requires a vendor id")
		}
	default:
		if vendorID != nil {
			return Identity{}, fmt.Errorf("role %s must not carry a vendor id", role)
		}
	}
	return Identity{userID: userID, email: email, role: role, vendorID: vendorID}, nil
}

// IdentityFromClaims converts verified token claims into an Identity.
func IdentityFromClaims(claims *AccessTokenClaims) (Identity, error) {
	if claims == nil {
		return Identity{}, fmt.Errorf("claims are required")
	}
	return NewIdentity(claims.UserID, claims.Email, claims.Role, claims.VendorID)
}

// UserID returns the authenticated user's identifier.
func (i Identity) UserID() uuid.UUID {
	return i.userID
}

// Email returns the authenticated user's email.
func (i Identity) Email() string {
	return i.email
}

// Role returns the caller's role.
func (i Identity) Role() enums.UserRole {
	return i.role
}

// VendorID returns the vendor the caller belongs to. The boolean is true
// only for VENDOR identities.
func (i Identity) VendorID() (uuid.UUID, bool) {
	if i.vendorID == nil {
		return uuid.Nil, false
	}
	return *i.vendorID, true
}

// IsSuperAdmin reports whether the caller holds the SUPER_ADMIN role.
func (i Identity) IsSuperAdmin() bool {
	return i.role == enums.UserRoleSuperAdmin
}

// CanAccessVendorResource reports whether the caller owns the vendor-scoped
// resource. It is a plain equality check: super-admin requests must be routed
// through RequireSuperAdmin at the call site, not special-cased here.
func (i Identity) CanAccessVendorResource(resourceVendorID uuid.UUID) bool {
	ownID, ok := i.VendorID()
	if !ok {
		return false
	}
	return ownID == resourceVendorID
}
