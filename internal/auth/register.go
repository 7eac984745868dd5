package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopsphere/marketplace-backend/internal/users"
	"github.com/shopsphere/marketplace-backend/internal/vendors"
	pkgdb "github.com/shopsphere/marketplace-backend/pkg/db"
	"github.com/shopsphere/marketplace-backend/pkg/db/models"
	"github.com/shopsphere/marketplace-backend/pkg/enums"
	pkgerrors "github.com/shopsphere/marketplace-backend/pkg/errors"
	"github.com/shopsphere/marketplace-backend/pkg/security"
)

// Register creates a new account and logs it in. Vendor registration also
// creates the vendor row; user and vendor are committed together or not at
// all.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	role, err := enums.ParseUserRole(req.Role)
	if err != nil || role == enums.UserRoleSuperAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be CUSTOMER or VENDOR")
	}
	if role == enums.UserRoleVendor && strings.TrimSpace(req.VendorName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendorName is required for vendor accounts")
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if role == enums.UserRoleVendor {
			vendor := &models.Vendor{
				ID:             uuid.New(),
				Name:           strings.TrimSpace(req.VendorName),
				CommissionRate: vendors.DefaultCommissionRate,
			}
			if _, err := vendors.NewRepository(tx).Create(ctx, vendor); err != nil {
				return err
			}
			user.VendorID = &vendor.ID
		}
		_, err := users.NewRepository(tx).Create(ctx, user)
		return err
	})
	if err != nil {
		if pkgdb.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create account")
	}

	return s.issueTokens(ctx, user)
}
