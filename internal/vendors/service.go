package vendors

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopsphere/marketplace-backend/pkg/db/models"
	pkgerrors "github.com/shopsphere/marketplace-backend/pkg/errors"
	"github.com/shopsphere/marketplace-backend/pkg/logger"
)

// Service exposes vendor administration operations.
type Service interface {
	GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*models.Vendor, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, input UpdateSettingsInput) (*models.Vendor, error)
}

// DefaultCommissionRate is assigned to newly registered vendors until an
// admin changes it.
var DefaultCommissionRate = decimal.NewFromInt(10)

// UpdateSettingsInput carries optional vendor mutations. Nil fields are
// left untouched.
type UpdateSettingsInput struct {
	Name           *string
	Description    *string
	LogoURL        *string
	CommissionRate *decimal.Decimal
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs a vendor service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, err
	}
	return vendor, nil
}

func (s *service) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return s.repo.List(ctx)
}

func (s *service) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*models.Vendor, error) {
	if err := s.repo.SetVerified(ctx, id, verified); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, err
	}
	if s.logg != nil {
		ctx = s.logg.WithVendorID(ctx, id.String())
		s.logg.Info(ctx, "vendor verification updated")
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateSettings(ctx context.Context, id uuid.UUID, input UpdateSettingsInput) (*models.Vendor, error) {
	vendor, err := s.GetVendor(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		vendor.Name = *input.Name
	}
	if input.Description != nil {
		vendor.Description = input.Description
	}
	if input.LogoURL != nil {
		vendor.LogoURL = input.LogoURL
	}
	if input.CommissionRate != nil {
		rate := *input.CommissionRate
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "commission rate must be between 0 and 100")
		}
		vendor.CommissionRate = rate
	}

	if err := s.repo.Save(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}
