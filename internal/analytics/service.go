package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const defaultTopVendorLimit = 10

// Service exposes read-only marketplace analytics for the admin surface.
type Service interface {
	PlatformTotals(ctx context.Context) (*PlatformTotals, error)
	TopVendors(ctx context.Context, limit int) ([]VendorRevenue, error)
	VendorSummary(ctx context.Context, vendorID uuid.UUID) (*VendorSummary, error)
}

type service struct {
	repo *Repository
}

// NewService constructs an analytics service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) PlatformTotals(ctx context.Context) (*PlatformTotals, error) {
	return s.repo.PlatformTotals(ctx)
}

func (s *service) TopVendors(ctx context.Context, limit int) ([]VendorRevenue, error) {
	if limit <= 0 {
		limit = defaultTopVendorLimit
	}
	return s.repo.TopVendors(ctx, limit)
}

func (s *service) VendorSummary(ctx context.Context, vendorID uuid.UUID) (*VendorSummary, error) {
	return s.repo.VendorSummary(ctx, vendorID)
}
