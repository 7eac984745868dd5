package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopsphere/marketplace-backend/pkg/db/models"
	pkgerrors "github.com/shopsphere/marketplace-backend/pkg/errors"
)

// Service exposes wishlist operations for customers.
type Service interface {
	Add(ctx context.Context, customerID, productID uuid.UUID) error
	Remove(ctx context.Context, customerID, productID uuid.UUID) error
	List(ctx context.Context, customerID uuid.UUID) ([]models.WishlistItem, error)
	RecordView(ctx context.Context, customerID, productID uuid.UUID) error
}

type productReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type service struct {
	repo        *Repository
	productRepo productReader
}

// NewService constructs a wishlist service instance.
func NewService(repo *Repository, productRepo productReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	if productRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, productRepo: productRepo}, nil
}

func (s *service) Add(ctx context.Context, customerID, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return err
	}
	return s.repo.Add(ctx, &models.WishlistItem{
		ID:         uuid.New(),
		CustomerID: customerID,
		ProductID:  productID,
	})
}

func (s *service) Remove(ctx context.Context, customerID, productID uuid.UUID) error {
	return s.repo.Remove(ctx, customerID, productID)
}

func (s *service) List(ctx context.Context, customerID uuid.UUID) ([]models.WishlistItem, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

// RecordView tracks that the customer looked at an active product. Views of
// inactive or missing products read as not found.
func (s *service) RecordView(ctx context.Context, customerID, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return err
	}
	if !product.IsActive {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.repo.RecordView(ctx, &models.ProductView{
		ID:         uuid.New(),
		CustomerID: customerID,
		ProductID:  productID,
		ViewedAt:   time.Now().UTC(),
	})
}
