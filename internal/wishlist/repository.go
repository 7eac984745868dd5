package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shopsphere/marketplace-backend/pkg/db/models"
)

// Repository provides wishlist persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts the (customer, product) pair. A duplicate add is a no-op,
// keeping the operation idempotent.
func (r *Repository) Add(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item).Error
}

// Remove deletes the pair if present.
func (r *Repository) Remove(ctx context.Context, customerID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Delete(&models.WishlistItem{}).Error
}

// RecordView upserts the customer's view of a product. A repeat view keeps
// the single row and refreshes its timestamp.
func (r *Repository) RecordView(ctx context.Context, view *models.ProductView) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"viewed_at": view.ViewedAt}),
		}).
		Create(view).Error
}

// FindView returns the customer's view row for a product, if any.
func (r *Repository) FindView(ctx context.Context, customerID, productID uuid.UUID) (*models.ProductView, error) {
	var view models.ProductView
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

// ListByCustomer returns the customer's saved items, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.WishlistItem, error) {
	var rows []models.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
