package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem records a customer's saved product. The (customer, product)
// pair is unique; duplicate adds are ignored.
type WishlistItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:idx_wishlist_customer_product"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_wishlist_customer_product"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
