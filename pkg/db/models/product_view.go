package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductView records the most recent time a customer viewed a product. One
// row per (customer, product) pair; repeat views refresh ViewedAt.
type ProductView struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:idx_product_views_customer_product"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_product_views_customer_product"`
	ViewedAt   time.Time `gorm:"column:viewed_at;not null"`
}
