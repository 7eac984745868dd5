package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopsphere/marketplace-backend/pkg/enums"
)

// Order is created atomically with its items by the order engine. TotalAmount
// and PlatformCommission are snapshots computed at creation time and never
// recomputed from live catalog data.
type Order struct {
	ID                 uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID         uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	TotalAmount        decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null"`
	PlatformCommission decimal.Decimal   `gorm:"column:platform_commission;type:numeric(12,2);not null"`
	Status             enums.OrderStatus `gorm:"column:status;type:text;not null"`
	Items              []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
