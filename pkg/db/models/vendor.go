package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vendor is a selling storefront. CommissionRate is the percentage of each
// line's revenue retained by the platform, applied at order time.
type Vendor struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name           string          `gorm:"column:name;not null"`
	Description    *string         `gorm:"column:description"`
	LogoURL        *string         `gorm:"column:logo_url"`
	CommissionRate decimal.Decimal `gorm:"column:commission_rate;type:numeric(5,2);not null"`
	IsVerified     bool            `gorm:"column:is_verified;not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
