package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopsphere/marketplace-backend/pkg/enums"
)

// User represents the canonical identity entity. VendorID is set iff the
// user's role is VENDOR.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Name         string         `gorm:"column:name;not null"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null"`
	VendorID     *uuid.UUID     `gorm:"column:vendor_id;type:uuid"`
	IsActive     bool           `gorm:"column:is_active;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
