package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopsphere/marketplace-backend/pkg/db/models"
	"github.com/shopsphere/marketplace-backend/pkg/enums"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest captures a new account payload. VendorName is required
// when registering a vendor account and ignored otherwise.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"required,oneof=CUSTOMER VENDOR"`
	VendorName string `json:"vendorName,omitempty"`
}

// UserDTO is the public projection of a user record.
type UserDTO struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      enums.UserRole `json:"role"`
	VendorID  *uuid.UUID     `json:"vendorId,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AuthResponse contains the tokens and landing destination produced by a
// successful login or registration.
type AuthResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	LandingPath  string   `json:"landing_path"`
	User         *UserDTO `json:"user"`
}

func userToDTO(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		VendorID:  user.VendorID,
		CreatedAt: user.CreatedAt,
	}
}
