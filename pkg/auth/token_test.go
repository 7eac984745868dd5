package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shopsphere/marketplace-backend/pkg/config"
	"github.com/shopsphere/marketplace-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "marketplace",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()
	userID := uuid.New()
	vendorID := uuid.New()

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID:   userID,
		Email:    "vendor@example.com",
		Role:     enums.UserRoleVendor,
		VendorID: &vendorID,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "vendor@example.com" {
		t.Fatalf("email not preserved: %s", claims.Email)
	}
	if claims.Role != enums.UserRoleVendor {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.VendorID == nil || *claims.VendorID != vendorID {
		t.Fatal("vendor id not preserved")
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v", exp, claims.ExpiresAt)
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "c@example.com",
		Role:   enums.UserRoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "c@example.com",
		Role:   enums.UserRoleCustomer,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMintAccessTokenVendorWithoutVendorID(t *testing.T) {
	if _, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "v@example.com",
		Role:   enums.UserRoleVendor,
	}); err == nil {
		t.Fatal("expected vendor token without vendor id to be refused")
	}
}

func TestNewIdentityEnforcesRoleVendorPairing(t *testing.T) {
	vendorID := uuid.New()

	if _, err := NewIdentity(uuid.New(), "a@b.c", enums.UserRoleCustomer, &vendorID); err == nil {
		t.Fatal("customer with vendor id should fail")
	}
	if _, err := NewIdentity(uuid.New(), "a@b.c", enums.UserRoleVendor, nil); err == nil {
		t.Fatal("vendor without vendor id should fail")
	}

	ident, err := NewIdentity(uuid.New(), "a@b.c", enums.UserRoleVendor, &vendorID)
	if err != nil {
		t.Fatalf("new vendor identity: %v", err)
	}
	got, ok := ident.VendorID()
	if !ok || got != vendorID {
		t.Fatal("vendor id accessor broken")
	}
	if !ident.CanAccessVendorResource(vendorID) {
		t.Fatal("owner should access own resource")
	}
	if ident.CanAccessVendorResource(uuid.New()) {
		t.Fatal("foreign vendor resource should be denied")
	}

	admin, err := NewIdentity(uuid.New(), "root@b.c", enums.UserRoleSuperAdmin, nil)
	if err != nil {
		t.Fatalf("new admin identity: %v", err)
	}
	// The equality check never special-cases admin; the gate routes admins
	// through RequireSuperAdmin instead.
	if admin.CanAccessVendorResource(vendorID) {
		t.Fatal("ownership check must not special-case super admin")
	}
}
