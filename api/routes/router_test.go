package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shopsphere/marketplace-backend/internal/analytics"
	"github.com/shopsphere/marketplace-backend/internal/auth"
	"github.com/shopsphere/marketplace-backend/internal/orders"
	"github.com/shopsphere/marketplace-backend/internal/products"
	"github.com/shopsphere/marketplace-backend/internal/vendors"
	pkgauth "github.com/shopsphere/marketplace-backend/pkg/auth"
	"github.com/shopsphere/marketplace-backend/pkg/auth/session"
	"github.com/shopsphere/marketplace-backend/pkg/config"
	"github.com/shopsphere/marketplace-backend/pkg/db/models"
	"github.com/shopsphere/marketplace-backend/pkg/enums"
	"github.com/shopsphere/marketplace-backend/pkg/logger"
	"github.com/shopsphere/marketplace-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{}, nil
}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubProductService struct{}

func (stubProductService) CreateProduct(ctx context.Context, vendorID uuid.UUID, input products.CreateProductInput) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubProductService) UpdateProduct(ctx context.Context, vendorID, productID uuid.UUID, input products.UpdateProductInput) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubProductService) DeleteProduct(ctx context.Context, vendorID, productID uuid.UUID) error {
	return nil
}

func (stubProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	return &models.Product{}, nil
}

func (stubProductService) ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	return nil, nil
}

func (stubProductService) ListCatalog(ctx context.Context, limit, offset int) ([]models.Product, error) {
	return nil, nil
}

type stubOrderService struct{}

func (stubOrderService) PlaceOrder(ctx context.Context, customerID uuid.UUID, input orders.PlaceOrderInput) (*orders.OrderSummary, error) {
	return &orders.OrderSummary{}, nil
}

func (stubOrderService) ListOrders(ctx context.Context, caller pkgauth.Identity) ([]orders.OrderListEntry, error) {
	return nil, nil
}

func (stubOrderService) GetOrder(ctx context.Context, caller pkgauth.Identity, orderID uuid.UUID) (*models.Order, error) {
	return &models.Order{}, nil
}

func (stubOrderService) UpdateStatus(ctx context.Context, caller pkgauth.Identity, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error) {
	return &models.Order{}, nil
}

type stubVendorService struct{}

func (stubVendorService) GetVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	return &models.Vendor{}, nil
}

func (stubVendorService) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	return nil, nil
}

func (stubVendorService) SetVerified(ctx context.Context, id uuid.UUID, verified bool) (*models.Vendor, error) {
	return &models.Vendor{}, nil
}

func (stubVendorService) UpdateSettings(ctx context.Context, id uuid.UUID, input vendors.UpdateSettingsInput) (*models.Vendor, error) {
	return &models.Vendor{}, nil
}

type stubAnalyticsService struct{}

func (stubAnalyticsService) PlatformTotals(ctx context.Context) (*analytics.PlatformTotals, error) {
	return &analytics.PlatformTotals{}, nil
}

func (stubAnalyticsService) TopVendors(ctx context.Context, limit int) ([]analytics.VendorRevenue, error) {
	return nil, nil
}

func (stubAnalyticsService) VendorSummary(ctx context.Context, vendorID uuid.UUID) (*analytics.VendorSummary, error) {
	return &analytics.VendorSummary{VendorID: vendorID}, nil
}

type stubWishlistService struct{}

func (stubWishlistService) Add(ctx context.Context, customerID, productID uuid.UUID) error {
	return nil
}

func (stubWishlistService) Remove(ctx context.Context, customerID, productID uuid.UUID) error {
	return nil
}

func (stubWishlistService) List(ctx context.Context, customerID uuid.UUID) ([]models.WishlistItem, error) {
	return nil, nil
}

func (stubWishlistService) RecordView(ctx context.Context, customerID, productID uuid.UUID) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
			SessionTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:           cfg,
		Logger:           logg,
		DBPinger:         stubPinger{},
		CachePinger:      stubPinger{},
		Sessions:         stubSessionChecker{},
		HTTPMetrics:      metrics.NewHTTPMetrics(nil),
		AuthService:      stubAuthService{},
		ProductService:   stubProductService{},
		OrderService:     stubOrderService{},
		VendorService:    stubVendorService{},
		AnalyticsService: stubAnalyticsService{},
		WishlistService:  stubWishlistService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole, vendorID *uuid.UUID) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   uuid.New(),
		Email:    "router@example.com",
		Role:     role,
		VendorID: vendorID,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, path := range []string{"/health/live", "/api/v1/ping", "/api/v1/products"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestAuthedGroupRejectsMissingToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPlaceOrderRequiresCustomerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	vendorID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleVendor, &vendorID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vendor placing order got %d", resp.Code)
	}
}

func TestVendorGroupRequiresVendorRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	customer := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/products", nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer on vendor route got %d", resp.Code)
	}

	vendorID := uuid.New()
	vendor := httptest.NewRequest(http.MethodGet, "/api/v1/vendor/products", nil)
	vendor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleVendor, &vendorID))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, vendor)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for vendor got %d", resp.Code)
	}
}

func TestAdminGroupRequiresSuperAdmin(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	vendorID := uuid.New()
	vendor := httptest.NewRequest(http.MethodGet, "/api/v1/admin/vendors", nil)
	vendor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleVendor, &vendorID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, vendor)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vendor on admin route got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/api/v1/admin/vendors", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleSuperAdmin, nil))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for super admin got %d", resp.Code)
	}
}

func TestWishlistRequiresCustomerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	vendorID := uuid.New()
	vendor := httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil)
	vendor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleVendor, &vendorID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, vendor)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vendor on wishlist got %d", resp.Code)
	}

	customer := httptest.NewRequest(http.MethodPut, "/api/v1/wishlist/"+uuid.NewString(), nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer, nil))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for customer wishlist add got %d", resp.Code)
	}
}

func TestProductViewTrackingRequiresCustomerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	path := "/api/v1/products/" + uuid.NewString() + "/view"

	vendorID := uuid.New()
	vendor := httptest.NewRequest(http.MethodPost, path, nil)
	vendor.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleVendor, &vendorID))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, vendor)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for vendor view tracking got %d", resp.Code)
	}

	customer := httptest.NewRequest(http.MethodPost, path, nil)
	customer.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer, nil))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, customer)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for customer view tracking got %d", resp.Code)
	}
}

func TestOrderListAllowsAnyAuthedRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for customer order list got %d", resp.Code)
	}
}
