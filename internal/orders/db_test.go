package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopsphere/marketplace-backend/internal/products"
	"github.com/shopsphere/marketplace-backend/internal/vendors"
	"github.com/shopsphere/marketplace-backend/pkg/auth"
	"github.com/shopsphere/marketplace-backend/pkg/db"
	"github.com/shopsphere/marketplace-backend/pkg/db/models"
	"github.com/shopsphere/marketplace-backend/pkg/enums"
	"github.com/shopsphere/marketplace-backend/pkg/metrics"
)

type testEnv struct {
	conn    *gorm.DB
	svc     Service
	repo    *Repository
	prodDAO *products.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Vendor{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewRepository(conn)
	prodDAO := products.NewRepository(conn)
	svc, err := NewService(repo, prodDAO, vendors.NewRepository(conn), db.NewFromGorm(conn), nil, metrics.NewOrderMetrics(nil))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &testEnv{conn: conn, svc: svc, repo: repo, prodDAO: prodDAO}
}

func (e *testEnv) seedVendor(t *testing.T, rate string) *models.Vendor {
	t.Helper()
	vendor := &models.Vendor{
		ID:             uuid.New(),
		Name:           "Vendor " + uuid.NewString()[:8],
		CommissionRate: decimal.RequireFromString(rate),
	}
	if err := e.conn.Create(vendor).Error; err != nil {
		t.Fatalf("seed vendor: %v", err)
	}
	return vendor
}

func (e *testEnv) seedProduct(t *testing.T, vendorID uuid.UUID, price string, stock int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		Name:     "Product " + uuid.NewString()[:8],
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		VendorID: vendorID,
		IsActive: active,
	}
	if err := e.conn.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func (e *testEnv) productStock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	var product models.Product
	if err := e.conn.First(&product, "id = ?", id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return product.Stock
}

func (e *testEnv) countRows(t *testing.T, model any) int64 {
	t.Helper()
	var count int64
	if err := e.conn.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func customerIdentity(t *testing.T, userID uuid.UUID) auth.Identity {
	t.Helper()
	ident, err := auth.NewIdentity(userID, "customer@example.com", enums.UserRoleCustomer, nil)
	if err != nil {
		t.Fatalf("customer identity: %v", err)
	}
	return ident
}

func vendorIdentity(t *testing.T, vendorID uuid.UUID) auth.Identity {
	t.Helper()
	ident, err := auth.NewIdentity(uuid.New(), "vendor@example.com", enums.UserRoleVendor, &vendorID)
	if err != nil {
		t.Fatalf("vendor identity: %v", err)
	}
	return ident
}

func adminIdentity(t *testing.T) auth.Identity {
	t.Helper()
	ident, err := auth.NewIdentity(uuid.New(), "admin@example.com", enums.UserRoleSuperAdmin, nil)
	if err != nil {
		t.Fatalf("admin identity: %v", err)
	}
	return ident
}
