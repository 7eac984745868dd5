package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopsphere/marketplace-backend/internal/products"
	"github.com/shopsphere/marketplace-backend/internal/vendors"
	"github.com/shopsphere/marketplace-backend/pkg/auth"
	"github.com/shopsphere/marketplace-backend/pkg/db"
	"github.com/shopsphere/marketplace-backend/pkg/db/models"
	"github.com/shopsphere/marketplace-backend/pkg/enums"
	pkgerrors "github.com/shopsphere/marketplace-backend/pkg/errors"
	"github.com/shopsphere/marketplace-backend/pkg/logger"
	"github.com/shopsphere/marketplace-backend/pkg/metrics"
)

// defaultCommissionRate applies when a line's vendor record cannot be
// found. A documented fallback, never a silent zero.
var defaultCommissionRate = decimal.NewFromInt(10)

const (
	txMaxRetries     = 3
	txInitialBackoff = 10 * time.Millisecond
)

// Service exposes order placement, role-scoped listing, and status
// transitions.
type Service interface {
	PlaceOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput) (*OrderSummary, error)
	ListOrders(ctx context.Context, caller auth.Identity) ([]OrderListEntry, error)
	GetOrder(ctx context.Context, caller auth.Identity, orderID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, caller auth.Identity, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error)
}

type service struct {
	repo         *Repository
	productsRepo *products.Repository
	vendorsRepo  *vendors.Repository
	dbClient     *db.Client
	logg         *logger.Logger
	orderMetrics *metrics.OrderMetrics
}

// NewService constructs the order engine.
func NewService(repo *Repository, productsRepo *products.Repository, vendorsRepo *vendors.Repository, dbClient *db.Client, logg *logger.Logger, orderMetrics *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if vendorsRepo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:         repo,
		productsRepo: productsRepo,
		vendorsRepo:  vendorsRepo,
		dbClient:     dbClient,
		logg:         logg,
		orderMetrics: orderMetrics,
	}, nil
}

// PlaceOrder validates the cart, computes totals and commission, and
// persists the order, its items, and the stock decrements in one
// transaction. Lines are checked in submission order and the first
// failing line aborts the whole call with no partial writes.
func (s *service) PlaceOrder(ctx context.Context, customerID uuid.UUID, input PlaceOrderInput) (*OrderSummary, error) {
	if err := validateCartShape(input.Items); err != nil {
		s.orderMetrics.IncFailed(string(pkgerrors.CodeValidation))
		return nil, err
	}

	var summary *OrderSummary
	backoff := retry.WithMaxRetries(txMaxRetries, retry.NewExponential(txInitialBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		txErr := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
			result, err := s.placeOrderTx(ctx, tx, customerID, input.Items)
			if err != nil {
				return err
			}
			summary = result
			return nil
		})
		if db.IsSerializationFailure(txErr) {
			return retry.RetryableError(txErr)
		}
		return txErr
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			s.orderMetrics.IncFailed(string(typed.Code()))
		} else {
			s.orderMetrics.IncFailed(string(pkgerrors.CodeInternal))
		}
		return nil, err
	}

	total, _ := summary.TotalAmount.Float64()
	s.orderMetrics.IncPlaced(total)
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"order_id":     summary.OrderID.String(),
			"total_amount": summary.TotalAmount.String(),
		})
		s.logg.Info(ctx, "order placed")
	}
	return summary, nil
}

func (s *service) placeOrderTx(ctx context.Context, tx *gorm.DB, customerID uuid.UUID, lines []CartLine) (*OrderSummary, error) {
	productsTx := s.productsRepo.WithTx(tx)
	vendorsTx := s.vendorsRepo.WithTx(tx)

	// Validation pass, in submission order.
	loaded := make([]*models.Product, len(lines))
	for i, line := range lines {
		product, err := productsTx.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, lineError(pkgerrors.CodeProductNotFound, "product not found", line.ProductID, i)
			}
			return nil, err
		}
		if !product.IsActive {
			return nil, lineError(pkgerrors.CodeProductInactive, "product is not active", line.ProductID, i)
		}
		if product.Stock < line.Quantity {
			return nil, lineError(pkgerrors.CodeInsufficientStock, "insufficient stock for product", line.ProductID, i)
		}
		if product.VendorID != line.VendorID {
			return nil, lineError(pkgerrors.CodeVendorMismatch, "product does not belong to the given vendor", line.ProductID, i)
		}
		loaded[i] = product
	}

	// Commission rates, one lookup per distinct vendor.
	vendorIDs := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.VendorID]; ok {
			continue
		}
		seen[line.VendorID] = struct{}{}
		vendorIDs = append(vendorIDs, line.VendorID)
	}
	vendorRows, err := vendorsTx.FindByIDs(ctx, vendorIDs)
	if err != nil {
		return nil, err
	}

	totalAmount := decimal.Zero
	totalCommission := decimal.Zero
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		totalAmount = totalAmount.Add(lineTotal)

		rate := defaultCommissionRate
		if vendor, ok := vendorRows[line.VendorID]; ok {
			rate = vendor.CommissionRate
		} else if s.logg != nil {
			lctx := s.logg.WithVendorID(ctx, line.VendorID.String())
			s.logg.Warn(lctx, "vendor record missing, applying default commission rate")
		}
		totalCommission = totalCommission.Add(lineTotal.Mul(rate).Div(decimal.NewFromInt(100)))

		items = append(items, models.OrderItem{
			ID:        uuid.New(),
			ProductID: line.ProductID,
			VendorID:  line.VendorID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
		})
	}

	order := &models.Order{
		ID:                 uuid.New(),
		CustomerID:         customerID,
		TotalAmount:        totalAmount.Round(2),
		PlatformCommission: totalCommission.Round(2),
		Status:             enums.OrderStatusPending,
		Items:              items,
	}
	if _, err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
		return nil, err
	}

	// Conditional decrement is the oversell guard. A concurrent order may
	// have consumed the stock validated above; losing the race rolls the
	// whole transaction back.
	for i, line := range lines {
		ok, err := productsTx.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, lineError(pkgerrors.CodeInsufficientStock, "insufficient stock for product", line.ProductID, i)
		}
	}

	return &OrderSummary{
		OrderID:            order.ID,
		TotalAmount:        order.TotalAmount,
		PlatformCommission: order.PlatformCommission,
	}, nil
}

// ListOrders branches on caller role. Customers see their own orders,
// vendors the orders containing at least one of their lines, admins all.
func (s *service) ListOrders(ctx context.Context, caller auth.Identity) ([]OrderListEntry, error) {
	switch caller.Role() {
	case enums.UserRoleCustomer:
		return s.repo.ListByCustomer(ctx, caller.UserID())
	case enums.UserRoleVendor:
		vendorID, ok := caller.VendorID()
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "vendor account not linked")
		}
		return s.repo.ListByVendor(ctx, vendorID)
	case enums.UserRoleSuperAdmin:
		return s.repo.ListAll(ctx)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot list orders")
	}
}

// GetOrder loads one order, enforcing the same visibility rules as
// ListOrders.
func (s *service) GetOrder(ctx context.Context, caller auth.Identity, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}
	if !s.canSeeOrder(caller, order) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

// UpdateStatus advances an order through the status machine. Admins may
// transition any order; vendors only orders containing their items.
func (s *service) UpdateStatus(ctx context.Context, caller auth.Identity, orderID uuid.UUID, next enums.OrderStatus) (*models.Order, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, err
	}

	switch caller.Role() {
	case enums.UserRoleSuperAdmin:
	case enums.UserRoleVendor:
		vendorID, ok := caller.VendorID()
		if !ok || !orderContainsVendor(order, vendorID) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot update orders")
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").
			WithDetails(map[string]any{"from": string(order.Status), "to": string(next)})
	}

	if err := s.repo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	order.Status = next
	return order, nil
}

func (s *service) canSeeOrder(caller auth.Identity, order *models.Order) bool {
	switch caller.Role() {
	case enums.UserRoleSuperAdmin:
		return true
	case enums.UserRoleCustomer:
		return order.CustomerID == caller.UserID()
	case enums.UserRoleVendor:
		vendorID, ok := caller.VendorID()
		return ok && orderContainsVendor(order, vendorID)
	default:
		return false
	}
}

func orderContainsVendor(order *models.Order, vendorID uuid.UUID) bool {
	for _, item := range order.Items {
		if item.VendorID == vendorID {
			return true
		}
	}
	return false
}

func validateCartShape(lines []CartLine) error {
	if len(lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	for i, line := range lines {
		if line.Quantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
				WithDetails(map[string]any{"line": i})
		}
		if line.UnitPrice.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative").
				WithDetails(map[string]any{"line": i})
		}
	}
	return nil
}

func lineError(code pkgerrors.Code, message string, productID uuid.UUID, line int) *pkgerrors.Error {
	return pkgerrors.New(code, message).
		WithDetails(map[string]any{"product_id": productID.String(), "line": line})
}
