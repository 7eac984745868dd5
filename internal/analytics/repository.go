package analytics

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopsphere/marketplace-backend/pkg/enums"
)

// PlatformTotals aggregates marketplace revenue. Cancelled orders are
// excluded; every other status counts as realized or in-flight revenue.
type PlatformTotals struct {
	OrderCount         int64           `json:"orderCount"`
	GrossRevenue       decimal.Decimal `json:"grossRevenue"`
	PlatformCommission decimal.Decimal `json:"platformCommission"`
}

// VendorRevenue is one row of the top-vendor ranking.
type VendorRevenue struct {
	VendorID  uuid.UUID       `gorm:"column:vendor_id" json:"vendorId"`
	LineCount int64           `gorm:"column:line_count" json:"lineCount"`
	Revenue   decimal.Decimal `gorm:"column:revenue" json:"revenue"`
}

// VendorSummary is one vendor's sales rollup.
type VendorSummary struct {
	VendorID   uuid.UUID       `gorm:"-" json:"vendorId"`
	OrderCount int64           `gorm:"column:order_count" json:"orderCount"`
	LineCount  int64           `gorm:"column:line_count" json:"lineCount"`
	Revenue    decimal.Decimal `gorm:"column:revenue" json:"revenue"`
}

// Repository runs read-only aggregate queries over orders.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// PlatformTotals sums order totals and commission across non-cancelled
// orders.
func (r *Repository) PlatformTotals(ctx context.Context) (*PlatformTotals, error) {
	var row struct {
		OrderCount         int64           `gorm:"column:order_count"`
		GrossRevenue       decimal.Decimal `gorm:"column:gross_revenue"`
		PlatformCommission decimal.Decimal `gorm:"column:platform_commission"`
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS order_count,
		       COALESCE(SUM(total_amount), 0) AS gross_revenue,
		       COALESCE(SUM(platform_commission), 0) AS platform_commission
		FROM orders
		WHERE status <> ?`, enums.OrderStatusCancelled).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &PlatformTotals{
		OrderCount:         row.OrderCount,
		GrossRevenue:       row.GrossRevenue,
		PlatformCommission: row.PlatformCommission,
	}, nil
}

// VendorSummary aggregates one vendor's line revenue and order reach
// over non-cancelled orders.
func (r *Repository) VendorSummary(ctx context.Context, vendorID uuid.UUID) (*VendorSummary, error) {
	var row VendorSummary
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS line_count,
		       COUNT(DISTINCT oi.order_id) AS order_count,
		       COALESCE(SUM(oi.price * oi.quantity), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.vendor_id = ? AND o.status <> ?`, vendorID, enums.OrderStatusCancelled).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	row.VendorID = vendorID
	return &row, nil
}

// TopVendors ranks vendors by line revenue over non-cancelled orders.
func (r *Repository) TopVendors(ctx context.Context, limit int) ([]VendorRevenue, error) {
	var rows []VendorRevenue
	err := r.db.WithContext(ctx).Raw(`
		SELECT oi.vendor_id AS vendor_id,
		       COUNT(*) AS line_count,
		       COALESCE(SUM(oi.price * oi.quantity), 0) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status <> ?
		GROUP BY oi.vendor_id
		ORDER BY revenue DESC
		LIMIT ?`, enums.OrderStatusCancelled, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
