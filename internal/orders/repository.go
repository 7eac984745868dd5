package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopsphere/marketplace-backend/pkg/db/models"
	"github.com/shopsphere/marketplace-backend/pkg/enums"
)

// Repository provides order persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the order together with its items.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads the order with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

const itemCountSelect = "orders.*, (SELECT COUNT(*) FROM order_items WHERE order_items.order_id = orders.id) AS item_count"

type listRow struct {
	models.Order
	ItemCount int `gorm:"column:item_count"`
}

// ListByCustomer returns the customer's orders, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderListEntry, error) {
	var rows []listRow
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select(itemCountSelect).
		Where("orders.customer_id = ?", customerID).
		Order("orders.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

// ListByVendor returns orders containing at least one of the vendor's line
// items, newest first. The EXISTS form keeps each order to a single row even
// when several of its lines belong to the vendor.
func (r *Repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]OrderListEntry, error) {
	var rows []listRow
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select(itemCountSelect).
		Where("EXISTS (SELECT 1 FROM order_items oi WHERE oi.order_id = orders.id AND oi.vendor_id = ?)", vendorID).
		Order("orders.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

// ListAll returns every order, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]OrderListEntry, error) {
	var rows []listRow
	if err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select(itemCountSelect).
		Order("orders.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toEntries(rows), nil
}

// UpdateStatus writes the new status value.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func toEntries(rows []listRow) []OrderListEntry {
	entries := make([]OrderListEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, OrderListEntry{
			OrderID:            row.ID,
			CustomerID:         row.CustomerID,
			TotalAmount:        row.TotalAmount,
			PlatformCommission: row.PlatformCommission,
			Status:             row.Status,
			ItemCount:          row.ItemCount,
			CreatedAt:          row.CreatedAt,
		})
	}
	return entries
}
