package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopsphere/marketplace-backend/pkg/enums"
)

// CartLine is one client-submitted order line. UnitPrice is taken as the
// line price as submitted; stock, active state, and vendor binding are
// verified against the catalog but the price itself is not re-derived.
type CartLine struct {
	ProductID uuid.UUID
	VendorID  uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// PlaceOrderInput is the validated payload for order placement.
type PlaceOrderInput struct {
	Items []CartLine
}

// OrderSummary is the result of a successful placement.
type OrderSummary struct {
	OrderID            uuid.UUID       `json:"orderId"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	PlatformCommission decimal.Decimal `json:"platformCommission"`
}

// OrderListEntry is one row of a role-scoped order listing.
type OrderListEntry struct {
	OrderID            uuid.UUID         `json:"orderId"`
	CustomerID         uuid.UUID         `json:"customerId"`
	TotalAmount        decimal.Decimal   `json:"totalAmount"`
	PlatformCommission decimal.Decimal   `json:"platformCommission"`
	Status             enums.OrderStatus `json:"status"`
	ItemCount          int               `json:"itemCount"`
	CreatedAt          time.Time         `json:"createdAt"`
}
