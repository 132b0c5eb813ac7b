package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPlaced Status = "placed"
	// StatusCompleted is reserved for order fulfillment; no code path
	// produces it yet.
	StatusCompleted Status = "completed"
)

type Order struct {
	ID int64 `json:"id"`
	// TotalPrice is computed by the service, never taken from the caller.
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Item is one stored order line. The (order_id, product_id) pair is the
// primary key, so an order holds at most one line per product.
type Item struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
