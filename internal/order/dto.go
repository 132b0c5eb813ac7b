package order

import "github.com/shopspring/decimal"

// LineItem payload of a requested line.
// swagger:model LineItem
type LineItem struct {
	ProductID int64 `json:"product_id" example:"1"`
	Quantity  int   `json:"quantity"   example:"2"`
}

// CreateOrderRequest payload of order placement.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Products []LineItem `json:"products"`
}

// Response is the public shape of a placed order.
// swagger:model OrderResponse
type Response struct {
	ID         int64           `json:"id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     Status          `json:"status"`
	Products   []LineItem      `json:"products"`
}
