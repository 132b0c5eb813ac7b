package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/ecommerce-platform/internal/product"
)

type Service struct {
	products product.Repository
	orders   Repository
}

func NewService(products product.Repository, orders Repository) *Service {
	return &Service{products: products, orders: orders}
}

// Place validates the requested lines against live inventory and, if every
// line passes, commits the order atomically. It returns the persisted order
// together with the lines as requested; items are not re-read from storage.
func (s *Service) Place(ctx context.Context, req CreateOrderRequest) (*Order, []LineItem, error) {
	if len(req.Products) == 0 {
		return nil, nil, ErrEmptyOrder
	}

	// Index lines by product id. Duplicate ids collapse to the last line in
	// the request.
	ids := make([]int64, 0, len(req.Products))
	lines := make(map[int64]LineItem, len(req.Products))
	for _, line := range req.Products {
		if _, seen := lines[line.ProductID]; !seen {
			ids = append(ids, line.ProductID)
		}
		lines[line.ProductID] = line
	}

	products, err := s.products.GetManyByIDs(ctx, ids)
	if err != nil {
		return nil, nil, &PersistenceError{Err: err}
	}

	// Collect every violation before reporting; a missing product skips its
	// own quantity and stock checks.
	var errs []string
	if len(products) != len(lines) {
		var missing []int64
		for _, id := range ids {
			if _, ok := products[id]; !ok {
				missing = append(missing, id)
			}
		}
		errs = append(errs, fmt.Sprintf("Products not found: %v", missing))
	}
	for _, id := range ids {
		p, ok := products[id]
		if !ok {
			continue
		}
		if lines[id].Quantity <= 0 {
			errs = append(errs, "Product quantity cannot be less than or equal to 0")
		}
		if p.Stock < lines[id].Quantity {
			errs = append(errs, fmt.Sprintf("Insufficient stock for product - %d, name - %s, stock - %d",
				p.ID, p.Name, p.Stock))
		}
	}
	if len(errs) > 0 {
		return nil, nil, &InvalidOrderError{Payload: req, Errors: errs}
	}

	total := decimal.Zero
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		line := lines[id]
		total = total.Add(products[id].Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, Item{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	o := &Order{TotalPrice: total, Status: StatusPlaced}
	if err := s.orders.Place(ctx, o, items); err != nil {
		return nil, nil, &PersistenceError{Err: err}
	}
	return o, req.Products, nil
}

// Get reads an order back with its stored lines.
func (s *Service) Get(ctx context.Context, id int64) (*Order, []LineItem, error) {
	o, items, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	lines := make([]LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, LineItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return o, lines, nil
}
