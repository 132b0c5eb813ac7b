package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/ecommerce-platform/internal/product"
)

// stubProducts serves the bulk fetch from a fixed map.
type stubProducts struct {
	items map[int64]product.Product
}

func (s *stubProducts) List(ctx context.Context, skip, limit int) ([]product.Product, error) {
	return nil, nil
}

func (s *stubProducts) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

func (s *stubProducts) GetManyByIDs(ctx context.Context, ids []int64) (map[int64]product.Product, error) {
	out := make(map[int64]product.Product)
	for _, id := range ids {
		if p, ok := s.items[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *stubProducts) Insert(ctx context.Context, p *product.Product) error {
	s.items[p.ID] = *p
	return nil
}

// stubOrders records the committed order and mirrors the transactional stock
// decrement against the product stub.
type stubOrders struct {
	products  *stubProducts
	lastOrder *Order
	lastItems []Item
	placeErr  error
}

func (s *stubOrders) Place(ctx context.Context, o *Order, items []Item) error {
	if s.placeErr != nil {
		return s.placeErr
	}
	for _, it := range items {
		p := s.products.items[it.ProductID]
		if p.Stock < it.Quantity {
			return fmt.Errorf("insufficient stock for product %d at commit time", it.ProductID)
		}
		p.Stock -= it.Quantity
		s.products.items[it.ProductID] = p
	}
	o.ID = 1
	cp := *o
	s.lastOrder = &cp
	s.lastItems = append([]Item(nil), items...)
	for i := range s.lastItems {
		s.lastItems[i].OrderID = o.ID
	}
	return nil
}

func (s *stubOrders) GetByID(ctx context.Context, id int64) (*Order, []Item, error) {
	if s.lastOrder == nil || s.lastOrder.ID != id {
		return nil, nil, ErrNotFound
	}
	return s.lastOrder, s.lastItems, nil
}

func fixture() (*stubProducts, *stubOrders, *Service) {
	products := &stubProducts{items: map[int64]product.Product{
		1: {ID: 1, Name: "Phone", Price: decimal.NewFromInt(1200), Stock: 10},
		2: {ID: 2, Name: "Case", Price: decimal.RequireFromString("19.90"), Stock: 3},
	}}
	orders := &stubOrders{products: products}
	return products, orders, NewService(products, orders)
}

func TestPlace_ComputesTotalFromPreDecrementPrices(t *testing.T) {
	products, orders, svc := fixture()

	o, lines, err := svc.Place(context.Background(), CreateOrderRequest{
		Products: []LineItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := decimal.RequireFromString("2459.70") // 2*1200 + 3*19.90
	if !o.TotalPrice.Equal(want) {
		t.Fatalf("total=%s, want %s", o.TotalPrice, want)
	}
	if o.Status != StatusPlaced {
		t.Fatalf("status=%s, want %s", o.Status, StatusPlaced)
	}
	if len(lines) != 2 {
		t.Fatalf("expected the requested lines back, got %d", len(lines))
	}
	if got := products.items[1].Stock; got != 8 {
		t.Fatalf("product 1 stock=%d, want 8", got)
	}
	if got := products.items[2].Stock; got != 0 {
		t.Fatalf("product 2 stock=%d, want 0", got)
	}
	if orders.lastOrder == nil || len(orders.lastItems) != 2 {
		t.Fatalf("order and items were not persisted together")
	}
}

func TestPlace_EmptyRequest(t *testing.T) {
	_, _, svc := fixture()

	_, _, err := svc.Place(context.Background(), CreateOrderRequest{})
	if !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestPlace_AggregatesAllViolations(t *testing.T) {
	products, orders, svc := fixture()

	_, _, err := svc.Place(context.Background(), CreateOrderRequest{
		Products: []LineItem{
			{ProductID: 100, Quantity: 1}, // unknown
			{ProductID: 1, Quantity: 0},   // bad quantity
			{ProductID: 2, Quantity: 5},   // over stock
		},
	})

	var invalid *InvalidOrderError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidOrderError, got %v", err)
	}
	if len(invalid.Errors) != 3 {
		t.Fatalf("expected 3 aggregated errors, got %d: %v", len(invalid.Errors), invalid.Errors)
	}
	joined := strings.Join(invalid.Errors, "; ")
	if !strings.Contains(joined, "Products not found: [100]") {
		t.Fatalf("missing-products entry absent: %v", invalid.Errors)
	}
	if !strings.Contains(joined, "quantity cannot be less than or equal to 0") {
		t.Fatalf("quantity entry absent: %v", invalid.Errors)
	}
	if !strings.Contains(joined, "Insufficient stock for product - 2, name - Case, stock - 3") {
		t.Fatalf("stock entry absent: %v", invalid.Errors)
	}
	if len(invalid.Payload.Products) != 3 {
		t.Fatalf("payload should echo the original request")
	}

	// Validation never reaches the commit phase.
	if orders.lastOrder != nil {
		t.Fatalf("no order may be created on validation failure")
	}
	if products.items[1].Stock != 10 || products.items[2].Stock != 3 {
		t.Fatalf("stock must be untouched on validation failure")
	}
}

func TestPlace_MissingProductSkipsItsOwnChecks(t *testing.T) {
	_, _, svc := fixture()

	_, _, err := svc.Place(context.Background(), CreateOrderRequest{
		Products: []LineItem{{ProductID: 100, Quantity: -5}},
	})

	var invalid *InvalidOrderError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidOrderError, got %v", err)
	}
	if len(invalid.Errors) != 1 {
		t.Fatalf("a missing product must only produce the missing entry, got %v", invalid.Errors)
	}
}

func TestPlace_DuplicateLinesLastWins(t *testing.T) {
	products, orders, svc := fixture()

	o, _, err := svc.Place(context.Background(), CreateOrderRequest{
		Products: []LineItem{
			{ProductID: 1, Quantity: 5},
			{ProductID: 1, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders.lastItems) != 1 || orders.lastItems[0].Quantity != 2 {
		t.Fatalf("duplicate lines must collapse to the last one, got %+v", orders.lastItems)
	}
	if got := products.items[1].Stock; got != 8 {
		t.Fatalf("stock=%d, want 8 (only the last line decremented)", got)
	}
	if want := decimal.NewFromInt(2400); !o.TotalPrice.Equal(want) {
		t.Fatalf("total=%s, want %s", o.TotalPrice, want)
	}
}

func TestPlace_InsufficientStock(t *testing.T) {
	products, orders, svc := fixture()
	products.items[2] = product.Product{ID: 2, Name: "Case", Price: decimal.NewFromInt(10), Stock: 1}

	_, _, err := svc.Place(context.Background(), CreateOrderRequest{
		Products: []LineItem{{ProductID: 2, Quantity: 2}},
	})

	var invalid *InvalidOrderError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidOrderError, got %v", err)
	}
	if products.items[2].Stock != 1 {
		t.Fatalf("stock must remain 1, got %d", products.items[2].Stock)
	}
	if orders.lastOrder != nil {
		t.Fatalf("no order may be created")
	}
}

func TestPlace_CommitFailureIsPersistenceError(t *testing.T) {
	_, orders, svc := fixture()
	orders.placeErr = errors.New("connection reset")

	_, _, err := svc.Place(context.Background(), CreateOrderRequest{
		Products: []LineItem{{ProductID: 1, Quantity: 1}},
	})

	var persistence *PersistenceError
	if !errors.As(err, &persistence) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if !strings.Contains(persistence.Error(), "connection reset") {
		t.Fatalf("cause must be carried: %v", persistence)
	}
}

func TestGet_ReturnsStoredLines(t *testing.T) {
	_, _, svc := fixture()

	placed, _, err := svc.Place(context.Background(), CreateOrderRequest{
		Products: []LineItem{{ProductID: 1, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	o, lines, err := svc.Get(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.ID != placed.ID || len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("stored order mismatch: %+v %+v", o, lines)
	}

	if _, _, err := svc.Get(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
