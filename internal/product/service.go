package product

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("product not found")

	// ErrNoProducts is returned when a listing page is empty. An empty first
	// page of an empty catalog is an error too; the API contract promises a
	// 404 there.
	ErrNoProducts = errors.New("No products available")

	ErrInvalidPrice = errors.New("Price must be greater than zero")
	ErrInvalidStock = errors.New("Stock cannot be negative")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

// List returns one page of the catalog. skip must be >= 0 and limit within
// [1,100]; the HTTP layer enforces those bounds before calling.
func (s *Service) List(ctx context.Context, skip, limit int) ([]Product, error) {
	products, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, ErrNoProducts
	}
	return products, nil
}

func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Price.Cmp(decimal.Zero) <= 0 {
		return nil, ErrInvalidPrice
	}
	if req.Stock < 0 {
		return nil, ErrInvalidStock
	}
	p := &Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
