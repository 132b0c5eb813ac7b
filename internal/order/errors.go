package order

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("order not found")
	ErrEmptyOrder = errors.New("Order must contain at least one product")
)

// InvalidOrderError aggregates every validation failure found across an
// order's lines, together with the payload that produced them. It is built
// in one pass over the request; nothing short-circuits on the first error.
type InvalidOrderError struct {
	Payload CreateOrderRequest
	Errors  []string
}

func (e *InvalidOrderError) Error() string {
	return "Invalid details supplied for product"
}

// PersistenceError wraps a store-level failure during the commit phase. The
// transaction has already been rolled back when it surfaces.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("An error occurred while processing the order: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
