package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Place commits the order, its items and the stock decrements in one
	// transaction, populating o's generated id and timestamps. Items must
	// already carry their ProductID and Quantity; OrderID is filled in here.
	Place(ctx context.Context, o *Order, items []Item) error
	GetByID(ctx context.Context, id int64) (*Order, []Item, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Place(ctx context.Context, o *Order, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Conditional decrement: a concurrent order that drained the stock after
	// our validation read makes RowsAffected 0 here, aborting the whole
	// transaction instead of driving stock negative.
	for _, it := range items {
		tag, err := tx.Exec(ctx, `
			UPDATE products
			SET stock = stock - $2, updated_at = NOW()
			WHERE id = $1 AND stock >= $2
		`, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("insufficient stock for product %d at commit time", it.ProductID)
		}
	}

	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (total_price, status)
		VALUES ($1,$2)
		RETURNING id, created_at, updated_at
	`, o.TotalPrice, string(o.Status)).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}

	for i := range items {
		items[i].OrderID = o.ID
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity)
			VALUES ($1,$2,$3)
		`, o.ID, items[i].ProductID, items[i].Quantity); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Order, []Item, error) {
	var o Order
	if err := r.db.QueryRow(ctx, `
		SELECT id, total_price::text, status, created_at, updated_at
		FROM orders WHERE id=$1
	`, id).Scan(&o.ID, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, nil, ErrNotFound
	}
	rows, err := r.db.Query(ctx, `
		SELECT order_id, product_id, quantity
		FROM order_items WHERE order_id=$1
		ORDER BY product_id
	`, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.OrderID, &it.ProductID, &it.Quantity); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	return &o, items, rows.Err()
}
