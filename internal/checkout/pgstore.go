package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists orders in Postgres.
type PGStore struct {
	Pool *pgxpool.Pool
}

// SaveOrder writes the order and its lines in one transaction.
func (s PGStore) SaveOrder(ctx context.Context, order Order) error {
	if s.Pool == nil {
		return errors.New("order store not configured")
	}
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`INSERT INTO orders (id, session_id, currency, subtotal, shipping, tax, payable, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID, order.SessionID, order.Currency,
		order.Quote.Subtotal, order.Quote.Shipping, order.Quote.Tax, order.Quote.Payable,
		order.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, line := range order.Lines {
		if _, err := tx.Exec(ctx,
			`INSERT INTO order_items (order_id, product_id, name, qty, unit_price, subtotal)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, line.ProductID, line.Name, line.Qty, line.UnitPrice, line.Subtotal,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// OrderByID loads an order and its lines.
func (s PGStore) OrderByID(ctx context.Context, id uuid.UUID) (Order, error) {
	if s.Pool == nil {
		return Order{}, errors.New("order store not configured")
	}
	var order Order
	err := s.Pool.QueryRow(ctx,
		`SELECT id, session_id, currency, subtotal, shipping, tax, payable, created_at
		 FROM orders WHERE id = $1`, id,
	).Scan(
		&order.ID, &order.SessionID, &order.Currency,
		&order.Quote.Subtotal, &order.Quote.Shipping, &order.Quote.Tax, &order.Quote.Payable,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrOrderNotFound
		}
		return Order{}, fmt.Errorf("load order: %w", err)
	}

	rows, err := s.Pool.Query(ctx,
		`SELECT product_id, name, qty, unit_price, subtotal
		 FROM order_items WHERE order_id = $1 ORDER BY product_id`, id)
	if err != nil {
		return Order{}, fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line OrderLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Qty, &line.UnitPrice, &line.Subtotal); err != nil {
			return Order{}, fmt.Errorf("scan order item: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return Order{}, err
	}
	return order, nil
}
