package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/svend4/flowershop-orders/internal/domain"
)

type PostgresOrderStore struct {
	Pool   *pgxpool.Pool
	Logger *zap.Logger
}

func NewPostgresOrderStore(pool *pgxpool.Pool, logger *zap.Logger) *PostgresOrderStore {
	return &PostgresOrderStore{Pool: pool, Logger: logger}
}

// CreateOrder inserts the order row and every line row in one transaction:
// either all rows become visible or none do. Any database error rolls the
// whole order back.
func (s *PostgresOrderStore) CreateOrder(ctx context.Context, req domain.OrderRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO orders(customer_name, phone) VALUES($1, $2) RETURNING id`,
		req.CustomerName, req.Phone).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, line := range req.Lines {
		price, err := s.productPrice(ctx, tx, line.ProductID)
		if err != nil {
			return 0, err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO order_items(order_id, product_id, qty, price) VALUES($1, $2, $3, $4)`,
			orderID, line.ProductID, line.Qty, price); err != nil {
			return 0, fmt.Errorf("insert order line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	return orderID, nil
}

// productPrice reads the current catalog price inside the order transaction.
// A missing product prices the line at zero instead of failing the order.
func (s *PostgresOrderStore) productPrice(ctx context.Context, tx pgx.Tx, productID int64) (decimal.Decimal, error) {
	var priceText string
	err := tx.QueryRow(ctx, `SELECT price::text FROM products WHERE id = $1`, productID).Scan(&priceText)
	if errors.Is(err, pgx.ErrNoRows) {
		s.Logger.Warn("product not in catalog, pricing line at zero", zap.Int64("product_id", productID))
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("read product price: %w", err)
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse product price: %w", err)
	}
	return price, nil
}

func (s *PostgresOrderStore) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := s.Pool.QueryRow(ctx,
		`SELECT id, customer_name, phone, created_at FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.CustomerName, &o.Phone, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("read order: %w", err)
	}

	rows, err := s.Pool.Query(ctx,
		`SELECT product_id, qty, price::text FROM order_items WHERE order_id = $1 ORDER BY product_id`, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("read order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line domain.OrderLine
		var priceText string
		if err := rows.Scan(&line.ProductID, &line.Qty, &priceText); err != nil {
			return domain.Order{}, fmt.Errorf("scan order line: %w", err)
		}
		line.Price, err = decimal.NewFromString(priceText)
		if err != nil {
			return domain.Order{}, fmt.Errorf("parse line price: %w", err)
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("read order lines: %w", err)
	}
	return o, nil
}

var _ domain.OrderStore = (*PostgresOrderStore)(nil)

// EnsureSchema — create the required tables if absent.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS products (
  id bigint PRIMARY KEY,
  price numeric(12,2) NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS orders (
  id bigserial PRIMARY KEY,
  customer_name text NOT NULL,
  phone text NOT NULL DEFAULT '',
  created_at timestamptz NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS order_items (
  order_id bigint NOT NULL REFERENCES orders(id),
  product_id bigint NOT NULL,
  qty int NOT NULL,
  price numeric(12,2) NOT NULL
);`)
	return err
}
