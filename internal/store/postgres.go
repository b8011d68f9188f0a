package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"orderdesk/internal/domain"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS orders (
    id BIGSERIAL PRIMARY KEY,
    symbol VARCHAR(255),
    price DOUBLE PRECISION NOT NULL,
    quantity BIGINT NOT NULL,
    order_type VARCHAR(255)
);

CREATE INDEX IF NOT EXISTS idx_orders_symbol ON orders(symbol);
CREATE INDEX IF NOT EXISTS idx_orders_order_type ON orders(order_type);
`

// PostgresStore is an OrderStore backed by PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to the database and applies the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Insert stores the order and fills in the database-assigned ID.
func (s *PostgresStore) Insert(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	stored := *o
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO orders (symbol, price, quantity, order_type) VALUES ($1, $2, $3, $4) RETURNING id",
		o.Symbol, o.Price, o.Quantity, o.OrderType,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}
	return &stored, nil
}

// List returns up to limit orders in insertion order, skipping the first
// offset.
func (s *PostgresStore) List(ctx context.Context, offset, limit int) ([]*domain.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, symbol, price, quantity, order_type FROM orders ORDER BY id OFFSET $1 LIMIT $2",
		offset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, limit)
	for rows.Next() {
		var o domain.Order
		var symbol, orderType sql.NullString
		if err := rows.Scan(&o.ID, &symbol, &o.Price, &o.Quantity, &orderType); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Symbol = symbol.String
		o.OrderType = orderType.String
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

// Close releases the database connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
