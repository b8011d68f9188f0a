package store

import (
	"context"

	"orderdesk/internal/domain"
)

// OrderStore persists orders. Insert assigns the order's ID; List returns
// orders in insertion order, paginated by offset and limit.
type OrderStore interface {
	Insert(ctx context.Context, o *domain.Order) (*domain.Order, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Order, error)
}
