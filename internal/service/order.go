package service

import (
	"context"
	"log/slog"

	"orderdesk/internal/domain"
	"orderdesk/internal/hub"
	"orderdesk/internal/store"
)

// OrderService couples order persistence to live notification fan-out.
// A notification failure never alters the outcome of the business
// operation that triggered it.
type OrderService struct {
	orders   store.OrderStore
	registry *hub.Registry
	logger   *slog.Logger
}

// NewOrderService creates a new OrderService with the given dependencies.
func NewOrderService(orders store.OrderStore, registry *hub.Registry, logger *slog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		registry: registry,
		logger:   logger,
	}
}

// Create persists the order and schedules an order-created broadcast.
// The broadcast runs on its own goroutine: the caller's response path
// returns as soon as persistence completes and is never blocked by slow
// or dead notification clients. On store failure no broadcast is
// scheduled.
func (s *OrderService) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	stored, err := s.orders.Insert(ctx, o)
	if err != nil {
		return nil, &domain.StorageError{Op: "insert order", Err: err}
	}

	go s.broadcast(domain.NewOrderCreated(stored))

	return stored, nil
}

// List returns stored orders in insertion order, paginated.
func (s *OrderService) List(ctx context.Context, offset, limit int) ([]*domain.Order, error) {
	orders, err := s.orders.List(ctx, offset, limit)
	if err != nil {
		return nil, &domain.StorageError{Op: "list orders", Err: err}
	}
	return orders, nil
}

// broadcast encodes the notification and fans it out. Composition
// failures are logged and swallowed.
func (s *OrderService) broadcast(n domain.Notification) {
	payload, err := n.Encode()
	if err != nil {
		s.logger.Error("failed to encode notification", slog.String("error", err.Error()))
		return
	}
	s.registry.Broadcast(payload)
}
