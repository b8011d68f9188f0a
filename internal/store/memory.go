package store

import (
	"context"
	"sync"

	"github.com/google/btree"

	"orderdesk/internal/domain"
)

// MemoryStore is a thread-safe in-memory OrderStore. Orders are kept in
// a B-tree ordered by ID, so List traverses insertion order directly.
type MemoryStore struct {
	mu     sync.RWMutex
	orders *btree.BTreeG[*domain.Order]
	nextID int64
}

func orderLess(a, b *domain.Order) bool {
	return a.ID < b.ID
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	const degree = 32
	return &MemoryStore{
		orders: btree.NewG[*domain.Order](degree, orderLess),
	}
}

// Insert assigns the next ID and stores the order.
func (s *MemoryStore) Insert(_ context.Context, o *domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := *o
	stored.ID = s.nextID
	s.orders.ReplaceOrInsert(&stored)
	return &stored, nil
}

// List returns up to limit orders in ID order, skipping the first offset.
func (s *MemoryStore) List(_ context.Context, offset, limit int) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Order, 0, limit)
	skipped := 0
	s.orders.Ascend(func(o *domain.Order) bool {
		if skipped < offset {
			skipped++
			return true
		}
		if len(result) >= limit {
			return false
		}
		result = append(result, o)
		return true
	})
	return result, nil
}
