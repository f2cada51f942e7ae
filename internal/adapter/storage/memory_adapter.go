package storage

import (
	"context"
	"sync"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

// MemoryStore implements both ports in process. It is the default for the
// demo and for tests.
type MemoryStore struct {
	mu     sync.RWMutex
	keys   map[string]struct{}
	orders []domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]struct{})}
}

func (m *MemoryStore) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	m.keys[key] = struct{}{}
	return true, nil
}

func (m *MemoryStore) ReleaseIdempotency(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

func (m *MemoryStore) SaveOrder(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, order)
	return nil
}

func (m *MemoryStore) ListOrders(ctx context.Context, isbn string) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Order
	for _, o := range m.orders {
		if o.ISBN == isbn {
			out = append(out, o)
		}
	}
	return out, nil
}
