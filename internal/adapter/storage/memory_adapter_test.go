package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

func TestMemoryStore_Idempotency(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ok, err := store.SetIdempotency(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.SetIdempotency(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.ReleaseIdempotency(ctx, "k"))

	ok, err = store.SetIdempotency(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_IdempotencyConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.SetIdempotency(ctx, "same"); ok {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successCount.Load())
}

func TestMemoryStore_Orders(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.SaveOrder(ctx, domain.Order{ID: "1", ISBN: "A", Quantity: 1}))
	require.NoError(t, store.SaveOrder(ctx, domain.Order{ID: "2", ISBN: "B", Quantity: 2}))
	require.NoError(t, store.SaveOrder(ctx, domain.Order{ID: "3", ISBN: "A", Quantity: 3}))

	orders, err := store.ListOrders(ctx, "A")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "1", orders[0].ID)
	assert.Equal(t, "3", orders[1].ID)

	orders, err = store.ListOrders(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, orders)
}
