package demo

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/quantum-bookstore/internal/adapter/storage"
	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
)

func newDemoService(t *testing.T) (*service.BookstoreService, *storage.MemoryStore) {
	t.Helper()

	items, err := SeedCatalog()
	require.NoError(t, err)
	inv, err := domain.NewInventory(items...)
	require.NoError(t, err)

	store := storage.NewMemoryStore()
	svc := service.NewBookstoreService(inv, store)
	svc.StartRecorders(1, store)
	return svc, store
}

func TestRun_DemoScenario(t *testing.T) {
	svc, store := newDemoService(t)

	var out bytes.Buffer
	err := Run(context.Background(), &out, svc, DefaultScript(service.EvictionPolicy{ReferenceYear: 2025, MaxAgeYears: 20}))
	require.NoError(t, err)
	svc.Close()

	transcript := out.String()
	assert.Contains(t, transcript, "Purchased 2 copies of Clean Code by Robert C. Martin")
	assert.Contains(t, transcript, "Download link sent to: ahmed@example.com")
	assert.Contains(t, transcript, "Quantum book store: Display Only is a showcase item and not available for sale")
	assert.Contains(t, transcript, "Quantum book store: Removed outdated book with ISBN ISBN002")
	assert.Contains(t, transcript, "Quantum book store: Removed outdated book with ISBN ISBN003")
	assert.NotContains(t, transcript, "Removed outdated book with ISBN ISBN001")

	final := transcript[strings.Index(transcript, "Final inventory state:"):]
	assert.Equal(t,
		"Final inventory state:\n"+
			"Quantum book store: ISBN: ISBN001, Title: Clean Code, Author: Robert C. Martin, Year: 2008, Price: $40.00, Stock: 3\n",
		final)

	views := svc.List(context.Background())
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Stock)
	assert.Equal(t, 3, *views[0].Stock)

	paperOrders, err := store.ListOrders(context.Background(), "ISBN001")
	require.NoError(t, err)
	assert.Len(t, paperOrders, 1)
	ebookOrders, err := store.ListOrders(context.Background(), "ISBN002")
	require.NoError(t, err)
	assert.Len(t, ebookOrders, 1)
}

func TestRun_ShowcaseListedWithNotice(t *testing.T) {
	svc, _ := newDemoService(t)
	defer svc.Close()

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), &out, svc, Script{Eviction: service.EvictionPolicy{ReferenceYear: 2025, MaxAgeYears: 100}}))

	assert.Contains(t, out.String(), "Quantum book store: [Display Only (AKA) Not for Sale]")
}

func TestRun_InvalidPolicy(t *testing.T) {
	svc, _ := newDemoService(t)
	defer svc.Close()

	err := Run(context.Background(), &bytes.Buffer{}, svc, Script{Eviction: service.EvictionPolicy{ReferenceYear: 2025, MaxAgeYears: -1}})
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestRun_WriteError(t *testing.T) {
	svc, _ := newDemoService(t)
	defer svc.Close()

	err := Run(context.Background(), failingWriter{}, svc, DefaultScript(service.EvictionPolicy{ReferenceYear: 2025, MaxAgeYears: 20}))
	assert.EqualError(t, err, "closed pipe")
}
