package handler

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rl1809/quantum-bookstore/internal/adapter/storage"
	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
)

var testEviction = service.EvictionPolicy{ReferenceYear: 2025, MaxAgeYears: 20}

func newTestBookstore(t *testing.T) *service.BookstoreService {
	t.Helper()

	paper, err := domain.NewPhysicalItem("ISBN001", "Clean Code", "Robert C. Martin", 2008, decimal.NewFromInt(40), 5)
	if err != nil {
		t.Fatal(err)
	}
	ebook, err := domain.NewDigitalItem("ISBN002", "Pragmatic Programmer", "Andy Hunt", 1999, decimal.NewFromInt(25), "PDF")
	if err != nil {
		t.Fatal(err)
	}
	showcase, err := domain.NewDisplayItem("ISBN003", "Display Only", "Unknown", 1980, decimal.NewFromInt(999))
	if err != nil {
		t.Fatal(err)
	}
	inv, err := domain.NewInventory(paper, ebook, showcase)
	if err != nil {
		t.Fatal(err)
	}

	svc := service.NewBookstoreService(inv, storage.NewMemoryStore())
	t.Cleanup(svc.Close)
	return svc
}
