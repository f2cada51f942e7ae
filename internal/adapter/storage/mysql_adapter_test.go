package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/bookstore?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := NewMySQLAdapter(db).Migrate(context.Background()); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	return db
}

func TestSaveOrder_RoundTrip(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	isbn := "test-" + uuid.NewString()[:8]

	// Cleanup old test orders
	defer db.ExecContext(ctx, `DELETE FROM orders WHERE isbn = ?`, isbn)

	order := domain.Order{
		ID:        uuid.NewString(),
		RequestID: "req-1",
		ISBN:      isbn,
		Title:     "Clean Code",
		Kind:      domain.KindPhysical,
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("40.00"),
		Total:     decimal.RequireFromString("80.00"),
		Email:     "ahmed@example.com",
		Address:   "123 Book Street",
		Status:    domain.OrderStatusConfirmed,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	if err := adapter.SaveOrder(ctx, order); err != nil {
		t.Fatalf("SaveOrder failed: %v", err)
	}

	orders, err := adapter.ListOrders(ctx, isbn)
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}

	got := orders[0]
	if got.ID != order.ID || got.Quantity != 2 || got.Kind != domain.KindPhysical {
		t.Errorf("unexpected order: %+v", got)
	}
	if !got.Total.Equal(order.Total) {
		t.Errorf("expected total %s, got %s", order.Total, got.Total)
	}
}

func TestSaveOrder_DuplicateID(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	isbn := "dup-" + uuid.NewString()[:8]
	defer db.ExecContext(ctx, `DELETE FROM orders WHERE isbn = ?`, isbn)

	order := domain.Order{
		ID:        uuid.NewString(),
		ISBN:      isbn,
		Title:     "t",
		Kind:      domain.KindDigital,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(1),
		Total:     decimal.NewFromInt(1),
		Status:    domain.OrderStatusConfirmed,
		CreatedAt: time.Now(),
	}

	if err := adapter.SaveOrder(ctx, order); err != nil {
		t.Fatalf("SaveOrder failed: %v", err)
	}
	if err := adapter.SaveOrder(ctx, order); err == nil {
		t.Error("expected duplicate primary key error")
	}
}

func TestListOrders_Empty(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	orders, err := NewMySQLAdapter(db).ListOrders(context.Background(), "nonexistent-isbn")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected no orders, got %d", len(orders))
	}
}
