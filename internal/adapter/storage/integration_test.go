package storage_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rl1809/quantum-bookstore/internal/adapter/storage"
	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
)

type testEnv struct {
	redis   *redis.Client
	mysql   *sql.DB
	cache   *storage.RedisAdapter
	db      *storage.MySQLAdapter
	cleanup func()
}

func setupTestEnv(t *testing.T) *testEnv {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "root:root@tcp(localhost:3306)/bookstore?parseTime=true"
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	adapter := storage.NewMySQLAdapter(db)
	if err := adapter.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	return &testEnv{
		redis: rdb,
		mysql: db,
		cache: storage.NewRedisAdapter(rdb, time.Minute),
		db:    adapter,
		cleanup: func() {
			rdb.Close()
			db.Close()
		},
	}
}

func newInventory(t *testing.T, isbn string, stock int) *domain.Inventory {
	t.Helper()
	paper, err := domain.NewPhysicalItem(isbn, "Clean Code", "Robert C. Martin", 2008, decimal.NewFromInt(40), stock)
	if err != nil {
		t.Fatalf("new item: %v", err)
	}
	inv, err := domain.NewInventory(paper)
	if err != nil {
		t.Fatalf("new inventory: %v", err)
	}
	return inv
}

func TestIntegration_PurchasesRecordedInMySQL(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()
	isbn := "it-" + uuid.NewString()[:8]
	initialStock := 10
	defer env.mysql.ExecContext(ctx, `DELETE FROM orders WHERE isbn = ?`, isbn)

	svc := service.NewBookstoreService(newInventory(t, isbn, initialStock), env.cache, service.WithQueueSize(100))
	svc.StartRecorders(3, env.db)

	// Execute purchases
	var successCount atomic.Int32
	var purchaseWg sync.WaitGroup
	totalRequests := 20

	for i := 0; i < totalRequests; i++ {
		purchaseWg.Add(1)
		go func() {
			defer purchaseWg.Done()
			_, err := svc.Purchase(ctx, service.PurchaseRequest{
				RequestID: uuid.NewString(), ISBN: isbn, Quantity: 1, Email: "it@example.com", Address: "addr",
			})
			if err == nil {
				successCount.Add(1)
			}
		}()
	}

	purchaseWg.Wait()

	// Close service and wait for recorders
	svc.Close()

	if successCount.Load() != int32(initialStock) {
		t.Errorf("expected %d successful purchases, got %d", initialStock, successCount.Load())
	}

	orders, err := env.db.ListOrders(ctx, isbn)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != initialStock {
		t.Errorf("expected %d orders in MySQL, got %d", initialStock, len(orders))
	}
}

func TestIntegration_IdempotencyPreventsDoubleOrder(t *testing.T) {
	env := setupTestEnv(t)
	defer env.cleanup()

	ctx := context.Background()
	isbn := "idem-" + uuid.NewString()[:8]
	defer env.mysql.ExecContext(ctx, `DELETE FROM orders WHERE isbn = ?`, isbn)

	svc := service.NewBookstoreService(newInventory(t, isbn, 5), env.cache)
	svc.StartRecorders(1, env.db)

	req := service.PurchaseRequest{RequestID: uuid.NewString(), ISBN: isbn, Quantity: 1}

	if _, err := svc.Purchase(ctx, req); err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}
	if _, err := svc.Purchase(ctx, req); !errors.Is(err, service.ErrDuplicateRequest) {
		t.Errorf("expected ErrDuplicateRequest, got: %v", err)
	}

	svc.Close()

	orders, err := env.db.ListOrders(ctx, isbn)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("expected exactly 1 order, got %d", len(orders))
	}
}
