package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/rl1809/quantum-bookstore/internal/adapter/handler"
	"github.com/rl1809/quantum-bookstore/internal/adapter/storage"
	"github.com/rl1809/quantum-bookstore/internal/config"
	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
	"github.com/rl1809/quantum-bookstore/internal/demo"
	"github.com/rl1809/quantum-bookstore/internal/logger"
	"github.com/rl1809/quantum-bookstore/internal/port"
	"github.com/rl1809/quantum-bookstore/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing)
	if err != nil {
		log.Fatal("failed to set up tracing", zap.Error(err))
	}

	orders, closeOrders, err := openOrderRepository(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open order store", zap.Error(err))
	}
	idempotency, closeIdempotency, err := openIdempotencyStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open idempotency store", zap.Error(err))
	}

	// Seed inventory
	items, err := demo.SeedCatalog()
	if err != nil {
		log.Fatal("failed to seed catalog", zap.Error(err))
	}
	inventory, err := domain.NewInventory(items...)
	if err != nil {
		log.Fatal("failed to build inventory", zap.Error(err))
	}
	log.Info("inventory seeded", zap.Int("books", inventory.Len()))

	// Initialize service
	bookstore := service.NewBookstoreService(inventory, idempotency,
		service.WithLogger(log),
		service.WithTracerProvider(tp),
		service.WithQueueSize(cfg.Orders.QueueSize),
	)
	bookstore.StartRecorders(cfg.Orders.Workers, orders)

	evictionPolicy := service.EvictionPolicy{
		ReferenceYear: cfg.Eviction.ReferenceYear,
		MaxAgeYears:   cfg.Eviction.MaxAgeYears,
	}

	// Initialize gRPC server
	grpcServer := grpc.NewServer()
	handler.RegisterBookstoreServer(grpcServer, handler.NewGRPCHandler(bookstore, evictionPolicy))
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		log.Fatal("failed to listen", zap.String("addr", cfg.Server.GRPCAddr), zap.Error(err))
	}

	go func() {
		log.Info("gRPC server listening", zap.String("addr", cfg.Server.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			log.Error("gRPC server error", zap.Error(err))
		}
	}()

	// Initialize HTTP server
	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: handler.NewHTTPHandler(bookstore, evictionPolicy, log).Routes(),
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	healthServer.Shutdown()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	log.Info("gRPC server stopped")

	// Close order queue and wait for recorders
	bookstore.Close()
	log.Info("order recorders stopped")

	closeIdempotency()
	closeOrders()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("tracing shutdown", zap.Error(err))
	}
	log.Info("connections closed")
}

func openOrderRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) (port.OrderRepository, func(), error) {
	if cfg.Orders.Store != "mysql" {
		return storage.NewMemoryStore(), func() {}, nil
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping mysql: %w", err)
	}
	log.Info("connected to mysql")

	adapter := storage.NewMySQLAdapter(db)
	if err := adapter.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return adapter, func() { db.Close() }, nil
}

func openIdempotencyStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (port.IdempotencyStore, func(), error) {
	if cfg.Idempotency.Store != "redis" {
		return storage.NewMemoryStore(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Info("connected to redis")

	return storage.NewRedisAdapter(rdb, cfg.Idempotency.TTL), func() { rdb.Close() }, nil
}
