package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rl1809/quantum-bookstore/internal/adapter/storage"
	"github.com/rl1809/quantum-bookstore/internal/config"
	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
	"github.com/rl1809/quantum-bookstore/internal/demo"
	"github.com/rl1809/quantum-bookstore/internal/logger"
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

	if err := run(context.Background(), cfg, log); err != nil {
		log.Fatal("demo failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	items, err := demo.SeedCatalog()
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	inventory, err := domain.NewInventory(items...)
	if err != nil {
		return fmt.Errorf("build inventory: %w", err)
	}

	store := storage.NewMemoryStore()
	bookstore := service.NewBookstoreService(inventory, store,
		service.WithLogger(log),
		service.WithQueueSize(cfg.Orders.QueueSize),
	)
	bookstore.StartRecorders(1, store)
	defer bookstore.Close()

	policy := service.EvictionPolicy{
		ReferenceYear: cfg.Eviction.ReferenceYear,
		MaxAgeYears:   cfg.Eviction.MaxAgeYears,
	}
	return demo.Run(ctx, os.Stdout, bookstore, demo.DefaultScript(policy))
}
