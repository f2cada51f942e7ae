package port

import (
	"context"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

type OrderRepository interface {
	// SaveOrder persists a confirmed purchase
	SaveOrder(ctx context.Context, order domain.Order) error

	// ListOrders returns the orders recorded for isbn, oldest first
	ListOrders(ctx context.Context, isbn string) ([]domain.Order, error)
}
