package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/port"
)

const recordTimeout = 5 * time.Second

// StartRecorders launches n workers that drain the order queue into repo.
// Close waits for them.
func (s *BookstoreService) StartRecorders(n int, repo port.OrderRepository) {
	for i := 0; i < n; i++ {
		s.recorders.Add(1)
		go func(id int) {
			defer s.recorders.Done()
			recorderLoop(id, s.orderQueue, repo, s.logger)
		}(i)
	}
	s.logger.Info("started order recorders", zap.Int("count", n))
}

func recorderLoop(id int, queue <-chan domain.Order, repo port.OrderRepository, logger *zap.Logger) {
	for order := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)

		if err := repo.SaveOrder(ctx, order); err != nil {
			logger.Error("failed to save order",
				zap.Int("worker", id),
				zap.String("order_id", order.ID),
				zap.String("isbn", order.ISBN),
				zap.Error(err),
			)
		} else {
			logger.Debug("saved order",
				zap.Int("worker", id),
				zap.String("order_id", order.ID),
			)
		}

		cancel()
	}
}
