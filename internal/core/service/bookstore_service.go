package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/port"
)

const tracerName = "github.com/rl1809/quantum-bookstore/internal/core/service"

var (
	ErrDuplicateRequest = errors.New("duplicate request")
	ErrServiceClosed    = errors.New("bookstore service closed")
	ErrInvalidPolicy    = errors.New("invalid eviction policy")
)

// MaxReferenceYear bounds EvictionPolicy.ReferenceYear so the age
// computation cannot overflow.
const MaxReferenceYear = 9999

type PurchaseRequest struct {
	RequestID string
	ISBN      string
	Quantity  int
	Email     string
	Address   string
}

type EvictionPolicy struct {
	ReferenceYear int
	MaxAgeYears   int
}

func (p EvictionPolicy) Validate() error {
	if p.ReferenceYear < 1 || p.ReferenceYear > MaxReferenceYear {
		return fmt.Errorf("%w: reference year must be between 1 and %d, got %d",
			ErrInvalidPolicy, MaxReferenceYear, p.ReferenceYear)
	}
	if p.MaxAgeYears < 0 {
		return fmt.Errorf("%w: max age must not be negative, got %d", ErrInvalidPolicy, p.MaxAgeYears)
	}
	return nil
}

// BookstoreService serialises access to one Inventory and hands confirmed
// purchases to the order recorders.
type BookstoreService struct {
	mu        sync.Mutex
	inventory *domain.Inventory

	idempotency port.IdempotencyStore
	orderQueue  chan domain.Order
	closed      bool
	recorders   sync.WaitGroup

	logger *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
}

type Option func(*BookstoreService)

func WithLogger(l *zap.Logger) Option {
	return func(s *BookstoreService) { s.logger = l }
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *BookstoreService) { s.tracer = tp.Tracer(tracerName) }
}

func WithQueueSize(n int) Option {
	return func(s *BookstoreService) { s.orderQueue = make(chan domain.Order, n) }
}

func WithClock(now func() time.Time) Option {
	return func(s *BookstoreService) { s.now = now }
}

func NewBookstoreService(inventory *domain.Inventory, idempotency port.IdempotencyStore, opts ...Option) *BookstoreService {
	s := &BookstoreService{
		inventory:   inventory,
		idempotency: idempotency,
		orderQueue:  make(chan domain.Order, 1000),
		logger:      zap.NewNop(),
		tracer:      otel.Tracer(tracerName),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BookstoreService) AddItem(ctx context.Context, item domain.CatalogItem) error {
	s.mu.Lock()
	err := s.inventory.Add(item)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.logger.Debug("item added", zap.String("isbn", item.ISBN()), zap.String("kind", string(item.Kind())))
	return nil
}

func (s *BookstoreService) Purchase(ctx context.Context, req PurchaseRequest) (domain.PurchaseResult, error) {
	ctx, span := s.tracer.Start(ctx, "bookstore.purchase", trace.WithAttributes(
		attribute.String("book.isbn", req.ISBN),
		attribute.Int("purchase.quantity", req.Quantity),
	))
	defer span.End()

	log := s.logger.With(
		zap.String("request_id", req.RequestID),
		zap.String("isbn", req.ISBN),
		zap.Int("quantity", req.Quantity),
	)

	var idempotencyKey string
	if req.RequestID != "" && s.idempotency != nil {
		idempotencyKey = fmt.Sprintf("purchase:%s", req.RequestID)

		ok, err := s.idempotency.SetIdempotency(ctx, idempotencyKey)
		if err != nil {
			err = fmt.Errorf("idempotency check failed: %w", err)
			recordError(span, err)
			return domain.PurchaseResult{}, err
		}
		if !ok {
			recordError(span, ErrDuplicateRequest)
			log.Info("duplicate purchase request")
			return domain.PurchaseResult{}, ErrDuplicateRequest
		}
	}

	res, err := s.purchase(ctx, req)
	if err != nil {
		recordError(span, err)
		log.Info("purchase rejected", zap.Error(err))
		if idempotencyKey != "" {
			if relErr := s.idempotency.ReleaseIdempotency(ctx, idempotencyKey); relErr != nil {
				log.Warn("failed to release idempotency key", zap.Error(relErr))
			}
		}
		return domain.PurchaseResult{}, err
	}

	span.SetAttributes(attribute.String("book.kind", string(res.Kind)))
	log.Info("purchase confirmed",
		zap.String("kind", string(res.Kind)),
		zap.String("total", res.Total.StringFixed(2)),
		zap.Int("remaining_stock", res.RemainingStock),
	)
	return res, nil
}

func (s *BookstoreService) purchase(ctx context.Context, req PurchaseRequest) (domain.PurchaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.PurchaseResult{}, ErrServiceClosed
	}

	res, err := s.inventory.Purchase(req.ISBN, req.Quantity, req.Email, req.Address)
	if err != nil {
		return domain.PurchaseResult{}, err
	}

	order := domain.NewOrder(req.RequestID, res, s.now())
	select {
	case s.orderQueue <- order:
	default:
		// best effort: the inventory, not the ledger, is the source of truth
		s.logger.Error("order queue full, order not recorded",
			zap.String("order_id", order.ID), zap.String("isbn", order.ISBN))
	}
	return res, nil
}

// Evict removes every book older than the policy allows and returns the
// evicted ISBNs in inventory order.
func (s *BookstoreService) Evict(ctx context.Context, policy EvictionPolicy) ([]string, error) {
	_, span := s.tracer.Start(ctx, "bookstore.evict", trace.WithAttributes(
		attribute.Int("eviction.reference_year", policy.ReferenceYear),
		attribute.Int("eviction.max_age_years", policy.MaxAgeYears),
	))
	defer span.End()

	if err := policy.Validate(); err != nil {
		recordError(span, err)
		return nil, err
	}

	s.mu.Lock()
	evicted := s.inventory.EvictOlderThan(policy.ReferenceYear, policy.MaxAgeYears)
	s.mu.Unlock()

	removed := make([]string, 0, len(evicted))
	for _, item := range evicted {
		removed = append(removed, item.ISBN())
		s.logger.Info("evicted outdated book",
			zap.String("isbn", item.ISBN()),
			zap.Int("year", item.Year()),
			zap.Int("age", policy.ReferenceYear-item.Year()),
		)
	}
	span.SetAttributes(attribute.Int("eviction.count", len(removed)))
	return removed, nil
}

func (s *BookstoreService) Get(ctx context.Context, isbn string) (domain.ItemView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.inventory.FindByISBN(isbn)
	if !ok {
		return domain.ItemView{}, &domain.PurchaseError{ISBN: isbn, Err: domain.ErrItemNotFound}
	}
	return domain.ViewOf(item), nil
}

func (s *BookstoreService) List(ctx context.Context) []domain.ItemView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory.Views()
}

// Listing returns the Display line of every book, in inventory order.
func (s *BookstoreService) Listing(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory.ListAll()
}

func (s *BookstoreService) GetOrderQueue() <-chan domain.Order {
	return s.orderQueue
}

// Close stops accepting purchases, closes the order queue and waits for the
// recorders started with StartRecorders to drain it.
func (s *BookstoreService) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.orderQueue)
	}
	s.mu.Unlock()

	s.recorders.Wait()
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
