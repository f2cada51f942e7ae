package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// Order records one successful purchase for the ledger.
type Order struct {
	ID        string
	RequestID string
	ISBN      string
	Title     string
	Kind      ItemKind
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Email     string
	Address   string
	Status    OrderStatus
	CreatedAt time.Time
}

func NewOrder(requestID string, res PurchaseResult, now time.Time) Order {
	return Order{
		ID:        uuid.NewString(),
		RequestID: requestID,
		ISBN:      res.ISBN,
		Title:     res.Title,
		Kind:      res.Kind,
		Quantity:  res.Quantity,
		UnitPrice: res.UnitPrice,
		Total:     res.Total,
		Email:     res.DeliveredTo,
		Address:   res.ShippingAddr,
		Status:    OrderStatusConfirmed,
		CreatedAt: now,
	}
}
