package domain

import "github.com/shopspring/decimal"

// PurchaseResult is the outcome of a successful purchase.
type PurchaseResult struct {
	ISBN      string
	Title     string
	Kind      ItemKind
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal

	// RemainingStock is only meaningful for physical items.
	RemainingStock int
	Shipped        bool
	ShippingAddr   string
	DeliveredTo    string

	Messages []string
}

func newResult(b Book, kind ItemKind, quantity int) PurchaseResult {
	return PurchaseResult{
		ISBN:      b.isbn,
		Title:     b.title,
		Kind:      kind,
		Quantity:  quantity,
		UnitPrice: b.price,
		Total:     b.price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}
