package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PhysicalItem is a paper book with a finite stock.
type PhysicalItem struct {
	Book
	stock int
}

func NewPhysicalItem(isbn, title, author string, year int, price decimal.Decimal, stock int) (*PhysicalItem, error) {
	b, err := newBook(isbn, title, author, year, price)
	if err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: negative stock for %s", ErrInvalidItem, isbn)
	}

	return &PhysicalItem{Book: b, stock: stock}, nil
}

func (p *PhysicalItem) Kind() ItemKind { return KindPhysical }

func (p *PhysicalItem) Stock() int { return p.stock }

func (p *PhysicalItem) IsForSale() bool { return p.stock > 0 }

// IsShippable mirrors IsForSale: shipping needs copies on hand.
func (p *PhysicalItem) IsShippable() bool { return p.stock > 0 }

func (p *PhysicalItem) Purchase(quantity int, email, address string) (PurchaseResult, error) {
	if quantity <= 0 {
		return PurchaseResult{}, p.reject(quantity, ErrInvalidQuantity)
	}
	if p.stock == 0 {
		return PurchaseResult{}, p.reject(quantity, ErrNotForSale)
	}
	if quantity > p.stock {
		return PurchaseResult{}, p.reject(quantity, ErrInsufficientStock)
	}

	p.stock -= quantity

	res := newResult(p.Book, KindPhysical, quantity)
	res.RemainingStock = p.stock
	res.Shipped = true
	res.ShippingAddr = address
	res.DeliveredTo = email
	res.Messages = []string{p.purchased(quantity)}
	return res, nil
}

func (p *PhysicalItem) Display() string {
	return fmt.Sprintf("%s, Stock: %d", p.summary(), p.stock)
}

func (p *PhysicalItem) reject(quantity int, err error) *PurchaseError {
	return &PurchaseError{ISBN: p.isbn, Title: p.title, Kind: KindPhysical, Requested: quantity, Available: p.stock, Err: err}
}
