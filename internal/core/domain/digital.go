package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DigitalItem is delivered by email and has no stock.
type DigitalItem struct {
	Book
	format string
}

func NewDigitalItem(isbn, title, author string, year int, price decimal.Decimal, format string) (*DigitalItem, error) {
	b, err := newBook(isbn, title, author, year, price)
	if err != nil {
		return nil, err
	}

	return &DigitalItem{Book: b, format: format}, nil
}

func (d *DigitalItem) Kind() ItemKind { return KindDigital }

func (d *DigitalItem) Format() string { return d.format }

func (d *DigitalItem) IsForSale() bool { return true }

func (d *DigitalItem) IsShippable() bool { return false }

// Purchase never touches address; the download link goes to email.
func (d *DigitalItem) Purchase(quantity int, email, address string) (PurchaseResult, error) {
	if quantity <= 0 {
		return PurchaseResult{}, &PurchaseError{ISBN: d.isbn, Title: d.title, Kind: KindDigital, Requested: quantity, Err: ErrInvalidQuantity}
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return PurchaseResult{}, &PurchaseError{ISBN: d.isbn, Title: d.title, Kind: KindDigital, Requested: quantity, Err: ErrMissingRecipient}
	}

	res := newResult(d.Book, KindDigital, quantity)
	res.DeliveredTo = email
	res.Messages = []string{
		d.purchased(quantity) + " (EBook)",
		"Download link sent to: " + email,
	}
	return res, nil
}

func (d *DigitalItem) Display() string {
	return fmt.Sprintf("%s, Format: %s", d.summary(), d.format)
}
