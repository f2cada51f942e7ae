package domain

import "github.com/shopspring/decimal"

const displayOnlyNotice = "[Display Only (AKA) Not for Sale]"

// DisplayItem is a showcase copy. It can be listed but never sold.
type DisplayItem struct {
	Book
}

func NewDisplayItem(isbn, title, author string, year int, price decimal.Decimal) (*DisplayItem, error) {
	b, err := newBook(isbn, title, author, year, price)
	if err != nil {
		return nil, err
	}

	return &DisplayItem{Book: b}, nil
}

func (d *DisplayItem) Kind() ItemKind { return KindDisplay }

func (d *DisplayItem) IsForSale() bool { return false }

func (d *DisplayItem) IsShippable() bool { return false }

func (d *DisplayItem) Purchase(quantity int, email, address string) (PurchaseResult, error) {
	return PurchaseResult{}, &PurchaseError{ISBN: d.isbn, Title: d.title, Kind: KindDisplay, Requested: quantity, Err: ErrNotForSale}
}

func (d *DisplayItem) Display() string {
	return d.summary() + "\n" + displayOnlyNotice
}
