package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type ItemKind string

const (
	KindPhysical ItemKind = "physical"
	KindDigital  ItemKind = "digital"
	KindDisplay  ItemKind = "display"
)

// CatalogItem is a single entry of the inventory. The three variants decide
// their own sale and shipping policy.
type CatalogItem interface {
	ISBN() string
	Title() string
	Author() string
	Year() int
	Price() decimal.Decimal
	Kind() ItemKind

	IsForSale() bool
	IsShippable() bool
	Purchase(quantity int, email, address string) (PurchaseResult, error)
	Display() string
}

// Book holds the metadata shared by every variant. It never changes after
// construction.
type Book struct {
	isbn   string
	title  string
	author string
	year   int
	price  decimal.Decimal
}

func newBook(isbn, title, author string, year int, price decimal.Decimal) (Book, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return Book{}, fmt.Errorf("%w: empty isbn", ErrInvalidItem)
	}
	if strings.TrimSpace(title) == "" {
		return Book{}, fmt.Errorf("%w: empty title for %s", ErrInvalidItem, isbn)
	}
	if price.IsNegative() {
		return Book{}, fmt.Errorf("%w: negative price for %s", ErrInvalidItem, isbn)
	}

	return Book{isbn: isbn, title: title, author: author, year: year, price: price}, nil
}

func (b Book) ISBN() string           { return b.isbn }
func (b Book) Title() string          { return b.title }
func (b Book) Author() string         { return b.author }
func (b Book) Year() int              { return b.year }
func (b Book) Price() decimal.Decimal { return b.price }

func (b Book) summary() string {
	return fmt.Sprintf("ISBN: %s, Title: %s, Author: %s, Year: %d, Price: $%s",
		b.isbn, b.title, b.author, b.year, b.price.StringFixed(2))
}

func (b Book) purchased(quantity int) string {
	return fmt.Sprintf("Purchased %d copies of %s by %s", quantity, b.title, b.author)
}
