package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotForSale        = errors.New("not for sale")
	ErrItemNotFound      = errors.New("item not found")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrMissingRecipient  = errors.New("recipient email required")
	ErrDuplicateItem     = errors.New("duplicate isbn")
	ErrInvalidItem       = errors.New("invalid item")
)

// PurchaseError describes a rejected purchase. Err is one of the sentinels
// above, so callers can match with errors.Is.
type PurchaseError struct {
	ISBN      string
	Title     string
	Kind      ItemKind
	Requested int
	Available int
	Err       error
}

func (e *PurchaseError) Error() string {
	switch {
	case errors.Is(e.Err, ErrInsufficientStock):
		return fmt.Sprintf("Not enough stock for %s (requested %d, available %d)", e.Title, e.Requested, e.Available)
	case errors.Is(e.Err, ErrNotForSale):
		if e.Kind == KindDisplay {
			return fmt.Sprintf("%s is a showcase item and not available for sale", e.Title)
		}
		return fmt.Sprintf("%s is sold out and not available for sale", e.Title)
	case errors.Is(e.Err, ErrItemNotFound):
		return fmt.Sprintf("no book with ISBN %s", e.ISBN)
	case errors.Is(e.Err, ErrInvalidQuantity):
		return fmt.Sprintf("invalid quantity %d for %s", e.Requested, e.ISBN)
	case errors.Is(e.Err, ErrMissingRecipient):
		return fmt.Sprintf("no recipient email for %s", e.Title)
	default:
		return fmt.Sprintf("purchase of %s failed: %v", e.ISBN, e.Err)
	}
}

func (e *PurchaseError) Unwrap() error {
	return e.Err
}
