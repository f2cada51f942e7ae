package domain

import "fmt"

// Inventory is an insertion-ordered collection of catalog items keyed by
// ISBN. It is not safe for concurrent use; BookstoreService serialises
// access when it is shared.
type Inventory struct {
	items []CatalogItem
}

func NewInventory(items ...CatalogItem) (*Inventory, error) {
	inv := &Inventory{items: make([]CatalogItem, 0, len(items))}
	for _, item := range items {
		if err := inv.Add(item); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

func (inv *Inventory) Add(item CatalogItem) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", ErrInvalidItem)
	}
	if _, ok := inv.FindByISBN(item.ISBN()); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, item.ISBN())
	}

	inv.items = append(inv.items, item)
	return nil
}

// FindByISBN returns the first item with the given ISBN. The returned item
// is still owned by the inventory.
func (inv *Inventory) FindByISBN(isbn string) (CatalogItem, bool) {
	for _, item := range inv.items {
		if item.ISBN() == isbn {
			return item, true
		}
	}
	return nil, false
}

func (inv *Inventory) Purchase(isbn string, quantity int, email, address string) (PurchaseResult, error) {
	item, ok := inv.FindByISBN(isbn)
	if !ok {
		return PurchaseResult{}, &PurchaseError{ISBN: isbn, Requested: quantity, Err: ErrItemNotFound}
	}
	return item.Purchase(quantity, email, address)
}

// EvictOlderThan drops every item whose age at currentYear exceeds
// maxAgeYears and returns the dropped items in their former order.
// Survivors keep their relative order.
func (inv *Inventory) EvictOlderThan(currentYear, maxAgeYears int) []CatalogItem {
	var evicted []CatalogItem
	survivors := inv.items[:0]
	for _, item := range inv.items {
		if currentYear-item.Year() > maxAgeYears {
			evicted = append(evicted, item)
			continue
		}
		survivors = append(survivors, item)
	}

	// clear the tail so evicted items are not kept alive by the backing array
	for i := len(survivors); i < len(inv.items); i++ {
		inv.items[i] = nil
	}
	inv.items = survivors
	return evicted
}

// ListAll renders one Display string per item, in inventory order.
func (inv *Inventory) ListAll() []string {
	lines := make([]string, 0, len(inv.items))
	for _, item := range inv.items {
		lines = append(lines, item.Display())
	}
	return lines
}

func (inv *Inventory) Views() []ItemView {
	views := make([]ItemView, 0, len(inv.items))
	for _, item := range inv.items {
		views = append(views, ViewOf(item))
	}
	return views
}

func (inv *Inventory) Len() int {
	return len(inv.items)
}
