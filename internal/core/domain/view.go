package domain

import "github.com/shopspring/decimal"

// ItemView is a flat, read-only copy of a catalog item.
type ItemView struct {
	ISBN      string          `json:"isbn"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Year      int             `json:"year"`
	Price     decimal.Decimal `json:"price"`
	Kind      ItemKind        `json:"kind"`
	ForSale   bool            `json:"for_sale"`
	Shippable bool            `json:"shippable"`
	Stock     *int            `json:"stock,omitempty"`
	Format    string          `json:"format,omitempty"`
	Display   string          `json:"display"`
}

func ViewOf(item CatalogItem) ItemView {
	v := ItemView{
		ISBN:      item.ISBN(),
		Title:     item.Title(),
		Author:    item.Author(),
		Year:      item.Year(),
		Price:     item.Price(),
		Kind:      item.Kind(),
		ForSale:   item.IsForSale(),
		Shippable: item.IsShippable(),
		Display:   item.Display(),
	}

	switch it := item.(type) {
	case *PhysicalItem:
		stock := it.Stock()
		v.Stock = &stock
	case *DigitalItem:
		v.Format = it.Format()
	}
	return v
}
