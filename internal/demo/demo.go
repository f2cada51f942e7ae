// Package demo drives the scripted bookstore walkthrough: list, buy,
// prune by age, list again.
package demo

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
	"github.com/rl1809/quantum-bookstore/internal/core/service"
)

const prefix = "Quantum book store: "

type PurchaseStep struct {
	Label    string
	ISBN     string
	Quantity int
	Email    string
	Address  string
}

type Script struct {
	Purchases []PurchaseStep
	Eviction  service.EvictionPolicy
}

// SeedCatalog returns the three sample books, one per variant.
func SeedCatalog() ([]domain.CatalogItem, error) {
	paper, err := domain.NewPhysicalItem("ISBN001", "Clean Code", "Robert C. Martin", 2008, decimal.NewFromInt(40), 5)
	if err != nil {
		return nil, err
	}
	ebook, err := domain.NewDigitalItem("ISBN002", "Pragmatic Programmer", "Andy Hunt", 1999, decimal.NewFromInt(25), "PDF")
	if err != nil {
		return nil, err
	}
	showcase, err := domain.NewDisplayItem("ISBN003", "Display Only", "Unknown", 1980, decimal.NewFromInt(999))
	if err != nil {
		return nil, err
	}
	return []domain.CatalogItem{paper, ebook, showcase}, nil
}

func DefaultScript(policy service.EvictionPolicy) Script {
	return Script{
		Purchases: []PurchaseStep{
			{Label: "Buying PaperBook (ISBN001)...", ISBN: "ISBN001", Quantity: 2, Email: "ahmed@example.com", Address: "123 Book Street"},
			{Label: "Buying EBook (ISBN002)...", ISBN: "ISBN002", Quantity: 1, Email: "ahmed@example.com", Address: "ignored"},
			{Label: "Attempting to buy ShowcaseBook (ISBN003)...", ISBN: "ISBN003", Quantity: 1, Email: "ahmed@example.com", Address: "ignored"},
		},
		Eviction: policy,
	}
}

// Run executes script against svc and writes the transcript to w. Rejected
// purchases are reported in the transcript, not returned.
func Run(ctx context.Context, w io.Writer, svc *service.BookstoreService, script Script) error {
	p := &printer{w: w}

	p.section("All books in inventory:")
	p.listing(svc.Listing(ctx))

	for _, step := range script.Purchases {
		p.section(step.Label)
		res, err := svc.Purchase(ctx, service.PurchaseRequest{
			ISBN:     step.ISBN,
			Quantity: step.Quantity,
			Email:    step.Email,
			Address:  step.Address,
		})
		if err != nil {
			p.line(prefix + err.Error())
			continue
		}
		for _, msg := range res.Messages {
			p.line(msg)
		}
	}

	p.section(fmt.Sprintf("Removing books older than %d years (from %d)...",
		script.Eviction.MaxAgeYears, script.Eviction.ReferenceYear))
	evicted, err := svc.Evict(ctx, script.Eviction)
	if err != nil {
		return fmt.Errorf("evict: %w", err)
	}
	for _, isbn := range evicted {
		p.line(prefix + "Removed outdated book with ISBN " + isbn)
	}

	p.section("Final inventory state:")
	p.listing(svc.Listing(ctx))

	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}

func (p *printer) section(title string) {
	p.line("")
	p.line(prefix + title)
}

func (p *printer) listing(lines []string) {
	for _, l := range lines {
		for _, part := range strings.Split(l, "\n") {
			p.line(prefix + part)
		}
	}
}
