package domain

import (
	"context"
	"strings"
	"time"
)

// Product is the persisted catalog entity. SearchableText is the lowercased
// concatenation of name, description, category and color, maintained on every
// write; read paths never recompute it.
type Product struct {
	ID             int64     `json:"id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	Description    *string   `json:"description"`
	Category       string    `json:"category"`
	Color          string    `json:"color"`
	PriceCents     int64     `json:"price_cents"`
	Currency       string    `json:"currency"`
	StockQty       int       `json:"stock_qty"`
	SearchableText string    `json:"-"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}

// RebuildSearchableText recomputes the searchable blob from the textual
// fields. Must be called on every create/update before hitting the store.
func (p *Product) RebuildSearchableText() {
	parts := []string{p.Name}
	if p.Description != nil && *p.Description != "" {
		parts = append(parts, *p.Description)
	}
	parts = append(parts, p.Category, p.Color)
	p.SearchableText = strings.ToLower(strings.Join(parts, " "))
}

// ProductHit is the public projection of a Product. Timestamps and the
// searchable blob stay internal.
type ProductHit struct {
	ID          int64   `json:"id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    string  `json:"category"`
	Color       string  `json:"color"`
	PriceCents  int64   `json:"price_cents"`
	Currency    string  `json:"currency"`
	StockQty    int     `json:"stock_qty"`
}

// HitFromProduct projects a Product onto its public shape.
func HitFromProduct(p Product) ProductHit {
	return ProductHit{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Color:       p.Color,
		PriceCents:  p.PriceCents,
		Currency:    p.Currency,
		StockQty:    p.StockQty,
	}
}

// --- Interfaces ---

type ProductRepository interface {
	// Search returns the filtered, sorted, paginated product page and the
	// total count over the unpaginated predicate set.
	Search(ctx context.Context, filter SearchFilter) ([]Product, int64, error)
	// Facets groups the filtered (pre-pagination) set by category and color.
	Facets(ctx context.Context, filter SearchFilter) (FacetCounts, error)

	// Admin catalog management
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, product *Product) error
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id int64) error
}
