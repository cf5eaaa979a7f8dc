package domain

import (
	"context"
	"strings"
	"time"
)

// Sort orders accepted by the search API. "relevance" carries no scoring and
// falls back to last-update recency.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
)

const MaxQueryLength = 128

// SearchFilter is the immutable, validated filter value object. Construct it
// with NewSearchFilter only; equal filter values (including defaults filled
// in for omitted fields) must compare equal, since they fully determine the
// cache key.
type SearchFilter struct {
	Query      string   `json:"q"`
	MinPrice   *int64   `json:"min_price"`
	MaxPrice   *int64   `json:"max_price"`
	Colors     []string `json:"colors"`
	Categories []string `json:"categories"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	Sort       string   `json:"sort"`
}

// SearchFilterInput is the raw, unvalidated boundary input. Zero Page/Limit
// and empty Sort mean "not supplied" and take the configured defaults.
type SearchFilterInput struct {
	Query      string
	MinPrice   *int64
	MaxPrice   *int64
	Colors     []string
	Categories []string
	Page       int
	Limit      int
	Sort       string
}

// NewSearchFilter validates and normalizes the input into a SearchFilter.
// Color and category terms are lowercased here so the echoed filter, the
// cache key and the SQL predicates all agree on one canonical form.
func NewSearchFilter(in SearchFilterInput, defaultLimit, maxLimit int) (SearchFilter, error) {
	if len(in.Query) > MaxQueryLength {
		return SearchFilter{}, NewValidationError("q", "must be at most 128 characters")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return SearchFilter{}, NewValidationError("min_price", "must be non-negative")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return SearchFilter{}, NewValidationError("max_price", "must be non-negative")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MaxPrice < *in.MinPrice {
		return SearchFilter{}, NewValidationError("max_price", "must be >= min_price")
	}

	page := in.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return SearchFilter{}, NewValidationError("page", "must be >= 1")
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 || limit > maxLimit {
		return SearchFilter{}, NewValidationError("limit", "must be between 1 and the configured maximum")
	}

	sort := in.Sort
	if sort == "" {
		sort = SortRelevance
	}
	switch sort {
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortNewest:
	default:
		return SearchFilter{}, NewValidationError("sort", "must be one of relevance, price_asc, price_desc, newest")
	}

	return SearchFilter{
		Query:      strings.TrimSpace(in.Query),
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		Colors:     normalizeTerms(in.Colors),
		Categories: normalizeTerms(in.Categories),
		Page:       page,
		Limit:      limit,
		Sort:       sort,
	}, nil
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// FacetCounts aggregates the filtered (pre-pagination) set by category and
// color. Both maps reflect every active filter, including the facet's own
// dimension: a value excluded by its own filter shows zero, not its
// pre-filter count.
type FacetCounts struct {
	Categories map[string]int64 `json:"categories"`
	Colors     map[string]int64 `json:"colors"`
}

type Pagination struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasNext bool  `json:"has_next"`
}

// SearchResult is the assembled, cacheable response body. Cached is set by
// the service layer only and is never persisted as true.
type SearchResult struct {
	Filters    SearchFilter `json:"filters"`
	Results    []ProductHit `json:"results"`
	Facets     FacetCounts  `json:"facets"`
	Pagination Pagination   `json:"pagination"`
	Cached     bool         `json:"cached"`
}

// SearchExplain reports query diagnostics for the explain endpoint.
type SearchExplain struct {
	Filters     SearchFilter  `json:"filters"`
	Elapsed     time.Duration `json:"-"`
	ElapsedMS   float64       `json:"response_time_ms"`
	CacheHit    bool          `json:"cache_hit"`
	Total       int64         `json:"total"`
	Returned    int           `json:"returned"`
	Categories  int           `json:"category_count"`
	ColorGroups int           `json:"color_count"`
}

type SearchUsecase interface {
	Search(ctx context.Context, filter SearchFilter) (*SearchResult, error)
	Explain(ctx context.Context, filter SearchFilter) (*SearchExplain, error)
	InvalidateFilters(ctx context.Context, prefix string) error
}
