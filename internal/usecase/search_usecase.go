package usecase

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"catalog-search-backend/internal/domain"
	"catalog-search-backend/pkg/cache"
	"catalog-search-backend/pkg/logger"
)

// cacheNamespace prefixes every search cache key so bulk invalidation can
// clear search results without touching other tenants of the store.
const cacheNamespace = "search:"

type searchUsecase struct {
	repo     domain.ProductRepository
	cache    cache.Store
	cacheTTL time.Duration
}

func NewSearchUsecase(repo domain.ProductRepository, store cache.Store, cacheTTL time.Duration) domain.SearchUsecase {
	return &searchUsecase{
		repo:     repo,
		cache:    store,
		cacheTTL: cacheTTL,
	}
}

// cacheKey fingerprints the filter: the field set is serialized through a
// map so keys are emitted in sorted order, then hashed. Equal filter values,
// including equal defaults for omitted fields, always produce the same key.
func cacheKey(filter domain.SearchFilter) string {
	canonical := map[string]interface{}{
		"q":          filter.Query,
		"min_price":  filter.MinPrice,
		"max_price":  filter.MaxPrice,
		"colors":     filter.Colors,
		"categories": filter.Categories,
		"page":       filter.Page,
		"limit":      filter.Limit,
		"sort":       filter.Sort,
	}
	payload, _ := json.Marshal(canonical)
	digest := sha1.Sum(payload)
	return cacheNamespace + hex.EncodeToString(digest[:])
}

func (u *searchUsecase) Search(ctx context.Context, filter domain.SearchFilter) (*domain.SearchResult, error) {
	key := cacheKey(filter)

	if payload, found := u.cache.Get(ctx, key); found {
		var result domain.SearchResult
		if err := json.Unmarshal(payload, &result); err != nil {
			// A corrupted entry is indistinguishable from a miss; fall
			// through to the repository.
			logger.WithContext(ctx).Warn().Err(err).Str("key", key).Msg("discarding unreadable cache entry")
		} else {
			result.Cached = true
			return &result, nil
		}
	}

	products, total, err := u.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("product search: %w", err)
	}
	facets, err := u.repo.Facets(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("facet aggregation: %w", err)
	}

	hits := make([]domain.ProductHit, len(products))
	for i, p := range products {
		hits[i] = domain.HitFromProduct(p)
	}

	result := &domain.SearchResult{
		Filters: filter,
		Results: hits,
		Facets:  facets,
		Pagination: domain.Pagination{
			Total:   total,
			Page:    filter.Page,
			Limit:   filter.Limit,
			HasNext: int64(filter.Page)*int64(filter.Limit) < total,
		},
		Cached: false,
	}

	if payload, err := json.Marshal(result); err == nil {
		u.cache.Set(ctx, key, payload, u.cacheTTL)
	}

	return result, nil
}

// Explain runs the search with wall-clock timing and cache-hit
// introspection for the diagnostics endpoint.
func (u *searchUsecase) Explain(ctx context.Context, filter domain.SearchFilter) (*domain.SearchExplain, error) {
	_, cacheHit := u.cache.Get(ctx, cacheKey(filter))

	start := time.Now()
	result, err := u.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	return &domain.SearchExplain{
		Filters:     filter,
		Elapsed:     elapsed,
		ElapsedMS:   float64(elapsed.Microseconds()) / 1000,
		CacheHit:    cacheHit,
		Total:       result.Pagination.Total,
		Returned:    len(result.Results),
		Categories:  len(result.Facets.Categories),
		ColorGroups: len(result.Facets.Colors),
	}, nil
}

// InvalidateFilters clears cached results under the search namespace. An
// empty prefix clears every cached search.
func (u *searchUsecase) InvalidateFilters(ctx context.Context, prefix string) error {
	u.cache.Invalidate(ctx, cacheNamespace+prefix)
	return nil
}
