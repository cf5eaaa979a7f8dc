package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-search-backend/internal/domain"
)

// fakeStore is an in-memory cache.Store with call counters.
type fakeStore struct {
	entries map[string][]byte
	gets    int
	sets    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: map[string][]byte{}}
}

func (s *fakeStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.gets++
	payload, found := s.entries[key]
	return payload, found
}

func (s *fakeStore) Set(_ context.Context, key string, payload []byte, _ time.Duration) {
	s.sets++
	s.entries[key] = payload
}

func (s *fakeStore) Invalidate(_ context.Context, prefix string) {
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
}

// stubRepo serves canned results and counts repository round trips.
type stubRepo struct {
	products    []domain.Product
	total       int64
	facets      domain.FacetCounts
	searchErr   error
	facetsErr   error
	searchCalls int
	lastFilter  domain.SearchFilter
}

func (r *stubRepo) Search(_ context.Context, filter domain.SearchFilter) ([]domain.Product, int64, error) {
	r.searchCalls++
	r.lastFilter = filter
	return r.products, r.total, r.searchErr
}

func (r *stubRepo) Facets(_ context.Context, _ domain.SearchFilter) (domain.FacetCounts, error) {
	return r.facets, r.facetsErr
}

func (r *stubRepo) GetProductByID(context.Context, int64) (*domain.Product, error) { return nil, nil }
func (r *stubRepo) CreateProduct(context.Context, *domain.Product) error           { return nil }
func (r *stubRepo) UpdateProduct(context.Context, *domain.Product) error           { return nil }
func (r *stubRepo) DeleteProduct(context.Context, int64) error                     { return nil }

func mustFilter(t *testing.T, in domain.SearchFilterInput) domain.SearchFilter {
	t.Helper()
	filter, err := domain.NewSearchFilter(in, 12, 50)
	require.NoError(t, err)
	return filter
}

func sampleRepo() *stubRepo {
	return &stubRepo{
		products: []domain.Product{
			{ID: 1, SKU: "LAP-1", Name: "Apex Pro laptop", Category: "laptop", Color: "silver", PriceCents: 129900, Currency: "USD", StockQty: 4},
			{ID: 2, SKU: "LAP-2", Name: "Vela Lite laptop", Category: "laptop", Color: "black", PriceCents: 89900, Currency: "USD", StockQty: 11},
		},
		total: 2,
		facets: domain.FacetCounts{
			Categories: map[string]int64{"laptop": 2},
			Colors:     map[string]int64{"silver": 1, "black": 1},
		},
	}
}

func TestCacheKeyIsDeterministic(t *testing.T) {
	a := mustFilter(t, domain.SearchFilterInput{Query: "laptop", Colors: []string{"red"}})
	b := mustFilter(t, domain.SearchFilterInput{Query: "laptop", Colors: []string{"red"}})

	assert.Equal(t, cacheKey(a), cacheKey(b))
	assert.True(t, strings.HasPrefix(cacheKey(a), "search:"))
}

func TestCacheKeyDefaultsEqualExplicitDefaults(t *testing.T) {
	// Omitted page/limit/sort take defaults during construction, so a bare
	// request and one spelling out the defaults share a cache entry.
	omitted := mustFilter(t, domain.SearchFilterInput{Query: "laptop"})
	explicit := mustFilter(t, domain.SearchFilterInput{Query: "laptop", Page: 1, Limit: 12, Sort: domain.SortRelevance})

	assert.Equal(t, cacheKey(omitted), cacheKey(explicit))
}

func TestCacheKeyDistinguishesFilters(t *testing.T) {
	base := mustFilter(t, domain.SearchFilterInput{Query: "laptop"})
	variants := []domain.SearchFilter{
		mustFilter(t, domain.SearchFilterInput{Query: "laptop", Page: 2}),
		mustFilter(t, domain.SearchFilterInput{Query: "laptop", Limit: 24}),
		mustFilter(t, domain.SearchFilterInput{Query: "laptop", Sort: domain.SortPriceAsc}),
		mustFilter(t, domain.SearchFilterInput{Query: "laptop", Colors: []string{"red"}}),
		mustFilter(t, domain.SearchFilterInput{Query: "notebook"}),
	}

	for _, v := range variants {
		assert.NotEqual(t, cacheKey(base), cacheKey(v))
	}
}

func TestSearchMissThenHit(t *testing.T) {
	repo := sampleRepo()
	store := newFakeStore()
	uc := NewSearchUsecase(repo, store, 2*time.Minute)

	filter := mustFilter(t, domain.SearchFilterInput{Query: "laptop"})

	first, err := uc.Search(context.Background(), filter)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, repo.searchCalls)
	assert.Equal(t, 1, store.sets)
	require.Len(t, first.Results, 2)
	assert.Equal(t, "LAP-1", first.Results[0].SKU)

	second, err := uc.Search(context.Background(), filter)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, 1, repo.searchCalls, "hit must not touch the repository")
	assert.Equal(t, first.Results, second.Results)
	assert.Equal(t, first.Facets, second.Facets)
	assert.Equal(t, first.Pagination, second.Pagination)
}

func TestSearchPaginationHasNext(t *testing.T) {
	repo := sampleRepo()
	repo.total = 25
	store := newFakeStore()
	uc := NewSearchUsecase(repo, store, time.Minute)

	page2, err := uc.Search(context.Background(), mustFilter(t, domain.SearchFilterInput{Page: 2, Limit: 12}))
	require.NoError(t, err)
	assert.True(t, page2.Pagination.HasNext, "24 of 25 seen after page 2")

	store.Invalidate(context.Background(), "")
	page3, err := uc.Search(context.Background(), mustFilter(t, domain.SearchFilterInput{Page: 3, Limit: 12}))
	require.NoError(t, err)
	assert.False(t, page3.Pagination.HasNext)
	assert.Equal(t, int64(25), page3.Pagination.Total)
}

func TestSearchCorruptCacheEntryFallsThrough(t *testing.T) {
	repo := sampleRepo()
	store := newFakeStore()
	uc := NewSearchUsecase(repo, store, time.Minute)

	filter := mustFilter(t, domain.SearchFilterInput{Query: "laptop"})
	store.Set(context.Background(), cacheKey(filter), []byte("{not json"), time.Minute)

	result, err := uc.Search(context.Background(), filter)
	require.NoError(t, err)
	assert.False(t, result.Cached)
	assert.Equal(t, 1, repo.searchCalls)
}

func TestSearchRepositoryErrorsPropagate(t *testing.T) {
	repo := sampleRepo()
	repo.searchErr = assert.AnError
	uc := NewSearchUsecase(repo, newFakeStore(), time.Minute)

	_, err := uc.Search(context.Background(), mustFilter(t, domain.SearchFilterInput{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSearchFacetErrorSkipsCacheWrite(t *testing.T) {
	repo := sampleRepo()
	repo.facetsErr = assert.AnError
	store := newFakeStore()
	uc := NewSearchUsecase(repo, store, time.Minute)

	_, err := uc.Search(context.Background(), mustFilter(t, domain.SearchFilterInput{}))
	require.Error(t, err)
	assert.Equal(t, 0, store.sets)
}

func TestInvalidateFiltersClearsNamespace(t *testing.T) {
	repo := sampleRepo()
	store := newFakeStore()
	uc := NewSearchUsecase(repo, store, time.Minute)

	filter := mustFilter(t, domain.SearchFilterInput{Query: "laptop"})
	_, err := uc.Search(context.Background(), filter)
	require.NoError(t, err)

	// An unrelated tenant of the same store must survive
	store.Set(context.Background(), "session:abc", []byte("x"), time.Minute)

	require.NoError(t, uc.InvalidateFilters(context.Background(), ""))

	result, err := uc.Search(context.Background(), filter)
	require.NoError(t, err)
	assert.False(t, result.Cached, "entry was invalidated")
	assert.Equal(t, 2, repo.searchCalls)

	_, found := store.Get(context.Background(), "session:abc")
	assert.True(t, found)
}

func TestExplainReportsCacheHit(t *testing.T) {
	repo := sampleRepo()
	store := newFakeStore()
	uc := NewSearchUsecase(repo, store, time.Minute)

	filter := mustFilter(t, domain.SearchFilterInput{Query: "laptop"})

	cold, err := uc.Explain(context.Background(), filter)
	require.NoError(t, err)
	assert.False(t, cold.CacheHit)
	assert.Equal(t, int64(2), cold.Total)
	assert.Equal(t, 2, cold.Returned)
	assert.Equal(t, 1, cold.Categories)
	assert.Equal(t, 2, cold.ColorGroups)

	warm, err := uc.Explain(context.Background(), filter)
	require.NoError(t, err)
	assert.True(t, warm.CacheHit)
}
