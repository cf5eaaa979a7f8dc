package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-search-backend/internal/domain"
	"catalog-search-backend/internal/synonyms"
)

func int64Ptr(v int64) *int64 { return &v }

func testRepo() *productRepository {
	return &productRepository{synonyms: synonyms.New(synonyms.DefaultTable())}
}

func TestBuildPredicatesEmptyFilter(t *testing.T) {
	where, args := testRepo().buildPredicates(domain.SearchFilter{})

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildPredicatesQueryExpandsSynonyms(t *testing.T) {
	where, args := testRepo().buildPredicates(domain.SearchFilter{Query: "laptop"})

	assert.Equal(t, " WHERE (searchable_text ILIKE $1 OR searchable_text ILIKE $2 OR searchable_text ILIKE $3)", where)
	assert.Equal(t, []interface{}{"%laptop%", "%notebook%", "%ultrabook%"}, args)
}

func TestBuildPredicatesUnknownTermSingleClause(t *testing.T) {
	where, args := testRepo().buildPredicates(domain.SearchFilter{Query: "bicycle"})

	assert.Equal(t, " WHERE (searchable_text ILIKE $1)", where)
	assert.Equal(t, []interface{}{"%bicycle%"}, args)
}

func TestBuildPredicatesIsDeterministic(t *testing.T) {
	repo := testRepo()
	filter := domain.SearchFilter{
		Query:      "sneaker",
		MinPrice:   int64Ptr(1000),
		MaxPrice:   int64Ptr(9000),
		Colors:     []string{"red", "blue"},
		Categories: []string{"sneaker"},
	}

	firstWhere, firstArgs := repo.buildPredicates(filter)
	for i := 0; i < 5; i++ {
		where, args := repo.buildPredicates(filter)
		assert.Equal(t, firstWhere, where)
		assert.Equal(t, firstArgs, args)
	}
}

func TestBuildPredicatesCombined(t *testing.T) {
	where, args := testRepo().buildPredicates(domain.SearchFilter{
		Query:      "hoodie",
		MinPrice:   int64Ptr(500),
		MaxPrice:   int64Ptr(15000),
		Colors:     []string{"black"},
		Categories: []string{"hoodie"},
	})

	require.Equal(t,
		" WHERE (searchable_text ILIKE $1 OR searchable_text ILIKE $2)"+
			" AND price_cents >= $3 AND price_cents <= $4"+
			" AND color = ANY($5) AND category = ANY($6)",
		where)
	require.Len(t, args, 6)
	assert.Equal(t, "%hoodie%", args[0])
	assert.Equal(t, "%sweatshirt%", args[1])
	assert.Equal(t, int64(500), args[2])
	assert.Equal(t, int64(15000), args[3])
	assert.Equal(t, []string{"black"}, args[4])
	assert.Equal(t, []string{"hoodie"}, args[5])
}

func TestBuildPredicatesPriceOnly(t *testing.T) {
	where, args := testRepo().buildPredicates(domain.SearchFilter{MinPrice: int64Ptr(2000)})

	assert.Equal(t, " WHERE price_cents >= $1", where)
	assert.Equal(t, []interface{}{int64(2000)}, args)
}

func TestBuildPredicatesReverseSynonymScenario(t *testing.T) {
	// With notebook configured as a synonym of laptop, a "notebook" query
	// must produce a pattern matching laptop products and nothing else.
	syn := synonyms.New(map[string][]string{"notebook": {"laptop"}})
	repo := &productRepository{synonyms: syn}

	where, args := repo.buildPredicates(domain.SearchFilter{Query: "notebook"})

	assert.Equal(t, " WHERE (searchable_text ILIKE $1 OR searchable_text ILIKE $2)", where)
	require.Equal(t, []interface{}{"%laptop%", "%notebook%"}, args)

	matches := func(searchableText string) bool {
		for _, a := range args {
			pattern := strings.Trim(a.(string), "%")
			if strings.Contains(searchableText, pattern) {
				return true
			}
		}
		return false
	}
	assert.True(t, matches("black laptop pro laptops black"))
	assert.False(t, matches("red sneaker shoes red"))
}

func TestOrderByWhitelist(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{domain.SortRelevance, "updated_at DESC"},
		{domain.SortPriceAsc, "price_cents ASC"},
		{domain.SortPriceDesc, "price_cents DESC"},
		{domain.SortNewest, "created_at DESC"},
		// Anything unexpected falls back to recency rather than reaching SQL
		{"; DROP TABLE products", "updated_at DESC"},
		{"", "updated_at DESC"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, orderBy(tt.sort))
	}
}
