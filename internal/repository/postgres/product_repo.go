package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"catalog-search-backend/internal/domain"
	"catalog-search-backend/internal/synonyms"
)

const productColumns = "id, sku, name, description, category, color, price_cents, currency, stock_qty, searchable_text, created_at, updated_at"

type productRepository struct {
	db       *pgxpool.Pool
	synonyms *synonyms.Service
}

func NewProductRepository(db *pgxpool.Pool, syn *synonyms.Service) domain.ProductRepository {
	return &productRepository{
		db:       db,
		synonyms: syn,
	}
}

// buildPredicates translates the filter into a WHERE clause and positional
// args. Synonym expansion returns terms in sorted order, so equal filters
// always produce identical SQL.
func (r *productRepository) buildPredicates(filter domain.SearchFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if filter.Query != "" {
		terms := r.synonyms.Expand(filter.Query)
		textConds := make([]string, 0, len(terms))
		for _, term := range terms {
			args = append(args, "%"+term+"%")
			textConds = append(textConds, fmt.Sprintf("searchable_text ILIKE $%d", len(args)))
		}
		conditions = append(conditions, "("+strings.Join(textConds, " OR ")+")")
	}

	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price_cents >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price_cents <= $%d", len(args)))
	}

	if len(filter.Colors) > 0 {
		args = append(args, filter.Colors)
		conditions = append(conditions, fmt.Sprintf("color = ANY($%d)", len(args)))
	}
	if len(filter.Categories) > 0 {
		args = append(args, filter.Categories)
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderBy maps the sort enum onto a whitelisted ORDER BY expression.
// "relevance" carries no scoring and falls back to update recency.
func orderBy(sort string) string {
	switch sort {
	case domain.SortPriceAsc:
		return "price_cents ASC"
	case domain.SortPriceDesc:
		return "price_cents DESC"
	case domain.SortNewest:
		return "created_at DESC"
	default:
		return "updated_at DESC"
	}
}

func (r *productRepository) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Product, int64, error) {
	whereClause, args := r.buildPredicates(filter)

	// Total over the unpaginated predicate set
	var total int64
	countQuery := "SELECT count(*) FROM products" + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Product{}, 0, nil
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(
		"SELECT %s FROM products%s ORDER BY %s LIMIT %d OFFSET %d",
		productColumns, whereClause, orderBy(filter.Sort), filter.Limit, offset,
	)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) Facets(ctx context.Context, filter domain.SearchFilter) (domain.FacetCounts, error) {
	whereClause, args := r.buildPredicates(filter)

	categories, err := r.groupCount(ctx, "category", whereClause, args)
	if err != nil {
		return domain.FacetCounts{}, err
	}
	colors, err := r.groupCount(ctx, "color", whereClause, args)
	if err != nil {
		return domain.FacetCounts{}, err
	}

	return domain.FacetCounts{Categories: categories, Colors: colors}, nil
}

func (r *productRepository) groupCount(ctx context.Context, column, whereClause string, args []interface{}) (map[string]int64, error) {
	query := fmt.Sprintf("SELECT %s, count(*) FROM products%s GROUP BY %s", column, whereClause, column)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var value string
		var count int64
		if err := rows.Scan(&value, &count); err != nil {
			return nil, err
		}
		counts[value] = count
	}
	return counts, rows.Err()
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	p, err := scanProduct(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (
			sku, name, description, category, color,
			price_cents, currency, stock_qty, searchable_text,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query,
		product.SKU, product.Name, product.Description,
		product.Category, product.Color,
		product.PriceCents, product.Currency, product.StockQty,
		product.SearchableText,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE products
		SET sku = $2,
			name = $3,
			description = $4,
			category = $5,
			color = $6,
			price_cents = $7,
			currency = $8,
			stock_qty = $9,
			searchable_text = $10,
			updated_at = $11
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		product.ID,
		product.SKU, product.Name, product.Description,
		product.Category, product.Color,
		product.PriceCents, product.Currency, product.StockQty,
		product.SearchableText,
		product.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d not found", product.ID)
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func scanProduct(rows pgx.Rows) (domain.Product, error) {
	var p domain.Product
	err := rows.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description,
		&p.Category, &p.Color,
		&p.PriceCents, &p.Currency, &p.StockQty,
		&p.SearchableText,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
