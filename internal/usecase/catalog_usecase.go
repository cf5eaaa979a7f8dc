package usecase

import (
	"context"
	"fmt"

	"catalog-search-backend/internal/domain"
	"catalog-search-backend/pkg/logger"
)

// CatalogUsecase handles admin catalog writes. Every successful write
// invalidates the whole search cache namespace: cached result pages may
// reference the changed product in hits, facet counts or totals.
type CatalogUsecase struct {
	repo   domain.ProductRepository
	search domain.SearchUsecase
}

func NewCatalogUsecase(repo domain.ProductRepository, search domain.SearchUsecase) *CatalogUsecase {
	return &CatalogUsecase{
		repo:   repo,
		search: search,
	}
}

func (uc *CatalogUsecase) CreateProduct(ctx context.Context, product *domain.Product) error {
	if product.Currency == "" {
		product.Currency = "USD"
	}
	product.RebuildSearchableText()

	if err := uc.repo.CreateProduct(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	uc.invalidateSearchCache(ctx)
	return nil
}

func (uc *CatalogUsecase) UpdateProduct(ctx context.Context, product *domain.Product) error {
	existing, err := uc.repo.GetProductByID(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("fetch product: %w", err)
	}
	if existing == nil {
		return domain.NewValidationError("id", "product not found")
	}
	product.CreatedAt = existing.CreatedAt
	product.RebuildSearchableText()

	if err := uc.repo.UpdateProduct(ctx, product); err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	uc.invalidateSearchCache(ctx)
	return nil
}

func (uc *CatalogUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if err := uc.repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	uc.invalidateSearchCache(ctx)
	return nil
}

func (uc *CatalogUsecase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return uc.repo.GetProductByID(ctx, id)
}

func (uc *CatalogUsecase) invalidateSearchCache(ctx context.Context) {
	if err := uc.search.InvalidateFilters(ctx, ""); err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("search cache invalidation failed")
	}
}
