package product

import (
	"context"

	"shei-hoise-api/internal/domain"
)

type Repository interface {
	ListByStore(ctx context.Context, storeID string) ([]domain.Product, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Product, error)
	UpdateVariantPricing(ctx context.Context, variantID string, pricing domain.VariantPricing) error
	UpdateProductPricing(ctx context.Context, productID string, pricing domain.VariantPricing) error
}
