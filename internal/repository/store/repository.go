package store

import (
	"context"

	"shei-hoise-api/internal/domain"
)

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	GetSettings(ctx context.Context, storeID string) (*domain.StoreSettings, error)
}
