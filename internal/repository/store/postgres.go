package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"shei-hoise-api/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	const q = `
SELECT id::text, slug, name, currency, created_at
FROM stores
WHERE slug = $1
`
	var s domain.Store
	err := r.pool.QueryRow(ctx, q, slug).Scan(&s.ID, &s.Slug, &s.Name, &s.Currency, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) GetSettings(ctx context.Context, storeID string) (*domain.StoreSettings, error) {
	const q = `
SELECT store_id::text, shipping_options, free_shipping_threshold::text
FROM store_settings
WHERE store_id = $1
`
	var (
		settings  domain.StoreSettings
		rawOpts   []byte
		threshold *string
	)
	err := r.pool.QueryRow(ctx, q, storeID).Scan(&settings.StoreID, &rawOpts, &threshold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(rawOpts, &settings.ShippingOptions); err != nil {
		return nil, err
	}
	if threshold != nil {
		d, err := decimal.NewFromString(*threshold)
		if err != nil {
			return nil, err
		}
		settings.FreeShippingThreshold = &d
	}
	return &settings, nil
}
