package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shei-hoise-api/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `
id::text, store_id::text, slug, title, COALESCE(description, ''), COALESCE(category, ''), COALESCE(image_url, ''),
trade_price::text, markup_kind, markup_value::text, mrp::text, discount_amount::text, discounted_price::text,
attributes, created_at`

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE store_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		r.logger.Printf("product repo: list store_id=%s error=%v", storeID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows store_id=%s error=%v", storeID, err)
		return nil, err
	}

	for i := range result {
		variants, err := r.listVariants(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Variants = variants
	}
	r.logger.Printf("product repo: list store_id=%s count=%d", storeID, len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE store_id = $1 AND id::text = $2
`
	row := r.pool.QueryRow(ctx, q, storeID, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get store_id=%s id=%s error=%v", storeID, id, err)
		return nil, err
	}
	variants, err := r.listVariants(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants
	return p, nil
}

func (r *postgresRepo) UpdateVariantPricing(ctx context.Context, variantID string, pricing domain.VariantPricing) error {
	const q = `
UPDATE variants
SET trade_price = $1, markup_kind = $2, markup_value = $3, mrp = $4, discount_amount = $5, discounted_price = $6
WHERE id::text = $7
`
	tag, err := r.pool.Exec(ctx, q,
		pricing.TradePrice, string(pricing.MarkupKind), pricing.MarkupValue,
		pricing.MRP, pricing.DiscountAmount, pricing.DiscountedPrice, variantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpdateProductPricing(ctx context.Context, productID string, pricing domain.VariantPricing) error {
	const q = `
UPDATE products
SET trade_price = $1, markup_kind = $2, markup_value = $3, mrp = $4, discount_amount = $5, discounted_price = $6
WHERE id::text = $7
`
	tag, err := r.pool.Exec(ctx, q,
		pricing.TradePrice, string(pricing.MarkupKind), pricing.MarkupValue,
		pricing.MRP, pricing.DiscountAmount, pricing.DiscountedPrice, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) listVariants(ctx context.Context, productID string) ([]domain.Variant, error) {
	const q = `
SELECT id::text, product_id::text, name,
       trade_price::text, markup_kind, markup_value::text, mrp::text, discount_amount::text, discounted_price::text,
       created_at
FROM variants
WHERE product_id = $1
ORDER BY created_at
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []domain.Variant
	for rows.Next() {
		var (
			v        domain.Variant
			tp, mv   string
			mrp, da  string
			dp, kind string
		)
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &tp, &kind, &mv, &mrp, &da, &dp, &v.CreatedAt); err != nil {
			return nil, err
		}
		pricing, err := pricingFromStrings(tp, kind, mv, mrp, da, dp)
		if err != nil {
			return nil, err
		}
		v.Pricing = pricing
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p        domain.Product
		tp, mv   string
		mrp, da  string
		dp, kind string
	)
	if err := row.Scan(
		&p.ID, &p.StoreID, &p.Slug, &p.Title, &p.Description, &p.Category, &p.ImageURL,
		&tp, &kind, &mv, &mrp, &da, &dp,
		&p.Attributes, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	pricing, err := pricingFromStrings(tp, kind, mv, mrp, da, dp)
	if err != nil {
		return nil, err
	}
	p.Pricing = pricing
	return &p, nil
}
