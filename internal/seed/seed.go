package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Slug           string
	Title          string
	Description    string
	Category       string
	TradePrice     string
	MarkupKind     string
	MarkupValue    string
	MRP            string
	DiscountAmount string
	Discounted     string
	Variants       []string
}

type storeSeed struct {
	Slug            string
	Name            string
	Threshold       *string
	ShippingOptions string
	Products        []productSeed
}

// Apply inserts two demo stores for manual testing, so store isolation can
// be exercised end to end. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	acmeThreshold := "30.00"
	stores := []storeSeed{
		{
			Slug:      "acme",
			Name:      "Acme Outfitters",
			Threshold: &acmeThreshold,
			ShippingOptions: `[
				{"name": "courier", "price": "5.00", "description": "Door delivery", "estimatedDays": 2},
				{"name": "express", "price": "12.00", "description": "Next day", "estimatedDays": 1},
				{"name": "custom", "price": "0"}
			]`,
			Products: []productSeed{
				{
					Slug: "classic-tee", Title: "Classic Tee", Description: "Soft cotton tee",
					Category: "apparel", TradePrice: "8.00", MarkupKind: "percent", MarkupValue: "150",
					MRP: "20.00", DiscountAmount: "5.00", Discounted: "15.00",
					Variants: []string{"S", "M", "L"},
				},
				{
					Slug: "enamel-mug", Title: "Enamel Mug", Description: "Camp-style mug",
					Category: "kitchen", TradePrice: "4.00", MarkupKind: "multiplier", MarkupValue: "3",
					MRP: "12.00", DiscountAmount: "0", Discounted: "12.00",
				},
			},
		},
		{
			Slug: "beta",
			Name: "Beta Books",
			ShippingOptions: `[
				{"name": "post", "price": "3.00", "description": "Standard post", "estimatedDays": 5}
			]`,
			Products: []productSeed{
				{
					Slug: "field-notes", Title: "Field Notes", Description: "Pocket notebook",
					Category: "stationery", TradePrice: "2.00", MarkupKind: "percent", MarkupValue: "200",
					MRP: "6.00", DiscountAmount: "1.00", Discounted: "5.00",
				},
			},
		},
	}

	for _, s := range stores {
		storeID, err := ensureStore(ctx, pool, s)
		if err != nil {
			return fmt.Errorf("ensure store %s: %w", s.Slug, err)
		}
		for _, p := range s.Products {
			if err := upsertProduct(ctx, pool, storeID, p); err != nil {
				return fmt.Errorf("upsert product %s: %w", p.Slug, err)
			}
		}
	}

	return nil
}

func ensureStore(ctx context.Context, pool *pgxpool.Pool, s storeSeed) (string, error) {
	const storeQ = `
INSERT INTO stores (slug, name)
VALUES ($1, $2)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var storeID string
	if err := pool.QueryRow(ctx, storeQ, s.Slug, s.Name).Scan(&storeID); err != nil {
		return "", err
	}

	const settingsQ = `
INSERT INTO store_settings (store_id, shipping_options, free_shipping_threshold)
VALUES ($1, $2::jsonb, $3)
ON CONFLICT (store_id) DO UPDATE SET
    shipping_options = EXCLUDED.shipping_options,
    free_shipping_threshold = EXCLUDED.free_shipping_threshold
`
	if _, err := pool.Exec(ctx, settingsQ, storeID, s.ShippingOptions, s.Threshold); err != nil {
		return "", err
	}
	return storeID, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, storeID string, p productSeed) error {
	const productQ = `
INSERT INTO products (store_id, slug, title, description, category,
                      trade_price, markup_kind, markup_value, mrp, discount_amount, discounted_price)
VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8::numeric, $9::numeric, $10::numeric, $11::numeric)
ON CONFLICT (store_id, slug) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    category = EXCLUDED.category,
    trade_price = EXCLUDED.trade_price,
    markup_kind = EXCLUDED.markup_kind,
    markup_value = EXCLUDED.markup_value,
    mrp = EXCLUDED.mrp,
    discount_amount = EXCLUDED.discount_amount,
    discounted_price = EXCLUDED.discounted_price
RETURNING id::text
`
	var productID string
	if err := pool.QueryRow(ctx, productQ, storeID, p.Slug, p.Title, p.Description, p.Category,
		p.TradePrice, p.MarkupKind, p.MarkupValue, p.MRP, p.DiscountAmount, p.Discounted).Scan(&productID); err != nil {
		return err
	}

	const variantQ = `
INSERT INTO variants (product_id, name, trade_price, markup_kind, markup_value, mrp, discount_amount, discounted_price)
VALUES ($1, $2, $3::numeric, $4, $5::numeric, $6::numeric, $7::numeric, $8::numeric)
ON CONFLICT (product_id, name) DO NOTHING
`
	for _, name := range p.Variants {
		if _, err := pool.Exec(ctx, variantQ, productID, name,
			p.TradePrice, p.MarkupKind, p.MarkupValue, p.MRP, p.DiscountAmount, p.Discounted); err != nil {
			return err
		}
	}
	return nil
}
