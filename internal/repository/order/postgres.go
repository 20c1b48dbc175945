package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

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

// Create persists the order and its items in one transaction.
func (r *postgresRepo) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	const orderQ = `
INSERT INTO orders (id, store_id, customer_email, customer_phone, customer_name, customer_country,
                    customer_city, customer_address, customer_postcode,
                    subtotal, shipping_fee, total, shipping_method, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING created_at
`
	if err := tx.QueryRow(ctx, orderQ,
		o.ID, o.StoreID,
		o.Customer.Email, o.Customer.Phone, o.Customer.Name, o.Customer.Country,
		o.Customer.City, o.Customer.Address, o.Customer.Postcode,
		o.Subtotal, o.ShippingFee, o.Total, o.Shipping, string(o.Status),
	).Scan(&o.CreatedAt); err != nil {
		r.logger.Printf("order repo: create store_id=%s error=%v", o.StoreID, err)
		return nil, err
	}

	const itemQ = `
INSERT INTO order_items (order_id, product_id, variant_id, title, quantity, unit_price, line_total)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)
`
	for _, item := range o.Items {
		if _, err := tx.Exec(ctx, itemQ,
			o.ID, item.ProductID, item.VariantID, item.Title,
			item.Quantity, item.UnitPrice, item.LineTotal,
		); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s store_id=%s items=%d total=%s", o.ID, o.StoreID, len(o.Items), o.Total)
	return o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id string) (*domain.Order, error) {
	const q = `
SELECT o.id::text, o.store_id::text, s.slug,
       o.customer_email, o.customer_phone, o.customer_name, o.customer_country,
       o.customer_city, o.customer_address, COALESCE(o.customer_postcode, ''),
       o.subtotal::text, o.shipping_fee::text, o.total::text, o.shipping_method, o.status, o.created_at
FROM orders o
JOIN stores s ON s.id = o.store_id
WHERE o.store_id = $1 AND o.id::text = $2
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, storeID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Order, error) {
	const q = `
SELECT o.id::text, o.store_id::text, s.slug,
       o.customer_email, o.customer_phone, o.customer_name, o.customer_country,
       o.customer_city, o.customer_address, COALESCE(o.customer_postcode, ''),
       o.subtotal::text, o.shipping_fee::text, o.total::text, o.shipping_method, o.status, o.created_at
FROM orders o
JOIN stores s ON s.id = o.store_id
WHERE o.store_id = $1
ORDER BY o.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	return result, rows.Err()
}

// UpdateStatusBulk sets the status on every listed order that belongs to the
// store and returns the ids actually updated. Unknown ids are skipped, not
// an error; the service layer reports them back to the admin.
func (r *postgresRepo) UpdateStatusBulk(ctx context.Context, storeID string, orderIDs []string, status domain.OrderStatus) ([]string, error) {
	const q = `
UPDATE orders
SET status = $1
WHERE store_id = $2 AND id::text = ANY($3)
RETURNING id::text
`
	rows, err := r.pool.Query(ctx, q, string(status), storeID, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updated []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		updated = append(updated, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: bulk status store_id=%s status=%s requested=%d updated=%d",
		storeID, status, len(orderIDs), len(updated))
	return updated, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT product_id::text, COALESCE(variant_id::text, ''), title, quantity, unit_price::text, line_total::text
FROM order_items
WHERE order_id = $1
ORDER BY title
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var (
			item     domain.OrderItem
			up, line string
		)
		if err := rows.Scan(&item.ProductID, &item.VariantID, &item.Title, &item.Quantity, &up, &line); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = decimal.NewFromString(up); err != nil {
			return nil, err
		}
		if item.LineTotal, err = decimal.NewFromString(line); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o                    domain.Order
		subtotal, fee, total string
		status               string
	)
	if err := row.Scan(
		&o.ID, &o.StoreID, &o.StoreSlug,
		&o.Customer.Email, &o.Customer.Phone, &o.Customer.Name, &o.Customer.Country,
		&o.Customer.City, &o.Customer.Address, &o.Customer.Postcode,
		&subtotal, &fee, &total, &o.Shipping, &status, &o.CreatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, err
	}
	if o.ShippingFee, err = decimal.NewFromString(fee); err != nil {
		return nil, err
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}
