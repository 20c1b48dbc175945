package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shei-hoise-api/internal/domain"
)

// PostgresStorage persists each session's ledger as a single jsonb blob.
// The blob is written whole after every mutation and read once when the
// ledger is rehydrated, so there is no per-line schema to keep in sync.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

func (s *PostgresStorage) Load(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	const q = `
SELECT items
FROM cart_sessions
WHERE session_id = $1
`
	var raw []byte
	if err := s.pool.QueryRow(ctx, q, sessionID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *PostgresStorage) Save(ctx context.Context, sessionID string, items []domain.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO cart_sessions (session_id, items, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (session_id)
DO UPDATE SET items = EXCLUDED.items, updated_at = now()
`
	_, err = s.pool.Exec(ctx, q, sessionID, raw)
	return err
}
