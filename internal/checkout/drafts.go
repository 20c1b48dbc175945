package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DraftStorage persists the last entered checkout form per session. Load on
// first render, save after every change; it shares the cart's write-through
// model but carries no pricing state.
type DraftStorage interface {
	LoadDraft(ctx context.Context, sessionID string) (*Form, error)
	SaveDraft(ctx context.Context, sessionID string, form Form) error
}

// MemoryDrafts is the in-process backend for tests and database-less runs.
type MemoryDrafts struct {
	mu     sync.Mutex
	drafts map[string]Form
}

func NewMemoryDrafts() *MemoryDrafts {
	return &MemoryDrafts{drafts: make(map[string]Form)}
}

func (m *MemoryDrafts) LoadDraft(_ context.Context, sessionID string) (*Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	form, ok := m.drafts[sessionID]
	if !ok {
		return nil, nil
	}
	return &form, nil
}

func (m *MemoryDrafts) SaveDraft(_ context.Context, sessionID string, form Form) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[sessionID] = form
	return nil
}

// PostgresDrafts stores one jsonb draft row per session.
type PostgresDrafts struct {
	pool *pgxpool.Pool
}

func NewPostgresDrafts(pool *pgxpool.Pool) *PostgresDrafts {
	return &PostgresDrafts{pool: pool}
}

func (p *PostgresDrafts) LoadDraft(ctx context.Context, sessionID string) (*Form, error) {
	const q = `
SELECT form
FROM checkout_drafts
WHERE session_id = $1
`
	var raw []byte
	if err := p.pool.QueryRow(ctx, q, sessionID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var form Form
	if err := json.Unmarshal(raw, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (p *PostgresDrafts) SaveDraft(ctx context.Context, sessionID string, form Form) error {
	raw, err := json.Marshal(form)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO checkout_drafts (session_id, form, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (session_id)
DO UPDATE SET form = EXCLUDED.form, updated_at = now()
`
	_, err = p.pool.Exec(ctx, q, sessionID, raw)
	return err
}
