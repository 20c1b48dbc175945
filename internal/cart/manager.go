package cart

import (
	"context"
	"log"
	"sync"
)

// Manager hands out one ledger per session id. The ledger for a session is
// built once (rehydrating from storage) and reused for the session's
// lifetime, which keeps the single-writer model: all mutations for a
// session funnel through the same Ledger.
type Manager struct {
	mu      sync.Mutex
	ledgers map[string]*Ledger
	storage Storage
	logger  *log.Logger
}

func NewManager(storage Storage, logger *log.Logger) *Manager {
	return &Manager{
		ledgers: make(map[string]*Ledger),
		storage: storage,
		logger:  logger,
	}
}

// Ledger returns the ledger for sessionID, creating and rehydrating it on
// first use.
func (m *Manager) Ledger(ctx context.Context, sessionID string) *Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.ledgers[sessionID]; ok {
		return l
	}
	l := NewLedger(ctx, sessionID, m.storage, m.logger)
	m.ledgers[sessionID] = l
	return l
}
