package cart

import (
	"context"
	"sync"

	"shei-hoise-api/internal/domain"
)

// MemoryStorage keeps ledgers in a process-local map. Used in tests and
// when the API runs without a database.
type MemoryStorage struct {
	mu       sync.Mutex
	sessions map[string][]domain.CartItem
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{sessions: make(map[string][]domain.CartItem)}
}

func (s *MemoryStorage) Load(_ context.Context, sessionID string) ([]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.sessions[sessionID]), nil
}

func (s *MemoryStorage) Save(_ context.Context, sessionID string, items []domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = copyItems(items)
	return nil
}
