// Package cart implements the session-scoped cart ledger: the set of line
// items a browser session has added across every store it visited, with
// deterministic mutation and query operations and write-through persistence.
package cart

import (
	"context"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"shei-hoise-api/internal/domain"
)

// Storage persists a session's ledger. Save runs after every mutation and
// Load once when the ledger is built. A nil error with no items means a
// fresh session.
type Storage interface {
	Load(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	Save(ctx context.Context, sessionID string, items []domain.CartItem) error
}

// Ledger holds one session's cart lines. Mutations are serialized by a
// mutex so rapid double-dispatch from the UI produces two ordered
// increments rather than a lost update. Invalid input (quantity < 1,
// missing identity) is a silent no-op: callers drive these operations from
// user interaction and never handle errors for them.
type Ledger struct {
	mu        sync.Mutex
	sessionID string
	items     []domain.CartItem
	storage   Storage
	logger    *log.Logger
}

// NewLedger builds a ledger for sessionID, rehydrating persisted items. A
// load failure starts the session empty rather than failing: the ledger is
// the source of truth once in memory and storage is a best-effort sink.
func NewLedger(ctx context.Context, sessionID string, storage Storage, logger *log.Logger) *Ledger {
	l := &Ledger{sessionID: sessionID, storage: storage, logger: logger}
	if storage == nil {
		return l
	}
	items, err := storage.Load(ctx, sessionID)
	if err != nil {
		if logger != nil {
			logger.Printf("cart: load session %s: %v", sessionID, err)
		}
		return l
	}
	l.items = items
	return l
}

// Add upserts a line on (productID, variantID, storeSlug). Re-adding an
// existing tuple increments its quantity; this is the expected "add more"
// path, not an error. Items with quantity < 1 or a missing product or store
// are ignored.
func (l *Ledger) Add(ctx context.Context, item domain.CartItem) {
	if item.Quantity < 1 || item.ProductID == "" || item.StoreSlug == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if idx := l.find(item.ProductID, item.VariantID, item.StoreSlug); idx >= 0 {
		l.items[idx].Quantity += item.Quantity
	} else {
		l.items = append(l.items, item)
	}
	l.persist(ctx)
}

// UpdateQuantity sets a line's quantity. Quantities below 1 are rejected as
// a no-op; removal is a separate operation.
func (l *Ledger) UpdateQuantity(ctx context.Context, productID, variantID string, quantity int) {
	if quantity < 1 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].ProductID == productID && l.items[i].VariantID == variantID {
			l.items[i].Quantity = quantity
			l.persist(ctx)
			return
		}
	}
}

// Remove deletes the matching line. Removing an absent tuple is a no-op.
func (l *Ledger) Remove(ctx context.Context, productID, variantID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].ProductID == productID && l.items[i].VariantID == variantID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.persist(ctx)
			return
		}
	}
}

// Clear empties the whole ledger, every store.
func (l *Ledger) Clear(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	l.persist(ctx)
}

// ClearStore removes only lines belonging to storeSlug. A session can carry
// carts for several independent stores at once; completing checkout for one
// must not touch the others.
func (l *Ledger) ClearStore(ctx context.Context, storeSlug string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.items[:0]
	for _, item := range l.items {
		if item.StoreSlug != storeSlug {
			kept = append(kept, item)
		}
	}
	l.items = kept
	l.persist(ctx)
}

// Items returns a copy of every line in the ledger.
func (l *Ledger) Items() []domain.CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return copyItems(l.items)
}

// ItemsByStore returns a copy of the lines belonging to storeSlug.
func (l *Ledger) ItemsByStore(storeSlug string) []domain.CartItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []domain.CartItem
	for _, item := range l.items {
		if item.StoreSlug == storeSlug {
			out = append(out, item)
		}
	}
	return out
}

// TotalItems is the sum of quantities across every store.
func (l *Ledger) TotalItems() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, item := range l.items {
		total += item.Quantity
	}
	return total
}

// TotalItemsByStore is the sum of quantities scoped to storeSlug.
func (l *Ledger) TotalItemsByStore(storeSlug string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, item := range l.items {
		if item.StoreSlug == storeSlug {
			total += item.Quantity
		}
	}
	return total
}

// TotalPrice is the sum of unitPrice * quantity across every store.
func (l *Ledger) TotalPrice() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := decimal.Zero
	for _, item := range l.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// TotalPriceByStore is the sum of unitPrice * quantity scoped to storeSlug.
func (l *Ledger) TotalPriceByStore(storeSlug string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := decimal.Zero
	for _, item := range l.items {
		if item.StoreSlug == storeSlug {
			total = total.Add(item.LineTotal())
		}
	}
	return total
}

// find returns the index of the line matching the identity tuple, or -1.
// Callers hold l.mu.
func (l *Ledger) find(productID, variantID, storeSlug string) int {
	for i := range l.items {
		if l.items[i].ProductID == productID &&
			l.items[i].VariantID == variantID &&
			l.items[i].StoreSlug == storeSlug {
			return i
		}
	}
	return -1
}

// persist writes the current items through to storage. A failed save is
// logged and otherwise ignored: the in-memory ledger stays authoritative
// and is never rolled back for a storage error. Callers hold l.mu.
func (l *Ledger) persist(ctx context.Context) {
	if l.storage == nil {
		return
	}
	if err := l.storage.Save(ctx, l.sessionID, copyItems(l.items)); err != nil && l.logger != nil {
		l.logger.Printf("cart: save session %s: %v", l.sessionID, err)
	}
}

func copyItems(items []domain.CartItem) []domain.CartItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.CartItem, len(items))
	copy(out, items)
	return out
}
