// Package shipping wires a store's shipping configuration to the pricing
// rules: it fetches the options and free-shipping threshold for a store,
// keeps a current selection, and re-resolves the effective fee whenever the
// cart subtotal or the selection changes.
package shipping

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"shei-hoise-api/internal/domain"
	"shei-hoise-api/internal/pricing"
)

// ErrNoOptions indicates the store has no selectable shipping options.
var ErrNoOptions = errors.New("no shipping options available")

// SettingsSource resolves a store slug to its checkout settings. The store
// service implements this; tests supply stubs.
type SettingsSource interface {
	Settings(ctx context.Context, storeSlug string) (*domain.StoreSettings, error)
}

// Quote is the selector's current answer: the chosen option, the effective
// fee after the threshold rule, and whether the fee was waived.
type Quote struct {
	Option       domain.ShippingOption `json:"option"`
	Fee          decimal.Decimal       `json:"fee"`
	FreeShipping bool                  `json:"freeShipping"`
}

// Selector holds the shipping state for one store within one session. A
// failed refresh leaves the previous state intact; a refresh resolving
// after Close is dropped so a departed caller never sees a late update.
type Selector struct {
	mu        sync.Mutex
	storeSlug string
	source    SettingsSource

	options   []domain.ShippingOption
	threshold *decimal.Decimal
	selected  int
	subtotal  decimal.Decimal
	closed    bool
}

func NewSelector(storeSlug string, source SettingsSource) *Selector {
	return &Selector{storeSlug: storeSlug, source: source, selected: -1}
}

// Refresh fetches the store's shipping configuration. The sentinel "custom"
// option is filtered out, and when nothing is selected yet (or the previous
// selection disappeared) the first remaining option becomes the default.
func (s *Selector) Refresh(ctx context.Context) error {
	settings, err := s.source.Settings(ctx, s.storeSlug)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	previous := ""
	if s.selected >= 0 && s.selected < len(s.options) {
		previous = s.options[s.selected].Name
	}

	s.options = s.options[:0]
	for _, opt := range settings.ShippingOptions {
		if strings.EqualFold(strings.TrimSpace(opt.Name), "custom") {
			continue
		}
		s.options = append(s.options, opt)
	}
	s.threshold = settings.FreeShippingThreshold

	s.selected = -1
	for i, opt := range s.options {
		if opt.Name == previous {
			s.selected = i
			break
		}
	}
	if s.selected < 0 && len(s.options) > 0 {
		s.selected = 0
	}
	return nil
}

// Select picks an option by name.
func (s *Selector) Select(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, opt := range s.options {
		if opt.Name == name {
			s.selected = i
			return nil
		}
	}
	return errors.New("unknown shipping option")
}

// SetSubtotal feeds the current store-scoped cart subtotal into the
// selector. The effective fee depends on it, so every quantity change must
// land here, not only explicit option selection.
func (s *Selector) SetSubtotal(subtotal decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subtotal = subtotal
}

// Fee is the effective fee for the current selection and subtotal.
func (s *Selector) Fee() (decimal.Decimal, error) {
	q, err := s.Quote()
	if err != nil {
		return decimal.Zero, err
	}
	return q.Fee, nil
}

// Quote resolves the current selection against the threshold rule.
func (s *Selector) Quote() (Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected < 0 || s.selected >= len(s.options) {
		return Quote{}, ErrNoOptions
	}
	opt := s.options[s.selected]
	fee := pricing.ResolveShippingFee(opt, s.subtotal, s.threshold)
	return Quote{
		Option:       opt,
		Fee:          fee,
		FreeShipping: fee.IsZero() && !opt.Price.IsZero(),
	}, nil
}

// Options returns the selectable options, sentinel excluded.
func (s *Selector) Options() []domain.ShippingOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ShippingOption, len(s.options))
	copy(out, s.options)
	return out
}

// Close marks the selector abandoned. Refreshes resolving afterwards are
// discarded.
func (s *Selector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}
