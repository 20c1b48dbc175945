package shipping

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"shei-hoise-api/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

type stubSource struct {
	mu       sync.Mutex
	settings *domain.StoreSettings
	err      error
	calls    int
	lastSlug string
	block    chan struct{}
}

func (s *stubSource) Settings(_ context.Context, slug string) (*domain.StoreSettings, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastSlug = slug
	return s.settings, s.err
}

func courierSettings() *domain.StoreSettings {
	return &domain.StoreSettings{
		ShippingOptions: []domain.ShippingOption{
			{Name: "courier", Price: dec("5.00"), EstimatedDays: 2},
			{Name: "pickup", Price: dec("0"), EstimatedDays: 0},
		},
		FreeShippingThreshold: decPtr("30.00"),
	}
}

func TestRefreshDefaultsToFirstOption(t *testing.T) {
	src := &stubSource{settings: courierSettings()}
	sel := NewSelector("acme", src)

	if err := sel.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q, err := sel.Quote()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Option.Name != "courier" {
		t.Fatalf("expected default courier, got %s", q.Option.Name)
	}
	if src.lastSlug != "acme" {
		t.Fatalf("expected settings fetched for acme, got %s", src.lastSlug)
	}
}

func TestRefreshFiltersCustomSentinel(t *testing.T) {
	src := &stubSource{settings: &domain.StoreSettings{
		ShippingOptions: []domain.ShippingOption{
			{Name: "Custom", Price: dec("0")},
			{Name: "courier", Price: dec("5.00")},
		},
	}}
	sel := NewSelector("acme", src)
	if err := sel.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts := sel.Options()
	if len(opts) != 1 || opts[0].Name != "courier" {
		t.Fatalf("expected only courier, got %+v", opts)
	}
}

func TestRefreshKeepsSelectionAcrossReload(t *testing.T) {
	src := &stubSource{settings: courierSettings()}
	sel := NewSelector("acme", src)
	if err := sel.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sel.Select("pickup"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sel.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q, _ := sel.Quote()
	if q.Option.Name != "pickup" {
		t.Fatalf("expected pickup kept, got %s", q.Option.Name)
	}
}

func TestRefreshErrorLeavesStateIntact(t *testing.T) {
	src := &stubSource{settings: courierSettings()}
	sel := NewSelector("acme", src)
	if err := sel.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src.mu.Lock()
	src.err = errors.New("settings unavailable")
	src.mu.Unlock()

	if err := sel.Refresh(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if got := sel.Options(); len(got) != 2 {
		t.Fatalf("expected prior options kept, got %+v", got)
	}
}

func TestSelectUnknownOption(t *testing.T) {
	src := &stubSource{settings: courierSettings()}
	sel := NewSelector("acme", src)
	if err := sel.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sel.Select("drone"); err == nil {
		t.Fatalf("expected error for unknown option")
	}
}

func TestFeeTracksSubtotal(t *testing.T) {
	src := &stubSource{settings: courierSettings()}
	sel := NewSelector("acme", src)
	if err := sel.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sel.SetSubtotal(dec("29.99"))
	fee, err := sel.Fee()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fee.Equal(dec("5.00")) {
		t.Fatalf("expected 5.00 below threshold, got %s", fee)
	}

	sel.SetSubtotal(dec("30.00"))
	fee, _ = sel.Fee()
	if !fee.Equal(decimal.Zero) {
		t.Fatalf("expected free shipping at threshold, got %s", fee)
	}

	q, _ := sel.Quote()
	if !q.FreeShipping {
		t.Fatalf("expected FreeShipping flag set")
	}
}

func TestQuoteWithoutOptions(t *testing.T) {
	sel := NewSelector("acme", &stubSource{settings: &domain.StoreSettings{}})
	if err := sel.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := sel.Quote(); !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}
}

func TestLateRefreshAfterCloseIsDropped(t *testing.T) {
	src := &stubSource{settings: courierSettings(), block: make(chan struct{})}
	sel := NewSelector("acme", src)

	done := make(chan error, 1)
	go func() {
		done <- sel.Refresh(context.Background())
	}()

	sel.Close()
	close(src.block)
	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := sel.Options(); len(got) != 0 {
		t.Fatalf("expected late refresh dropped, got %+v", got)
	}
}
