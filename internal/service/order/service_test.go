package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"shei-hoise-api/internal/cart"
	"shei-hoise-api/internal/checkout"
	"shei-hoise-api/internal/domain"
	"shei-hoise-api/internal/events"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type stubStores struct {
	store    *domain.Store
	storeErr error
	settings *domain.StoreSettings
}

func (s *stubStores) Store(_ context.Context, _ string) (*domain.Store, error) {
	return s.store, s.storeErr
}

func (s *stubStores) Settings(_ context.Context, _ string) (*domain.StoreSettings, error) {
	return s.settings, nil
}

type stubOrderRepo struct {
	created    *domain.Order
	createErr  error
	bulkResult []string
	bulkErr    error
	lastBulk   []string
	lastStatus domain.OrderStatus
}

func (s *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	o.ID = "order-1"
	s.created = o
	return o, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.created, nil
}

func (s *stubOrderRepo) ListByStore(_ context.Context, _ string) ([]domain.Order, error) {
	if s.created == nil {
		return nil, nil
	}
	return []domain.Order{*s.created}, nil
}

func (s *stubOrderRepo) UpdateStatusBulk(_ context.Context, _ string, ids []string, status domain.OrderStatus) ([]string, error) {
	s.lastBulk = ids
	s.lastStatus = status
	return s.bulkResult, s.bulkErr
}

type stubPublisher struct {
	events []events.OrderCreated
	err    error
}

func (s *stubPublisher) PublishOrderCreated(_ context.Context, evt events.OrderCreated) error {
	s.events = append(s.events, evt)
	return s.err
}

func (s *stubPublisher) Close() error { return nil }

func acmeStores() *stubStores {
	threshold := dec("30.00")
	return &stubStores{
		store: &domain.Store{ID: "st-1", Slug: "acme", Currency: "BDT"},
		settings: &domain.StoreSettings{
			ShippingOptions: []domain.ShippingOption{
				{Name: "courier", Price: dec("5.00")},
				{Name: "express", Price: dec("12.00")},
			},
			FreeShippingThreshold: &threshold,
		},
	}
}

func validForm() checkout.Form {
	return checkout.Form{
		Email:   "buyer@example.com",
		Phone:   "+8801711111111",
		Name:    "Test Buyer",
		Country: "Bangladesh",
		City:    "Dhaka",
		Address: "12 Road, Block A",
	}
}

func seedCart(t *testing.T, carts *cart.Manager, slug, price string, qty int) {
	t.Helper()
	carts.Ledger(context.Background(), "sess").Add(context.Background(), domain.CartItem{
		ProductID: "p1",
		StoreSlug: slug,
		Quantity:  qty,
		UnitPrice: dec(price),
		Meta:      domain.CartItemMeta{Title: "Widget"},
	})
}

func TestSubmitComputesTotalsBelowThreshold(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage(), nil)
	seedCart(t, carts, "acme", "9.99", 3) // subtotal 29.97
	repo := &stubOrderRepo{}
	svc := New(acmeStores(), repo, carts, nil, nil)

	got, err := svc.Submit(context.Background(), SubmitInput{
		SessionID: "sess",
		StoreSlug: "acme",
		Form:      validForm(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Subtotal.Equal(dec("29.97")) {
		t.Fatalf("expected subtotal 29.97, got %s", got.Subtotal)
	}
	if !got.ShippingFee.Equal(dec("5.00")) {
		t.Fatalf("expected fee 5.00, got %s", got.ShippingFee)
	}
	if !got.Total.Equal(dec("34.97")) {
		t.Fatalf("expected total 34.97, got %s", got.Total)
	}
	if got.Shipping != "courier" {
		t.Fatalf("expected default courier, got %s", got.Shipping)
	}
	if got.Status != domain.OrderStatusPending {
		t.Fatalf("expected pending, got %s", got.Status)
	}
}

func TestSubmitFreeShippingAtThreshold(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage(), nil)
	seedCart(t, carts, "acme", "10.00", 3) // subtotal 30.00, exactly at threshold
	repo := &stubOrderRepo{}
	svc := New(acmeStores(), repo, carts, nil, nil)

	got, err := svc.Submit(context.Background(), SubmitInput{
		SessionID: "sess",
		StoreSlug: "acme",
		Form:      validForm(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.ShippingFee.Equal(decimal.Zero) {
		t.Fatalf("expected waived fee, got %s", got.ShippingFee)
	}
	if !got.Total.Equal(dec("30.00")) {
		t.Fatalf("expected total 30.00, got %s", got.Total)
	}
}

func TestSubmitSelectsRequestedMethod(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage(), nil)
	seedCart(t, carts, "acme", "1.00", 1)
	svc := New(acmeStores(), &stubOrderRepo{}, carts, nil, nil)

	got, err := svc.Submit(context.Background(), SubmitInput{
		SessionID:      "sess",
		StoreSlug:      "acme",
		Form:           validForm(),
		ShippingMethod: "express",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Shipping != "express" || !got.ShippingFee.Equal(dec("12.00")) {
		t.Fatalf("expected express at 12.00, got %s %s", got.Shipping, got.ShippingFee)
	}
}

func TestSubmitUnknownMethod(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage(), nil)
	seedCart(t, carts, "acme", "1.00", 1)
	svc := New(acmeStores(), &stubOrderRepo{}, carts, nil, nil)

	_, err := svc.Submit(context.Background(), SubmitInput{
		SessionID:      "sess",
		StoreSlug:      "acme",
		Form:           validForm(),
		ShippingMethod: "drone",
	})
	if err == nil {
		t.Fatalf("expected error for unknown shipping method")
	}
}

func TestSubmitInvalidForm(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage(), nil)
	seedCart(t, carts, "acme", "1.00", 1)
	svc := New(acmeStores(), &stubOrderRepo{}, carts, nil, nil)

	_, err := svc.Submit(context.Background(), SubmitInput{
		SessionID: "sess",
		StoreSlug: "acme",
		Form:      checkout.Form{},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Result.Errors["email"]; !ok {
		t.Fatalf("expected email error, got %v", verr.Result.Errors)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage(), nil)
	svc := New(acmeStores(), &stubOrderRepo{}, carts, nil, nil)

	_, err := svc.Submit(context.Background(), SubmitInput{
		SessionID: "sess",
		StoreSlug: "acme",
		Form:      validForm(),
	})
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitClearsOnlyStoreCart(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage(), nil)
	seedCart(t, carts, "acme", "10.00", 2)
	ledger := carts.Ledger(context.Background(), "sess")
	ledger.Add(context.Background(), domain.CartItem{
		ProductID: "p9", StoreSlug: "beta", Quantity: 1, UnitPrice: dec("4.00"),
	})
	svc := New(acmeStores(), &stubOrderRepo{}, carts, nil, nil)

	if _, err := svc.Submit(context.Background(), SubmitInput{
		SessionID: "sess",
		StoreSlug: "acme",
		Form:      validForm(),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ledger.TotalItemsByStore("acme"); got != 0 {
		t.Fatalf("expected acme cart cleared, got %d", got)
	}
	if got := ledger.TotalItemsByStore("beta"); got != 1 {
		t.Fatalf("expected beta cart untouched, got %d", got)
	}
}

func TestSubmitRepoErrorKeepsCart(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage(), nil)
	seedCart(t, carts, "acme", "10.00", 2)
	svc := New(acmeStores(), &stubOrderRepo{createErr: errors.New("db down")}, carts, nil, nil)

	_, err := svc.Submit(context.Background(), SubmitInput{
		SessionID: "sess",
		StoreSlug: "acme",
		Form:      validForm(),
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := carts.Ledger(context.Background(), "sess").TotalItemsByStore("acme"); got != 2 {
		t.Fatalf("expected cart untouched after failure, got %d", got)
	}
}

func TestSubmitPublishesEventAndToleratesFailure(t *testing.T) {
	carts := cart.NewManager(cart.NewMemoryStorage(), nil)
	seedCart(t, carts, "acme", "10.00", 1)
	pub := &stubPublisher{err: errors.New("broker down")}
	svc := New(acmeStores(), &stubOrderRepo{}, carts, pub, nil)

	got, err := svc.Submit(context.Background(), SubmitInput{
		SessionID: "sess",
		StoreSlug: "acme",
		Form:      validForm(),
	})
	if err != nil {
		t.Fatalf("expected order despite publish failure, got %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].OrderID != got.ID {
		t.Fatalf("expected one event for %s, got %+v", got.ID, pub.events)
	}
}

func TestUpdateStatusBulk(t *testing.T) {
	repo := &stubOrderRepo{bulkResult: []string{"o1", "o3"}}
	svc := New(acmeStores(), repo, cart.NewManager(cart.NewMemoryStorage(), nil), nil, nil)

	res, err := svc.UpdateStatusBulk(context.Background(), "acme", []string{"o1", "o2", "o3"}, domain.OrderStatusShipped)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Updated) != 2 {
		t.Fatalf("expected 2 updated, got %v", res.Updated)
	}
	if len(res.Missing) != 1 || res.Missing[0] != "o2" {
		t.Fatalf("expected o2 missing, got %v", res.Missing)
	}
	if repo.lastStatus != domain.OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", repo.lastStatus)
	}
}

func TestUpdateStatusBulkInvalidStatus(t *testing.T) {
	svc := New(acmeStores(), &stubOrderRepo{}, cart.NewManager(cart.NewMemoryStorage(), nil), nil, nil)
	_, err := svc.UpdateStatusBulk(context.Background(), "acme", []string{"o1"}, domain.OrderStatus("bogus"))
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatusBulkRequiresIDs(t *testing.T) {
	svc := New(acmeStores(), &stubOrderRepo{}, cart.NewManager(cart.NewMemoryStorage(), nil), nil, nil)
	_, err := svc.UpdateStatusBulk(context.Background(), "acme", nil, domain.OrderStatusShipped)
	if err == nil || err.Error() != "orderIds required" {
		t.Fatalf("expected orderIds error, got %v", err)
	}
}
