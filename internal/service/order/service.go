package order

import (
	"context"
	"errors"
	"io"
	"log"

	"shei-hoise-api/internal/cart"
	"shei-hoise-api/internal/checkout"
	"shei-hoise-api/internal/domain"
	"shei-hoise-api/internal/events"
	"shei-hoise-api/internal/pricing"
	orderrepo "shei-hoise-api/internal/repository/order"
	"shei-hoise-api/internal/shipping"
)

var ErrEmptyCart = errors.New("cart is empty for this store")

// ValidationError carries the field-level checkout form errors.
type ValidationError struct {
	Result checkout.Result
}

func (e *ValidationError) Error() string { return "checkout form invalid" }

type storeSource interface {
	Store(ctx context.Context, slug string) (*domain.Store, error)
	Settings(ctx context.Context, slug string) (*domain.StoreSettings, error)
}

type Service struct {
	stores    storeSource
	repo      orderrepo.Repository
	carts     *cart.Manager
	publisher events.Publisher
	logger    *log.Logger
}

func New(stores storeSource, repo orderrepo.Repository, carts *cart.Manager, publisher events.Publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{stores: stores, repo: repo, carts: carts, publisher: publisher, logger: logger}
}

// SubmitInput is everything checkout sends: the session whose cart is being
// bought, the store it is bought from, the buyer's details, and the chosen
// shipping method (empty means the store's default option).
type SubmitInput struct {
	SessionID      string
	StoreSlug      string
	Form           checkout.Form
	ShippingMethod string
}

// Submit places an order for the session's cart lines in one store. Totals
// are recomputed server-side from the ledger and the store's shipping
// configuration; totals sent by the client are ignored. On success the
// store's portion of the cart is cleared and an order.created event goes
// out best-effort.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*domain.Order, error) {
	if res := in.Form.Validate(); !res.OK {
		return nil, &ValidationError{Result: res}
	}

	store, err := s.stores.Store(ctx, in.StoreSlug)
	if err != nil {
		return nil, err
	}

	ledger := s.carts.Ledger(ctx, in.SessionID)
	items := ledger.ItemsByStore(in.StoreSlug)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	subtotal := pricing.Subtotal(items)

	selector := shipping.NewSelector(in.StoreSlug, s.stores)
	if err := selector.Refresh(ctx); err != nil {
		return nil, err
	}
	selector.SetSubtotal(subtotal)
	if in.ShippingMethod != "" {
		if err := selector.Select(in.ShippingMethod); err != nil {
			return nil, err
		}
	}
	quote, err := selector.Quote()
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		StoreID:     store.ID,
		StoreSlug:   store.Slug,
		Customer:    in.Form.CustomerDetails(),
		Items:       orderItems(items),
		Subtotal:    subtotal,
		ShippingFee: quote.Fee,
		Total:       pricing.TotalWithShipping(subtotal, quote.Fee),
		Shipping:    quote.Option.Name,
		Status:      domain.OrderStatusPending,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	ledger.ClearStore(ctx, in.StoreSlug)

	evt := events.OrderCreated{
		OrderID:   created.ID,
		StoreSlug: created.StoreSlug,
		Total:     created.Total.String(),
		Currency:  store.Currency,
		CreatedAt: created.CreatedAt,
	}
	if err := s.publisher.PublishOrderCreated(ctx, evt); err != nil {
		// The order stands; the event stream catches up elsewhere.
		s.logger.Printf("order service: publish order=%s: %v", created.ID, err)
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, storeSlug, orderID string) (*domain.Order, error) {
	store, err := s.stores.Store(ctx, storeSlug)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, store.ID, orderID)
}

func (s *Service) List(ctx context.Context, storeSlug string) ([]domain.Order, error) {
	store, err := s.stores.Store(ctx, storeSlug)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStore(ctx, store.ID)
}

// BulkStatusResult reports which orders a bulk update touched and which ids
// did not match any order in the store.
type BulkStatusResult struct {
	Updated []string `json:"updated"`
	Missing []string `json:"missing,omitempty"`
}

// UpdateStatusBulk sets the status on every listed order of the store.
// Unknown ids are reported in Missing rather than failing the batch.
func (s *Service) UpdateStatusBulk(ctx context.Context, storeSlug string, orderIDs []string, status domain.OrderStatus) (*BulkStatusResult, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	if len(orderIDs) == 0 {
		return nil, errors.New("orderIds required")
	}

	store, err := s.stores.Store(ctx, storeSlug)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateStatusBulk(ctx, store.ID, orderIDs, status)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(updated))
	for _, id := range updated {
		seen[id] = true
	}
	var missing []string
	for _, id := range orderIDs {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	return &BulkStatusResult{Updated: updated, Missing: missing}, nil
}

func orderItems(items []domain.CartItem) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, domain.OrderItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Title:     item.Meta.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		})
	}
	return out
}
