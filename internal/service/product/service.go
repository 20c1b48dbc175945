package product

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"shei-hoise-api/internal/domain"
	"shei-hoise-api/internal/pricing"
	productrepo "shei-hoise-api/internal/repository/product"
)

type Service struct {
	repo productRepo
}

type productRepo interface {
	ListByStore(ctx context.Context, storeID string) ([]domain.Product, error)
	GetByID(ctx context.Context, storeID, id string) (*domain.Product, error)
	UpdateVariantPricing(ctx context.Context, variantID string, pricing domain.VariantPricing) error
	UpdateProductPricing(ctx context.Context, productID string, pricing domain.VariantPricing) error
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, storeID string) ([]domain.Product, error) {
	return s.repo.ListByStore(ctx, storeID)
}

func (s *Service) Get(ctx context.Context, storeID, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, storeID, id)
}

// PricingInput carries the operator-entered pricing fields. MRP and the
// discounted price are derived, never accepted from input.
type PricingInput struct {
	TradePrice     decimal.Decimal   `json:"tradePrice"`
	MarkupKind     domain.MarkupKind `json:"markupKind"`
	MarkupValue    decimal.Decimal   `json:"markupValue"`
	DiscountAmount decimal.Decimal   `json:"discountAmount"`
}

// PricingUpdate is the outcome of a pricing change. Warning is set when the
// discount exceeds the derived MRP: the negative price is stored as entered
// and reported, not clamped.
type PricingUpdate struct {
	Pricing domain.VariantPricing `json:"pricing"`
	Warning string                `json:"warning,omitempty"`
}

// UpdateVariantPricing recomputes MRP and the discounted price from the
// input and persists them on the variant. With an empty variantID the
// product's own pricing row is updated instead.
func (s *Service) UpdateVariantPricing(ctx context.Context, productID, variantID string, in PricingInput) (*PricingUpdate, error) {
	kind := domain.MarkupKind(strings.TrimSpace(string(in.MarkupKind)))
	switch kind {
	case domain.MarkupPercent, domain.MarkupMultiplier:
	default:
		return nil, errors.New("markupKind must be percent or multiplier")
	}

	computed := pricing.Recalculate(domain.VariantPricing{
		TradePrice:     in.TradePrice,
		MarkupKind:     kind,
		MarkupValue:    in.MarkupValue,
		DiscountAmount: in.DiscountAmount,
	})

	var err error
	if variantID == "" {
		if productID == "" {
			return nil, errors.New("productId required")
		}
		err = s.repo.UpdateProductPricing(ctx, productID, computed)
	} else {
		err = s.repo.UpdateVariantPricing(ctx, variantID, computed)
	}
	if err != nil {
		return nil, err
	}

	update := &PricingUpdate{Pricing: computed}
	if computed.DiscountedPrice.IsNegative() {
		update.Warning = "discount amount exceeds MRP; discounted price is negative"
	}
	return update, nil
}
