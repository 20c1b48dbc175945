package product

import (
	"context"
	"errors"
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

type stubRepo struct {
	products       []domain.Product
	listErr        error
	variantErr     error
	productErr     error
	lastVariantID  string
	lastProductID  string
	lastPricing    domain.VariantPricing
	variantUpdates int
	productUpdates int
}

func (s *stubRepo) ListByStore(_ context.Context, _ string) ([]domain.Product, error) {
	return s.products, s.listErr
}

func (s *stubRepo) GetByID(_ context.Context, _, _ string) (*domain.Product, error) {
	if len(s.products) == 0 {
		return nil, domain.ErrNotFound
	}
	return &s.products[0], nil
}

func (s *stubRepo) UpdateVariantPricing(_ context.Context, variantID string, pricing domain.VariantPricing) error {
	s.lastVariantID = variantID
	s.lastPricing = pricing
	s.variantUpdates++
	return s.variantErr
}

func (s *stubRepo) UpdateProductPricing(_ context.Context, productID string, pricing domain.VariantPricing) error {
	s.lastProductID = productID
	s.lastPricing = pricing
	s.productUpdates++
	return s.productErr
}

func TestUpdateVariantPricingPercent(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo}

	got, err := svc.UpdateVariantPricing(context.Background(), "p1", "v1", PricingInput{
		TradePrice:     dec("100"),
		MarkupKind:     domain.MarkupPercent,
		MarkupValue:    dec("50"),
		DiscountAmount: dec("20"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Pricing.MRP.Equal(dec("150")) {
		t.Fatalf("expected MRP 150, got %s", got.Pricing.MRP)
	}
	if !got.Pricing.DiscountedPrice.Equal(dec("130")) {
		t.Fatalf("expected discounted 130, got %s", got.Pricing.DiscountedPrice)
	}
	if got.Warning != "" {
		t.Fatalf("unexpected warning: %s", got.Warning)
	}
	if repo.lastVariantID != "v1" || repo.variantUpdates != 1 {
		t.Fatalf("expected variant update, got %+v", repo)
	}
}

func TestUpdateVariantPricingMultiplierOnProduct(t *testing.T) {
	repo := &stubRepo{}
	svc := &Service{repo: repo}

	got, err := svc.UpdateVariantPricing(context.Background(), "p1", "", PricingInput{
		TradePrice:  dec("80"),
		MarkupKind:  domain.MarkupMultiplier,
		MarkupValue: dec("1.5"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Pricing.MRP.Equal(dec("120")) {
		t.Fatalf("expected MRP 120, got %s", got.Pricing.MRP)
	}
	if repo.lastProductID != "p1" || repo.productUpdates != 1 || repo.variantUpdates != 0 {
		t.Fatalf("expected product update, got %+v", repo)
	}
}

func TestUpdateVariantPricingNegativeDiscountWarns(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}

	got, err := svc.UpdateVariantPricing(context.Background(), "p1", "v1", PricingInput{
		TradePrice:     dec("10"),
		MarkupKind:     domain.MarkupMultiplier,
		MarkupValue:    dec("2"),
		DiscountAmount: dec("30"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Pricing.DiscountedPrice.Equal(dec("-10")) {
		t.Fatalf("expected -10 stored as entered, got %s", got.Pricing.DiscountedPrice)
	}
	if got.Warning == "" {
		t.Fatalf("expected warning for negative discounted price")
	}
}

func TestUpdateVariantPricingBadKind(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}
	_, err := svc.UpdateVariantPricing(context.Background(), "p1", "v1", PricingInput{
		TradePrice: dec("10"),
		MarkupKind: domain.MarkupKind("flat"),
	})
	if err == nil {
		t.Fatalf("expected error for unknown markup kind")
	}
}

func TestUpdateVariantPricingRepoError(t *testing.T) {
	svc := &Service{repo: &stubRepo{variantErr: errors.New("boom")}}
	_, err := svc.UpdateVariantPricing(context.Background(), "p1", "v1", PricingInput{
		TradePrice: dec("10"),
		MarkupKind: domain.MarkupPercent,
	})
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestUpdateVariantPricingRequiresProductID(t *testing.T) {
	svc := &Service{repo: &stubRepo{}}
	_, err := svc.UpdateVariantPricing(context.Background(), "", "", PricingInput{
		TradePrice: dec("10"),
		MarkupKind: domain.MarkupPercent,
	})
	if err == nil || err.Error() != "productId required" {
		t.Fatalf("expected productId error, got %v", err)
	}
}
