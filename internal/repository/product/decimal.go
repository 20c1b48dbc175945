package product

import (
	"github.com/shopspring/decimal"

	"shei-hoise-api/internal/domain"
)

// pricingFromStrings rebuilds a VariantPricing from numeric columns read as
// text. Numerics come back as text so no precision is lost on the wire.
func pricingFromStrings(tp, kind, mv, mrp, da, dp string) (domain.VariantPricing, error) {
	var (
		pricing domain.VariantPricing
		err     error
	)
	if pricing.TradePrice, err = decimal.NewFromString(tp); err != nil {
		return pricing, err
	}
	pricing.MarkupKind = domain.MarkupKind(kind)
	if pricing.MarkupValue, err = decimal.NewFromString(mv); err != nil {
		return pricing, err
	}
	if pricing.MRP, err = decimal.NewFromString(mrp); err != nil {
		return pricing, err
	}
	if pricing.DiscountAmount, err = decimal.NewFromString(da); err != nil {
		return pricing, err
	}
	if pricing.DiscountedPrice, err = decimal.NewFromString(dp); err != nil {
		return pricing, err
	}
	return pricing, nil
}
