// Package pricing derives monetary aggregates for the storefront: cart
// subtotals, shipping-fee resolution against a store's free-shipping
// threshold, and MRP/discount computation for product variants. Everything
// here is a pure function over exact decimals; rounding is left to display
// formatting.
package pricing

import (
	"github.com/shopspring/decimal"

	"shei-hoise-api/internal/domain"
)

// Subtotal sums unitPrice * quantity over the given items, exactly.
func Subtotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// TotalWithShipping is subtotal + fee.
func TotalWithShipping(subtotal, fee decimal.Decimal) decimal.Decimal {
	return subtotal.Add(fee)
}

// ResolveShippingFee returns the effective fee for the selected option.
// When threshold is non-nil and subtotal >= threshold the fee is zero; the
// comparison is inclusive, a cart sitting exactly at the threshold ships
// free.
func ResolveShippingFee(option domain.ShippingOption, subtotal decimal.Decimal, threshold *decimal.Decimal) decimal.Decimal {
	if threshold != nil && subtotal.GreaterThanOrEqual(*threshold) {
		return decimal.Zero
	}
	return option.Price
}

// ComputeMRP derives the listed price from the trade price and markup:
// tp * (1 + pct/100) for percent markups, tp * value for multipliers. An
// unknown markup kind yields the trade price unchanged.
func ComputeMRP(tradePrice decimal.Decimal, kind domain.MarkupKind, value decimal.Decimal) decimal.Decimal {
	switch kind {
	case domain.MarkupPercent:
		return tradePrice.Mul(decimal.NewFromInt(1).Add(value.Div(decimal.NewFromInt(100))))
	case domain.MarkupMultiplier:
		return tradePrice.Mul(value)
	}
	return tradePrice
}

// Recalculate fills the derived MRP and DiscountedPrice fields of p from its
// trade price, markup, and discount amount. The discounted price is MRP
// minus discount with no floor; a discount larger than the MRP goes
// negative, which the caller reports to the operator instead of clamping.
func Recalculate(p domain.VariantPricing) domain.VariantPricing {
	p.MRP = ComputeMRP(p.TradePrice, p.MarkupKind, p.MarkupValue)
	p.DiscountedPrice = p.MRP.Sub(p.DiscountAmount)
	return p
}
