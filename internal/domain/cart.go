package domain

import "github.com/shopspring/decimal"

// CartItem is one line in a session's cart ledger. The tuple
// (ProductID, VariantID, StoreSlug) identifies a line; VariantID is empty
// for the base product. Quantity is always >= 1, removal is a separate
// operation.
type CartItem struct {
	ProductID string          `json:"productId"`
	VariantID string          `json:"variantId,omitempty"`
	StoreSlug string          `json:"storeSlug"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Meta      CartItemMeta    `json:"meta"`
}

// CartItemMeta is display-only metadata carried for rendering. It never
// participates in pricing.
type CartItemMeta struct {
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Category string `json:"category,omitempty"`
	Variant  string `json:"variant,omitempty"`
}

// LineTotal is UnitPrice * Quantity, exact.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
