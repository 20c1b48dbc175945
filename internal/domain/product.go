package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string                 `json:"id"`
	StoreID     string                 `json:"-"`
	Slug        string                 `json:"slug"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Category    string                 `json:"category,omitempty"`
	ImageURL    string                 `json:"imageUrl,omitempty"`
	Pricing     VariantPricing         `json:"pricing"`
	Variants    []Variant              `json:"variants,omitempty"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// Variant is a concrete sellable option of a product (size, color, ...).
type Variant struct {
	ID        string         `json:"id"`
	ProductID string         `json:"-"`
	Name      string         `json:"name"`
	Pricing   VariantPricing `json:"pricing"`
	CreatedAt time.Time      `json:"createdAt"`
}

// MarkupKind selects how MRP is derived from the trade price.
type MarkupKind string

const (
	MarkupPercent    MarkupKind = "percent"
	MarkupMultiplier MarkupKind = "multiplier"
)

// VariantPricing holds the trade price, the markup that derives the listed
// MRP from it, and the discount taken off the MRP. MRP and DiscountedPrice
// are stored denormalized so the storefront never recomputes them.
type VariantPricing struct {
	TradePrice      decimal.Decimal `json:"tradePrice"`
	MarkupKind      MarkupKind      `json:"markupKind"`
	MarkupValue     decimal.Decimal `json:"markupValue"`
	MRP             decimal.Decimal `json:"mrp"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
}
