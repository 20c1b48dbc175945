package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Store struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
}

// ShippingOption is one deliverable method a store offers at checkout.
type ShippingOption struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description,omitempty"`
	EstimatedDays int             `json:"estimatedDays,omitempty"`
}

// StoreSettings carries the checkout configuration for one store.
// FreeShippingThreshold is nil when the store does not waive shipping.
type StoreSettings struct {
	StoreID               string           `json:"-"`
	ShippingOptions       []ShippingOption `json:"shippingFees"`
	FreeShippingThreshold *decimal.Decimal `json:"freeShippingThreshold,omitempty"`
}
