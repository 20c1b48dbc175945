package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shei-hoise-api/internal/cart"
	"shei-hoise-api/internal/domain"
	storesvc "shei-hoise-api/internal/service/store"
	"shei-hoise-api/internal/shipping"
)

type shippingResponse struct {
	Options []domain.ShippingOption `json:"options"`
	Quote   *shipping.Quote         `json:"quote,omitempty"`
}

// shippingHandler returns the store's selectable options and, when the
// caller carries a session with items for this store, the fee quote for the
// current subtotal. ?method= picks an option; otherwise the store default
// applies.
func shippingHandler(stores *storesvc.Service, carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := currentStore(c).Slug
		selector := shipping.NewSelector(slug, stores)
		if err := selector.Refresh(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"message": "shipping configuration unavailable"})
			return
		}

		subtotal := decimal.Zero
		if sessionID := c.GetHeader(sessionHeader); sessionID != "" {
			subtotal = carts.Ledger(c.Request.Context(), sessionID).TotalPriceByStore(slug)
		}
		selector.SetSubtotal(subtotal)

		if method := c.Query("method"); method != "" {
			if err := selector.Select(method); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
				return
			}
		}

		resp := shippingResponse{Options: selector.Options()}
		quote, err := selector.Quote()
		switch {
		case err == nil:
			resp.Quote = &quote
		case errors.Is(err, shipping.ErrNoOptions):
			// A store with no shipping configured still renders checkout.
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
