package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shei-hoise-api/internal/cart"
	"shei-hoise-api/internal/domain"
)

type cartResponse struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	// Totals across every store this session has a cart for.
	SessionItems int             `json:"sessionItems"`
	SessionTotal decimal.Decimal `json:"sessionTotal"`
}

func cartView(ledger *cart.Ledger, storeSlug string) cartResponse {
	items := ledger.ItemsByStore(storeSlug)
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{
		Items:        items,
		TotalItems:   ledger.TotalItemsByStore(storeSlug),
		Subtotal:     ledger.TotalPriceByStore(storeSlug),
		SessionItems: ledger.TotalItems(),
		SessionTotal: ledger.TotalPrice(),
	}
}

func getCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ledger := carts.Ledger(c.Request.Context(), currentSession(c))
		c.JSON(http.StatusOK, cartView(ledger, currentStore(c).Slug))
	}
}

type addItemRequest struct {
	ProductID string              `json:"productId" binding:"required"`
	VariantID string              `json:"variantId"`
	Quantity  int                 `json:"quantity"`
	UnitPrice decimal.Decimal     `json:"unitPrice"`
	Meta      domain.CartItemMeta `json:"meta"`
}

// addCartItemHandler adds to the session's cart for the current store.
// A quantity below 1 is a silent no-op, mirroring the ledger's contract, so
// the response is always the current cart state.
func addCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		ledger := carts.Ledger(c.Request.Context(), currentSession(c))
		ledger.Add(c.Request.Context(), domain.CartItem{
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			StoreSlug: currentStore(c).Slug,
			Quantity:  req.Quantity,
			UnitPrice: req.UnitPrice,
			Meta:      req.Meta,
		})
		c.JSON(http.StatusOK, cartView(ledger, currentStore(c).Slug))
	}
}

type updateItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

func updateCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		ledger := carts.Ledger(c.Request.Context(), currentSession(c))
		ledger.UpdateQuantity(c.Request.Context(), req.ProductID, req.VariantID, req.Quantity)
		c.JSON(http.StatusOK, cartView(ledger, currentStore(c).Slug))
	}
}

func removeCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Query("productId")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId required"})
			return
		}
		ledger := carts.Ledger(c.Request.Context(), currentSession(c))
		ledger.Remove(c.Request.Context(), productID, c.Query("variantId"))
		c.JSON(http.StatusOK, cartView(ledger, currentStore(c).Slug))
	}
}

// clearCartHandler empties the current store's portion of the session cart.
// With ?all=true the whole ledger goes, every store.
func clearCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ledger := carts.Ledger(c.Request.Context(), currentSession(c))
		if c.Query("all") == "true" {
			ledger.Clear(c.Request.Context())
		} else {
			ledger.ClearStore(c.Request.Context(), currentStore(c).Slug)
		}
		c.JSON(http.StatusOK, cartView(ledger, currentStore(c).Slug))
	}
}
