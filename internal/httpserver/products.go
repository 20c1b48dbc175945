package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shei-hoise-api/internal/domain"
	productsvc "shei-hoise-api/internal/service/product"
)

func listProductsHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context(), currentStore(c).ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"results": products, "count": len(products)})
	}
}

func getProductHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := svc.Get(c.Request.Context(), currentStore(c).ID, c.Param("productId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

type updatePricingRequest struct {
	VariantID string                  `json:"variantId"`
	Pricing   productsvc.PricingInput `json:"pricing"`
}

// updatePricingHandler recomputes and stores a variant's MRP and discounted
// price. The response carries a warning when the discount pushes the price
// negative; the value is stored as entered.
func updatePricingHandler(svc *productsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updatePricingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		update, err := svc.UpdateVariantPricing(c.Request.Context(), c.Param("productId"), req.VariantID, req.Pricing)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "variant not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, update)
	}
}
