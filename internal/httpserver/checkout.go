package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shei-hoise-api/internal/checkout"
	"shei-hoise-api/internal/domain"
	ordersvc "shei-hoise-api/internal/service/order"
)

func getDraftHandler(drafts checkout.DraftStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := drafts.LoadDraft(c.Request.Context(), currentSession(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		if form == nil {
			c.JSON(http.StatusOK, gin.H{"draft": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": form})
	}
}

func saveDraftHandler(drafts checkout.DraftStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form checkout.Form
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if err := drafts.SaveDraft(c.Request.Context(), currentSession(c), form); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"draft": form})
	}
}

type submitRequest struct {
	Form           checkout.Form `json:"form"`
	ShippingMethod string        `json:"shippingMethod"`
}

// submitOrderHandler places an order for the session's cart in the current
// store. Field-level form errors come back as 422 with the error map; the
// cart is untouched on every failure path.
func submitOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		order, err := svc.Submit(c.Request.Context(), ordersvc.SubmitInput{
			SessionID:      currentSession(c),
			StoreSlug:      currentStore(c).Slug,
			Form:           req.Form,
			ShippingMethod: req.ShippingMethod,
		})
		if err != nil {
			var verr *ordersvc.ValidationError
			switch {
			case errors.As(err, &verr):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "checkout form invalid", "errors": verr.Result.Errors})
			case errors.Is(err, ordersvc.ErrEmptyCart):
				c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "store not found"})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"message": "order could not be placed, please try again"})
			}
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
