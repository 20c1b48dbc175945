package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shei-hoise-api/internal/domain"
	ordersvc "shei-hoise-api/internal/service/order"
)

func listOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context(), currentStore(c).Slug)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"results": orders, "count": len(orders)})
	}
}

func getOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), currentStore(c).Slug, c.Param("orderId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type bulkStatusRequest struct {
	OrderIDs []string           `json:"orderIds" binding:"required"`
	Status   domain.OrderStatus `json:"status" binding:"required"`
}

// bulkStatusHandler applies one status to many orders at once. Ids that do
// not belong to this store come back in "missing" rather than failing the
// whole batch.
func bulkStatusHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bulkStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		res, err := svc.UpdateStatusBulk(c.Request.Context(), currentStore(c).Slug, req.OrderIDs, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidStatus):
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "store not found"})
			case err.Error() == "orderIds required":
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			}
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
