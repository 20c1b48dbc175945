package httpserver

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"shei-hoise-api/internal/cart"
	"shei-hoise-api/internal/checkout"
	"shei-hoise-api/internal/metrics"
	ordersvc "shei-hoise-api/internal/service/order"
	productsvc "shei-hoise-api/internal/service/product"
	storesvc "shei-hoise-api/internal/service/store"
)

// Deps holds everything the handlers need.
type Deps struct {
	StoreSvc   *storesvc.Service
	ProductSvc *productsvc.Service
	OrderSvc   *ordersvc.Service
	Carts      *cart.Manager
	Drafts     checkout.DraftStorage
	Metrics    *metrics.Metrics
	MetricsH   http.Handler
}

// buildRouter wires the storefront routes. Every store-facing route lives
// under /stores/:storeSlug and passes through storeMiddleware; cart and
// checkout routes additionally carry the session.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", sessionHeader},
		ExposeHeaders:   []string{sessionHeader},
		MaxAge:          12 * time.Hour,
	}))
	if deps.Metrics != nil {
		router.Use(metricsMiddleware(deps.Metrics))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	if deps.MetricsH != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsH))
	}

	stores := router.Group("/stores/:storeSlug")
	stores.Use(storeMiddleware(deps.StoreSvc))
	{
		stores.GET("", storeHandler)
		stores.GET("/products", listProductsHandler(deps.ProductSvc))
		stores.GET("/products/:productId", getProductHandler(deps.ProductSvc))
		stores.PUT("/products/:productId/pricing", updatePricingHandler(deps.ProductSvc))
		stores.GET("/shipping", shippingHandler(deps.StoreSvc, deps.Carts))

		session := stores.Group("")
		session.Use(sessionMiddleware())
		{
			session.GET("/cart", getCartHandler(deps.Carts))
			session.POST("/cart/items", addCartItemHandler(deps.Carts))
			session.PUT("/cart/items", updateCartItemHandler(deps.Carts))
			session.DELETE("/cart/items", removeCartItemHandler(deps.Carts))
			session.DELETE("/cart", clearCartHandler(deps.Carts))

			session.GET("/checkout/draft", getDraftHandler(deps.Drafts))
			session.PUT("/checkout/draft", saveDraftHandler(deps.Drafts))
			session.POST("/checkout", submitOrderHandler(deps.OrderSvc))
		}

		stores.GET("/orders", listOrdersHandler(deps.OrderSvc))
		stores.GET("/orders/:orderId", getOrderHandler(deps.OrderSvc))
		stores.POST("/orders/status", bulkStatusHandler(deps.OrderSvc))
	}

	return router, nil
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

func storeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentStore(c))
}

func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.Requests.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}
