package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shei-hoise-api/internal/domain"
)

type ctxKey string

const storeCtxKey ctxKey = "store"

type storeResolver interface {
	Store(ctx context.Context, slug string) (*domain.Store, error)
}

// storeMiddleware resolves :storeSlug to a store and stashes it in the
// request context. Unknown slugs get a 404 before any handler runs.
func storeMiddleware(resolver storeResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := strings.TrimSpace(c.Param("storeSlug"))
		if slug == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "store slug required"})
			return
		}
		store, err := resolver.Store(c.Request.Context(), slug)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "store not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), storeCtxKey, store)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// currentStore returns the store placed in the context by storeMiddleware.
func currentStore(c *gin.Context) *domain.Store {
	store, _ := c.Request.Context().Value(storeCtxKey).(*domain.Store)
	return store
}
