package httpserver

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionHeader = "X-Session-ID"
	sessionKey    = "sessionID"
)

// sessionMiddleware reads the opaque session id the client carries, minting
// a fresh uuid when none is present. The id is echoed back so the client
// can persist it; it identifies the cart ledger and checkout draft, nothing
// more.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(sessionHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(sessionKey, id)
		c.Header(sessionHeader, id)
		c.Next()
	}
}

func currentSession(c *gin.Context) string {
	return c.GetString(sessionKey)
}
