package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags each request with an id, keeping the one the caller sent in
// X-Request-ID when present. Handlers and the access log read it from the
// context under "rid"; the response echoes it so storefront clients can quote
// it when reporting a failed checkout.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// Logger writes one access-log line per request after the handler chain ran.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[storefront] rid=%s %s %s status=%d dur=%s",
			c.GetString("rid"), c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}
