package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fashion-fuel/storefront-api/internal/httpx"
)

const SessionCookie = "ff_session"

// Session decodes the session cookie if present and stores uid/role on the
// context. It never rejects; RequireUser/RequireAdmin do that.
func Session(t *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err == nil && raw != "" {
			if claims, err := t.Parse(raw); err == nil {
				c.Set("uid", claims.UserID)
				c.Set("role", claims.Role)
			}
		}
		c.Next()
	}
}

func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("uid") == "" {
			httpx.Fail(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("uid") == "" {
			httpx.Fail(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		if c.GetString("role") != RoleAdmin {
			httpx.Fail(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
