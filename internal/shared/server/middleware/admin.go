package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/auth"
	"portfolio-backend/internal/shared/server/respond"
)

const adminSubjectKey = "adminSubject"

// AdminAuth requires a valid Bearer token on every request it guards.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := auth.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token", nil)
			return
		}
		c.Set(adminSubjectKey, claims.Sub)
		c.Next()
	}
}

// AdminSubjectFromContext returns the authenticated admin subject, if any.
func AdminSubjectFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(adminSubjectKey)
}
