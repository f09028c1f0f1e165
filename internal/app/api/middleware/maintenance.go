package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/subtrack/pkg/response"
)

// MaintenanceChecker reports whether maintenance mode is on.
type MaintenanceChecker interface {
	IsActive(ctx context.Context) bool
}

// MaintenanceMiddleware rejects requests with 503 while maintenance mode is on.
// Paths under any of the exempt prefixes always pass.
func MaintenanceMiddleware(checker MaintenanceChecker, exemptPrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range exemptPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				c.Next()
				return
			}
		}
		if checker.IsActive(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.ErrorT[any](response.APIResponseCodeMaintenance, nil))
			return
		}
		c.Next()
	}
}
