package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/subtrack/pkg/tool"
)

const HeaderRequestID = "X-Request-ID"

// TraceMiddleware stores the request's trace id under "traceID" in both the
// gin context and the request context. Clients may supply one via
// X-Request-ID; otherwise a UUIDv7 is generated.
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(HeaderRequestID)
		if traceID == "" {
			traceID = tool.GenerateUUIDV7()
		}
		c.Set("traceID", traceID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), "traceID", traceID))
		c.Next()
	}
}
