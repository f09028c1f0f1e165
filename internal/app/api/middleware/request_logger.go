package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware attaches a logger carrying trace_id and the matched
// route to gin.Context and the request context, and echoes the trace id back.
func RequestLoggerMiddleware(base *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetString("traceID")

		reqLogger := base.With("trace_id", traceID, "route", c.FullPath())
		c.Set("logger", reqLogger)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), "logger", reqLogger))

		if traceID != "" {
			c.Writer.Header().Set(HeaderRequestID, traceID)
		}
		c.Next()
	}
}
