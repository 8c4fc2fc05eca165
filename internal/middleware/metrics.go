package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"project-config-api/internal/metrics"
	"project-config-api/internal/response"
)

// Metrics records every request under its route pattern, plus the AppError code
// a handler attached to the context through c.Error
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.ShouldSkipEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))

		if last := c.Errors.Last(); last != nil {
			var appErr *response.AppError
			if errors.As(last.Err, &appErr) {
				m.RecordHTTPError(route, appErr.Code)
			}
		}
	}
}
