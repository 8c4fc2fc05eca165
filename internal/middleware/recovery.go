package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"project-config-api/internal/response"
)

// Recovery turns a panicking handler into a 500 INTERNAL_ERROR envelope
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := []zap.Field{
				zap.String("request_id", c.GetString("request_id")),
				zap.String("panic_type", fmt.Sprintf("%T", rec)),
				zap.Any("panic", rec),
				zap.String("route", c.FullPath()),
				zap.String("method", c.Request.Method),
				zap.Stack("stacktrace"),
			}
			if id := c.Param("configurationId"); id != "" {
				fields = append(fields, zap.String("configuration_id", id))
			}
			logger.Error("Panic recovered", fields...)

			// a partly written body cannot be replaced
			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
			c.Abort()
		}()

		c.Next()
	}
}
