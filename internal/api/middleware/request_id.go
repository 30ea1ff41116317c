package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sitelens/sitelens/internal/shared/id"
)

// RequestIDHeader carries the request identifier on both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a ULID unless the caller supplied
// one, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = id.NewRequestID().String()
		}
		c.Set("request_id", rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}
