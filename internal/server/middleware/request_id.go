package middleware

import (
	"github.com/gin-gonic/gin"

	"revcast/internal/pkg/id"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns a request id, honoring one supplied by the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = id.New()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}
