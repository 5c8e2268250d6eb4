package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aakash-73/Se2-Project-v1/pkg/logger"
)

const requestIDKey = "request_id"

// requestIDMaxLen caps a client-supplied X-Request-ID before it reaches the logs
const requestIDMaxLen = 64

// RequestID reuses X-Request-ID when present, otherwise generates a UUID.
// The id is echoed back and carried on the request context so backend calls forward it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.NewString()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), rid))

		c.Next()
	}
}
