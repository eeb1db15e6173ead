package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"demo-user-service/pkg/logger"
)

// HeaderRequestID is the request id header propagated to clients.
const HeaderRequestID = "X-Request-ID"

// RequestID assigns each request a unique id, reusing an inbound one when
// present, and plants it in both the response header and the request context
// so downstream logs can carry it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Writer.Header().Set(HeaderRequestID, rid)
		c.Set(HeaderRequestID, rid)

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, rid)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
