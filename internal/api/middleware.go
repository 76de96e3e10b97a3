package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/juslaw/forum/pkg/telemetry"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID tags every request with an ID for log correlation. An ID
// supplied by the caller is kept so IDs stay stable across services.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// Trace opens a span spanning the whole request
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Request.Method + " " + c.FullPath()
		ctx, span := telemetry.StartSpan(c.Request.Context(), name)
		defer span.End()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
