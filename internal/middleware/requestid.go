// Package middleware holds the gin middlewares shared by all routes:
// request identification and per-client rate limiting.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request a UUID (or adopts the caller's), echoes it
// in the response header and binds a request-scoped logger into the request
// context. Downstream code pulls the logger from the context instead of
// relying on ambient state.
func RequestID(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		reqLogger := logger.With().Str("request_id", id).Logger()
		ctx := reqLogger.WithContext(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
