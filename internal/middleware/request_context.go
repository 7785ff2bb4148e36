package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDKey = "RequestID"

// NewRequestContextMiddleware injects a request id into the user context and
// echoes it on the response, honoring an inbound X-Request-ID when present.
func NewRequestContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := strings.TrimSpace(c.Get("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.New().String()
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		userCtx = context.WithValue(userCtx, requestIDKey, requestID)
		c.SetUserContext(userCtx)
		c.Set("X-Request-ID", requestID)
		return c.Next()
	}
}

// RequestID returns the request id carried by ctx, or empty.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
