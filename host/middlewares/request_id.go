package middlewares

import (
	"github.com/google/uuid"

	"github.com/buildwithgo/radioitems/host"
)

const RequestIDKey = "request_id"

// RequestID adds an X-Request-ID header to the response and context.
func RequestID() host.Middleware {
	return func(next host.Handler) host.Handler {
		return func(c *host.Context) error {
			rid := c.Request.Header.Get("X-Request-ID")
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Writer.Header().Set("X-Request-ID", rid)
			c.Set(RequestIDKey, rid)
			return next(c)
		}
	}
}
