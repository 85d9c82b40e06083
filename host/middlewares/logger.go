package middlewares

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/buildwithgo/radioitems/host"
)

// Logger writes one structured line per request.
func Logger(logger zerolog.Logger) host.Middleware {
	return func(next host.Handler) host.Handler {
		return func(c *host.Context) error {
			start := time.Now()
			err := next(c)

			ev := logger.Info()
			if err != nil {
				ev = logger.Warn().Err(err)
			}
			if rid, ok := c.Get(RequestIDKey); ok {
				ev = ev.Interface("request_id", rid)
			}
			ev.Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("request")
			return err
		}
	}
}
