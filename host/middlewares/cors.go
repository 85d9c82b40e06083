package middlewares

import (
	"net/http"
	"slices"
	"strings"

	"github.com/buildwithgo/radioitems/host"
)

// CORSConfig defines the configuration for the CORS middleware.
type CORSConfig struct {
	// AllowOrigins is a list of origins a cross-domain request can be executed from.
	AllowOrigins []string
	AllowMethods []string
	// AllowHeaders includes the htmx request headers so a widget page served
	// from another origin can still post selections.
	AllowHeaders []string
	// ExposeHeaders lets clients read HX-Trigger from a cross-origin response.
	ExposeHeaders []string
}

// defaultAllowHeaders covers every request header htmx and Inertia send.
var defaultAllowHeaders = []string{
	"Origin", "Content-Type", "Authorization",
	"HX-Request", "HX-Trigger", "HX-Trigger-Name", "HX-Target", "HX-Current-URL", "HX-Boosted",
	"X-Inertia", "X-Inertia-Version",
}

func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:  slices.Clone(defaultAllowHeaders),
		ExposeHeaders: []string{"HX-Trigger", "X-Request-ID"},
	}
}

// CORS returns a Cross-Origin Resource Sharing middleware. Preflight requests
// are answered with 204 without reaching the handler.
func CORS(config ...CORSConfig) host.Middleware {
	cfg := DefaultCORSConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(next host.Handler) host.Handler {
		return func(c *host.Context) error {
			origin := c.GetHeader("Origin")
			allowOrigin := ""
			for _, o := range cfg.AllowOrigins {
				if o == "*" || o == origin {
					allowOrigin = o
					break
				}
			}

			if allowOrigin != "" {
				h := c.Writer.Header()
				h.Set("Access-Control-Allow-Origin", allowOrigin)
				h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ","))
				h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ","))
				if len(cfg.ExposeHeaders) > 0 {
					h.Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ","))
				}
				if allowOrigin != "*" {
					h.Add("Vary", "Origin")
				}
			}

			if c.Request.Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}
