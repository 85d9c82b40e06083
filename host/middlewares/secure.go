package middlewares

import (
	"strconv"

	"github.com/buildwithgo/radioitems/host"
)

type SecureConfig struct {
	ContentTypeOptions string

	// FrameOptions is left empty by callers that embed widgets in iframes
	// served from another origin.
	FrameOptions          string
	ReferrerPolicy        string
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
}

func DefaultSecureConfig() SecureConfig {
	return SecureConfig{
		ContentTypeOptions: "nosniff",
		FrameOptions:       "SAMEORIGIN",
		ReferrerPolicy:     "same-origin",
		HSTSMaxAge:         31536000,
	}
}

// Secure adds security headers to the response. HSTS is only sent on TLS
// requests or behind a proxy reporting https.
func Secure(config ...SecureConfig) host.Middleware {
	cfg := DefaultSecureConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(next host.Handler) host.Handler {
		return func(c *host.Context) error {
			h := c.Writer.Header()
			if cfg.ContentTypeOptions != "" {
				h.Set("X-Content-Type-Options", cfg.ContentTypeOptions)
			}
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}

			if cfg.HSTSMaxAge > 0 && (c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https") {
				val := "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
				if cfg.HSTSIncludeSubdomains {
					val += "; includeSubDomains"
				}
				h.Set("Strict-Transport-Security", val)
			}
			return next(c)
		}
	}
}
