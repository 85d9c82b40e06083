package middlewares

import (
	"html/template"
	"net/http"
	"runtime"
	"strings"

	"github.com/rs/zerolog"

	"github.com/buildwithgo/radioitems/host"
)

// RecoveryOption configures the Recovery middleware.
type RecoveryOption func(*recoveryConfig)

type recoveryConfig struct {
	htmlDebug bool
	logger    zerolog.Logger
}

// WithHTMLDebug enables rendering an HTML debug page for panics.
// WARNING: Do not use this in production as it exposes stack traces.
func WithHTMLDebug(enabled bool) RecoveryOption {
	return func(c *recoveryConfig) {
		c.htmlDebug = enabled
	}
}

// WithLogger sets where recovered panics are reported.
func WithLogger(logger zerolog.Logger) RecoveryOption {
	return func(c *recoveryConfig) {
		c.logger = logger
	}
}

// Recovery recovers from panics, logs the stack trace, and returns an Internal Server Error.
func Recovery(opts ...RecoveryOption) host.Middleware {
	cfg := &recoveryConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next host.Handler) host.Handler {
		return func(c *host.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := make([]byte, 4096)
					n := runtime.Stack(stack, false)
					stackTrace := string(stack[:n])

					cfg.logger.Error().
						Interface("panic", r).
						Str("stack", stackTrace).
						Msg("recovered from panic")

					if cfg.htmlDebug {
						err = c.HTML(http.StatusInternalServerError, renderDebugPage(r, stackTrace))
					} else {
						err = c.String(http.StatusInternalServerError, "Internal Server Error")
					}
				}
			}()
			return next(c)
		}
	}
}

var debugPage = template.Must(template.New("debug").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Internal Server Error</title>
    <style>
        body { font-family: sans-serif; background-color: #f8f9fa; color: #212529; margin: 0; padding: 2rem; }
        h1 { color: #dc3545; }
        pre { background: #212529; color: #f8f9fa; padding: 1rem; overflow-x: auto; }
    </style>
</head>
<body>
    <h1>Internal Server Error</h1>
    <p>Panic: {{.Error}}</p>
    <pre>{{.Stack}}</pre>
</body>
</html>
`))

func renderDebugPage(err interface{}, stack string) string {
	data := struct {
		Error interface{}
		Stack string
	}{
		Error: err,
		Stack: stack,
	}

	var buf strings.Builder
	if execErr := debugPage.Execute(&buf, data); execErr != nil {
		return "Internal Server Error (Failed to execute debug template)"
	}
	return buf.String()
}
