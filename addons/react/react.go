// Package react serves widget props to a client side React renderer using
// the Inertia page protocol.
package react

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/buildwithgo/radioitems/host"
)

// Config holds the configuration for the React engine.
type Config struct {
	// ViteDevURL is the URL of the Vite dev server (e.g., "http://localhost:5173").
	// If set, scripts will be loaded from here.
	ViteDevURL string
	// Template is the HTML template for the root view. It receives Page
	// (the JSON payload), IsDev and Vite.
	Template *template.Template
	// Version is the asset version hash.
	Version string
}

// Engine manages the React integration.
type Engine struct {
	config Config
}

// New creates a new React engine.
func New(config Config) *Engine {
	if config.Template == nil {
		config.Template = defaultTemplate
	}
	return &Engine{config: config}
}

// Page represents the data sent to the client.
type Page struct {
	Component string `json:"component"`
	Props     any    `json:"props"`
	URL       string `json:"url"`
	Version   string `json:"version"`
}

// Is reports whether the request asks for the JSON page payload.
func Is(c *host.Context) bool {
	return c.GetHeader("X-Inertia") == "true"
}

// Render renders a React component.
// If the request is an X-Inertia request, it returns JSON.
// Otherwise, it returns the full HTML page with the component mounted.
func (e *Engine) Render(c *host.Context, component string, props any) error {
	page := Page{
		Component: component,
		Props:     props,
		URL:       c.Request.RequestURI,
		Version:   e.config.Version,
	}

	if Is(c) {
		c.SetHeader("X-Inertia", "true")
		c.SetHeader("Vary", "Accept")
		return c.JSON(http.StatusOK, page)
	}

	data, err := json.Marshal(page)
	if err != nil {
		return err
	}

	viewData := map[string]any{
		"Page":  string(data),
		"IsDev": e.config.ViteDevURL != "",
		"Vite":  e.config.ViteDevURL,
	}

	c.SetHeader("Content-Type", "text/html; charset=utf-8")
	return e.config.Template.Execute(c.Writer, viewData)
}

var defaultTemplate = template.Must(template.New("react").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    {{ if .IsDev }}
    <script type="module" src="{{ .Vite }}/@vite/client"></script>
    <script type="module" src="{{ .Vite }}/src/main.jsx"></script>
    {{ else }}
    <script type="module" src="/assets/index.js"></script>
    {{ end }}
</head>
<body>
    <div id="app" data-page="{{ .Page }}"></div>
</body>
</html>
`))
