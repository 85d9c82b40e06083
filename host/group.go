package host

import (
	"net/http"
	"strings"
)

// Group registers routes under a shared prefix with shared middlewares.
type Group struct {
	prefix      string
	app         *App
	middlewares []Middleware
}

func NewGroup(prefix string, app *App) *Group {
	return &Group{
		prefix:      strings.TrimSuffix(prefix, "/"),
		app:         app,
		middlewares: make([]Middleware, 0),
	}
}

// Use adds a middleware to routes registered on the group afterwards.
func (g *Group) Use(middleware Middleware) {
	g.middlewares = append(g.middlewares, middleware)
}

func (g *Group) Add(method, path string, handler Handler, middlewares ...Middleware) {
	all := make([]Middleware, 0, len(g.middlewares)+len(middlewares))
	all = append(all, g.middlewares...)
	all = append(all, middlewares...)
	g.app.Add(method, g.prefix+path, handler, all...)
}

func (g *Group) GET(path string, handler Handler, middlewares ...Middleware) {
	g.Add(http.MethodGet, path, handler, middlewares...)
}

func (g *Group) POST(path string, handler Handler, middlewares ...Middleware) {
	g.Add(http.MethodPost, path, handler, middlewares...)
}

func (g *Group) PUT(path string, handler Handler, middlewares ...Middleware) {
	g.Add(http.MethodPut, path, handler, middlewares...)
}
