// Package host is the HTTP layer that serves RadioGroup widgets: a small
// handler/middleware framework with pooled request contexts, routed by chi.
package host

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Handler is a function that handles an HTTP request.
// It returns an error which can be handled by middlewares or the framework.
type Handler func(*Context) error

// Middleware is a function that wraps a Handler to provide additional functionality.
type Middleware func(next Handler) Handler

// ErrorHandler renders an error returned from a handler chain.
type ErrorHandler func(c *Context, err error, code int)

// App holds the router, global middlewares, and a context pool.
type App struct {
	mux          *chi.Mux
	middlewares  []Middleware
	errorHandler ErrorHandler
	pool         *sync.Pool
}

// AppOption defines a function to configure the App during initialization.
type AppOption func(*App)

// WithErrorHandler replaces the default plain text error rendering.
func WithErrorHandler(h ErrorHandler) AppOption {
	return func(app *App) {
		app.errorHandler = h
	}
}

// New creates a new App with optional configuration.
func New(options ...AppOption) *App {
	app := &App{
		mux:          chi.NewRouter(),
		middlewares:  make([]Middleware, 0),
		errorHandler: defaultErrorHandler,
		pool: &sync.Pool{
			New: func() interface{} {
				return NewContext(nil, nil)
			},
		},
	}

	for _, option := range options {
		option(app)
	}

	app.mux.NotFound(app.wrap(func(c *Context) error {
		return NewHTTPError(http.StatusNotFound, "404 page not found")
	}))
	app.mux.MethodNotAllowed(app.wrap(func(c *Context) error {
		return NewHTTPError(http.StatusMethodNotAllowed)
	}))

	return app
}

// Use adds a global middleware to the application.
// Global middlewares are applied to all routes in the order they are added.
func (a *App) Use(middleware Middleware) {
	a.middlewares = append(a.middlewares, middleware)
}

// GET registers a new GET route with a handler and optional route-specific middlewares.
func (a *App) GET(path string, handler Handler, middlewares ...Middleware) {
	a.Add(http.MethodGet, path, handler, middlewares...)
}

func (a *App) POST(path string, handler Handler, middlewares ...Middleware) {
	a.Add(http.MethodPost, path, handler, middlewares...)
}

func (a *App) PUT(path string, handler Handler, middlewares ...Middleware) {
	a.Add(http.MethodPut, path, handler, middlewares...)
}

// Add registers a new route with the specified method, path, handler, and middlewares.
// Route middlewares run inside the global ones.
func (a *App) Add(method, path string, handler Handler, middlewares ...Middleware) {
	a.mux.Method(method, path, a.wrap(Compile(handler, middlewares...)))
}

// Group returns a route group sharing prefix.
func (a *App) Group(prefix string) *Group {
	return NewGroup(prefix, a)
}

func (a *App) Run(addr string) error {
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return http.ListenAndServe(addr, a)
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Test serves req and returns the recorded response.
func (a *App) Test(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.ServeHTTP(w, req)
	return w
}

func (a *App) wrap(handler Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := a.pool.Get().(*Context)
		ctx.Reset(w, r)
		defer a.pool.Put(ctx)

		// global middlewares are compiled per request so Use after route
		// registration still applies
		if err := Compile(handler, a.middlewares...)(ctx); err != nil {
			code := http.StatusInternalServerError
			var he *HTTPError
			if errors.As(err, &he) {
				code = he.Code
			}
			a.errorHandler(ctx, err, code)
		}
	}
}

func defaultErrorHandler(c *Context, err error, code int) {
	msg := err.Error()
	var he *HTTPError
	if errors.As(err, &he) {
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	http.Error(c.Writer, msg, code)
}

func Compile(handler Handler, middlewares ...Middleware) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
