// Package server owns RadioGroup instances and exposes them over HTTP:
// htmx fragments for interaction, Inertia props for a React client, a JSON
// endpoint through which a controller overwrites values, and a websocket
// stream of notifications.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/buildwithgo/radioitems"
	"github.com/buildwithgo/radioitems/addons/htmx"
	"github.com/buildwithgo/radioitems/addons/react"
	"github.com/buildwithgo/radioitems/addons/websocket"
	"github.com/buildwithgo/radioitems/host"
	"github.com/buildwithgo/radioitems/host/middlewares"
)

// ComponentName is the client side component the React engine mounts.
const ComponentName = "RadioItemsList"

// EventNamespace prefixes events sent through HX-Trigger so they do not
// re-fire the inputs' own hx-trigger="change".
const EventNamespace = "radioitems:"

var (
	// ErrDuplicateWidget is returned by Register for an id already in use.
	ErrDuplicateWidget = errors.New("server: widget already registered")
	// ErrUnknownWidget is returned for an id nothing was registered under.
	ErrUnknownWidget = errors.New("server: unknown widget")
)

// Notification is what websocket subscribers of a widget receive.
type Notification struct {
	Type   string            `json:"type"`
	Widget string            `json:"widget"`
	Value  radioitems.Values `json:"value,omitempty"`
	Event  string            `json:"event,omitempty"`
}

// Notification types.
const (
	NotifyValue    = "value"    // a user selection, carries the full state
	NotifyEvent    = "event"    // the generic change event
	NotifyReceived = "received" // the controller overwrote the state
)

// Widget is one registered RadioGroup and its subscribers.
type Widget struct {
	*radioitems.RadioGroup
	hub *websocket.Hub
}

// Subscribers returns the number of open notification streams.
func (w *Widget) Subscribers() int {
	return w.hub.Len()
}

// Server is the registry of widgets and their routes.
type Server struct {
	prefix string
	secret string
	logger zerolog.Logger
	react  *react.Engine
	limit  host.Middleware

	mu      sync.RWMutex
	widgets map[string]*Widget
}

// Option configures a Server.
type Option func(*Server)

// WithPrefix sets the route prefix, "/radio" by default.
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		s.prefix = "/" + strings.Trim(prefix, "/")
	}
}

// WithJWTSecret protects PUT /{id}/values with HMAC signed bearer tokens.
func WithJWTSecret(secret string) Option {
	return func(s *Server) {
		s.secret = secret
	}
}

// WithLogger sets the server logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithReact answers X-Inertia requests with the widget props.
func WithReact(engine *react.Engine) Option {
	return func(s *Server) {
		s.react = engine
	}
}

// WithSelectLimit rate limits POST /{id}/select per client IP.
func WithSelectLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		s.limit = middlewares.RateLimiter(perSecond, burst)
	}
}

// New creates an empty Server.
func New(opts ...Option) *Server {
	s := &Server{
		prefix:  "/radio",
		logger:  zerolog.Nop(),
		widgets: make(map[string]*Widget),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a widget from props. An empty id gets a random one and
// an empty props.ID defaults to id. The caller's SetProps and FireEvent
// still run; the server adds its own notifications after them.
func (s *Server) Register(id string, props radioitems.Props) (*Widget, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if props.ID == "" {
		props.ID = id
	}
	if props.InputAttrs == nil {
		props.InputAttrs = htmx.InputAttrs(s.prefix + "/" + id + "/select")
	}

	w := &Widget{hub: websocket.NewHub()}
	setProps, fireEvent := props.SetProps, props.FireEvent

	props.SetProps = func(ctx context.Context, u radioitems.Update) {
		if setProps != nil {
			setProps(ctx, u)
		}
		s.logger.Debug().Str("widget", id).Interface("value", u.Value).Msg("value changed")
		s.notify(w, Notification{Type: NotifyValue, Widget: id, Value: u.Value})
	}
	props.FireEvent = func(ctx context.Context, e radioitems.Event) {
		if fireEvent != nil {
			fireEvent(ctx, e)
		}
		if c, ok := ctx.Value(requestKey{}).(*host.Context); ok && htmx.Is(c) {
			htmx.Trigger(c, EventNamespace+e.Event)
		}
		s.notify(w, Notification{Type: NotifyEvent, Widget: id, Event: e.Event})
	}
	w.RadioGroup = radioitems.New(props)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.widgets[id]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateWidget, id)
	}
	s.widgets[id] = w
	return w, nil
}

// Widget returns the widget registered under id.
func (s *Server) Widget(id string) (*Widget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.widgets[id]
	return w, ok
}

// IDs returns the registered widget ids in sorted order.
func (s *Server) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.widgets))
	for id := range s.widgets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Receive overwrites the values of widget id and notifies its subscribers.
func (s *Server) Receive(id string, values radioitems.Values) error {
	w, ok := s.Widget(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWidget, id)
	}
	w.Receive(values)
	s.logger.Debug().Str("widget", id).Interface("values", values).Msg("values received")
	s.notify(w, Notification{Type: NotifyReceived, Widget: id, Value: w.Values()})
	return nil
}

func (s *Server) notify(w *Widget, n Notification) {
	if err := w.hub.Broadcast(n); err != nil {
		s.logger.Error().Err(err).Str("widget", n.Widget).Str("type", n.Type).Msg("failed to broadcast notification")
	}
}

// Close disconnects every websocket subscriber.
func (s *Server) Close() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.widgets {
		w.hub.Close()
	}
}

// Mount registers the widget routes on app.
func (s *Server) Mount(app *host.App) {
	g := app.Group(s.prefix)

	g.GET("/{id}", s.show)
	if s.limit != nil {
		g.POST("/{id}/select", s.selectOption, s.limit)
	} else {
		g.POST("/{id}/select", s.selectOption)
	}
	g.GET("/{id}/values", s.values)
	if s.secret != "" {
		g.PUT("/{id}/values", s.receive, middlewares.JWT(middlewares.WithSecret(s.secret)))
	} else {
		g.PUT("/{id}/values", s.receive)
	}
	g.GET("/{id}/ws", s.stream)
}

type requestKey struct{}

func (s *Server) widget(c *host.Context) (*Widget, error) {
	w, ok := s.Widget(c.PathParam("id"))
	if !ok {
		return nil, host.NewHTTPError(http.StatusNotFound, "unknown widget").SetInternal(ErrUnknownWidget)
	}
	return w, nil
}
