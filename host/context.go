package host

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Context carries the request and response of one call through the handler chain.
type Context struct {
	Request *http.Request
	Writer  http.ResponseWriter
	store   map[string]any
}

// NewContext creates a new context for the request
func NewContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{
		Request: r,
		Writer:  w,
	}
}

// Reset prepares a pooled context for a new request.
func (c *Context) Reset(w http.ResponseWriter, r *http.Request) {
	c.Request = r
	c.Writer = w
	clear(c.store)
}

// Set stores a request scoped value.
func (c *Context) Set(key string, value any) {
	if c.store == nil {
		c.store = make(map[string]any)
	}
	c.store[key] = value
}

// Get returns a request scoped value.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.store[key]
	return v, ok
}

func (c *Context) GetHeader(key string) string {
	return c.Request.Header.Get(key)
}

func (c *Context) SetHeader(key, value string) {
	c.Writer.Header().Set(key, value)
}

// PathParam returns a named route parameter, e.g. id for /radio/{id}.
func (c *Context) PathParam(name string) string {
	return chi.URLParam(c.Request, name)
}

func (c *Context) QueryParam(name string) string {
	return c.Request.URL.Query().Get(name)
}

func (c *Context) FormValue(name string) string {
	return c.Request.FormValue(name)
}

func (c *Context) GetCookie(name string) (*http.Cookie, error) {
	return c.Request.Cookie(name)
}

// BindJSON decodes the request body into v.
func (c *Context) BindJSON(v any) error {
	if err := json.NewDecoder(c.Request.Body).Decode(v); err != nil {
		return NewHTTPError(http.StatusBadRequest, "invalid JSON body").SetInternal(err)
	}
	return nil
}

func (c *Context) String(code int, s string) error {
	c.SetHeader("Content-Type", "text/plain; charset=utf-8")
	c.Writer.WriteHeader(code)
	_, err := c.Writer.Write([]byte(s))
	return err
}

func (c *Context) HTML(code int, s string) error {
	c.SetHeader("Content-Type", "text/html; charset=utf-8")
	c.Writer.WriteHeader(code)
	_, err := c.Writer.Write([]byte(s))
	return err
}

func (c *Context) JSON(code int, v any) error {
	c.SetHeader("Content-Type", "application/json")
	c.Writer.WriteHeader(code)
	return json.NewEncoder(c.Writer).Encode(v)
}

func (c *Context) NoContent(code int) error {
	c.Writer.WriteHeader(code)
	return nil
}
