package host_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buildwithgo/radioitems/host"
)

func TestBasicRouting(t *testing.T) {
	app := host.New()

	app.GET("/hello", func(c *host.Context) error {
		return c.String(http.StatusOK, "world")
	})

	app.GET("/radio/{id}", func(c *host.Context) error {
		return c.String(http.StatusOK, "radio "+c.PathParam("id"))
	})

	t.Run("Static", func(t *testing.T) {
		w := app.Test(httptest.NewRequest(http.MethodGet, "/hello", nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if w.Body.String() != "world" {
			t.Errorf("Expected 'world', got '%s'", w.Body.String())
		}
	})

	t.Run("Param", func(t *testing.T) {
		w := app.Test(httptest.NewRequest(http.MethodGet, "/radio/colors", nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if w.Body.String() != "radio colors" {
			t.Errorf("Expected 'radio colors', got '%s'", w.Body.String())
		}
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		w := app.Test(httptest.NewRequest(http.MethodPost, "/hello", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", w.Code)
		}
	})
}

func TestMiddlewareOrder(t *testing.T) {
	app := host.New()
	var trace []string
	mark := func(name string) host.Middleware {
		return func(next host.Handler) host.Handler {
			return func(c *host.Context) error {
				trace = append(trace, name)
				return next(c)
			}
		}
	}

	app.Use(mark("global"))
	g := app.Group("/api")
	g.Use(mark("group"))
	g.GET("/x", func(c *host.Context) error {
		trace = append(trace, "handler")
		return c.NoContent(http.StatusNoContent)
	}, mark("route"))

	w := app.Test(httptest.NewRequest(http.MethodGet, "/api/x", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}
	want := "global,group,route,handler"
	if got := strings.Join(trace, ","); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestContextStoreResetsBetweenRequests(t *testing.T) {
	app := host.New()
	app.GET("/set", func(c *host.Context) error {
		c.Set("k", "v")
		return c.NoContent(http.StatusOK)
	})
	app.GET("/get", func(c *host.Context) error {
		if _, ok := c.Get("k"); ok {
			return c.String(http.StatusOK, "leaked")
		}
		return c.String(http.StatusOK, "clean")
	})

	app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	w := app.Test(httptest.NewRequest(http.MethodGet, "/get", nil))
	if w.Body.String() != "clean" {
		t.Errorf("Expected a clean context, got %s", w.Body.String())
	}
}

func TestErrorHandler(t *testing.T) {
	t.Run("DefaultErrorHandler", func(t *testing.T) {
		app := host.New()

		w := app.Test(httptest.NewRequest(http.MethodGet, "/not-found", nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
		if w.Body.String() != "404 page not found\n" {
			t.Errorf("Expected default http.Error output, got '%s'", w.Body.String())
		}
	})

	t.Run("HTTPErrorCode", func(t *testing.T) {
		app := host.New()
		app.GET("/conflict", func(c *host.Context) error {
			return host.NewHTTPError(http.StatusConflict, "taken").SetInternal(errors.New("cause"))
		})

		w := app.Test(httptest.NewRequest(http.MethodGet, "/conflict", nil))
		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d", w.Code)
		}
		if w.Body.String() != "taken\n" {
			t.Errorf("Expected 'taken', got '%s'", w.Body.String())
		}
	})

	t.Run("CustomJSONHandler", func(t *testing.T) {
		type ErrorResponse struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
			Code    int    `json:"code"`
		}

		app := host.New(host.WithErrorHandler(func(c *host.Context, err error, code int) {
			_ = c.JSON(code, ErrorResponse{Error: err.Error(), Code: code})
		}))
		app.GET("/fail", func(c *host.Context) error {
			return errors.New("something went wrong")
		})

		w := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected application/json content type")
		}

		var resp ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp.Error != "something went wrong" || resp.Code != 500 {
			t.Errorf("Unexpected JSON response: %+v", resp)
		}
	})
}

func TestBindJSON(t *testing.T) {
	app := host.New()
	app.POST("/bind", func(c *host.Context) error {
		var body struct {
			Group string `json:"group"`
		}
		if err := c.BindJSON(&body); err != nil {
			return err
		}
		return c.String(http.StatusOK, body.Group)
	})

	w := app.Test(httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{"group":"color"}`)))
	if w.Body.String() != "color" {
		t.Errorf("Expected 'color', got '%s'", w.Body.String())
	}

	w = app.Test(httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(`{`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func BenchmarkParamRoute(b *testing.B) {
	app := host.New()
	app.GET("/radio/{id}", func(c *host.Context) error {
		_ = c.PathParam("id")
		return nil
	})

	req := httptest.NewRequest(http.MethodGet, "/radio/colors", nil)
	w := httptest.NewRecorder()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		app.ServeHTTP(w, req)
	}
}
