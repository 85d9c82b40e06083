package host_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/buildwithgo/radioitems/host"
)

func TestStatic(t *testing.T) {
	app := host.New()
	app.Static("/assets", fstest.MapFS{
		"radioitems.js":     &fstest.MapFile{Data: []byte("export default {}")},
		"client/index.html": &fstest.MapFile{Data: []byte("<div id=root></div>")},
	})

	t.Run("ServeFile", func(t *testing.T) {
		w := app.Test(httptest.NewRequest(http.MethodGet, "/assets/radioitems.js", nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if w.Body.String() != "export default {}" {
			t.Errorf("Unexpected body %q", w.Body.String())
		}
	})

	t.Run("DirectoryIndex", func(t *testing.T) {
		w := app.Test(httptest.NewRequest(http.MethodGet, "/assets/client/", nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if w.Body.String() != "<div id=root></div>" {
			t.Errorf("Unexpected body %q", w.Body.String())
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		for _, p := range []string{"/assets/missing.js", "/assets/", "/assets/../go.mod"} {
			w := app.Test(httptest.NewRequest(http.MethodGet, p, nil))
			if w.Code != http.StatusNotFound {
				t.Errorf("%s: expected 404, got %d", p, w.Code)
			}
		}
	})
}
