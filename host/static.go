package host

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

// StaticConfig defines configuration for serving static files, such as the
// built bundle of a client side widget renderer.
type StaticConfig struct {
	// Root is the filesystem to serve from.
	Root fs.FS

	// Prefix is the URL path prefix stripped before lookup.
	Prefix string

	// Index is the index file name (default: "index.html").
	Index string

	// ModifyResponse allows setting custom headers.
	ModifyResponse func(c *Context)
}

// StaticHandler creates a handler that serves files from config.Root.
// Directories serve their index file or 404.
func StaticHandler(config StaticConfig) Handler {
	if config.Index == "" {
		config.Index = "index.html"
	}
	if config.Prefix != "" {
		config.Prefix = "/" + strings.Trim(config.Prefix, "/")
	}

	return func(c *Context) error {
		if config.ModifyResponse != nil {
			config.ModifyResponse(c)
		}

		name := strings.TrimPrefix(c.Request.URL.Path, config.Prefix)
		name = strings.TrimPrefix(path.Clean("/"+name), "/")
		if name == "" {
			name = "."
		}

		stat, err := fs.Stat(config.Root, name)
		if errors.Is(err, fs.ErrNotExist) {
			return NewHTTPError(http.StatusNotFound, "File Not Found").SetInternal(err)
		}
		if err != nil {
			return err
		}
		if stat.IsDir() {
			name = path.Join(name, config.Index)
		}
		return serveFile(c, config.Root, name)
	}
}

// Static mounts StaticHandler for every path below prefix.
func (a *App) Static(prefix string, root fs.FS) {
	prefix = "/" + strings.Trim(prefix, "/")
	a.GET(prefix+"/*", StaticHandler(StaticConfig{Root: root, Prefix: prefix}))
}

func serveFile(c *Context, fsys fs.FS, name string) error {
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return NewHTTPError(http.StatusNotFound, "File Not Found").SetInternal(err)
	}
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}
	return serveContent(c, stat.Name(), stat.ModTime(), f)
}

func serveContent(c *Context, name string, modtime time.Time, content fs.File) error {
	rs, ok := content.(io.ReadSeeker)
	if !ok {
		return errors.New("file does not support seeking")
	}

	http.ServeContent(c.Writer, c.Request, name, modtime, rs)
	return nil
}
