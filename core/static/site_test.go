package static_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/staticd/core/handler"
	"github.com/dmitrymomot/staticd/core/logger"
	"github.com/dmitrymomot/staticd/core/static"
)

const (
	indexContent    = `<!DOCTYPE html><html><body><div id="app"></div></body></html>`
	notFoundContent = `<!DOCTYPE html><html><body>custom not found</body></html>`
)

// writeTree creates files relative to root, making parent directories as needed.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func newSite(t *testing.T, root string, opts ...static.SiteOption) http.Handler {
	t.Helper()
	return handler.Serve(static.Site[*handler.BaseContext](root, opts...))
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestSiteServesFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	files := map[string]string{
		"index.html":          indexContent,
		"app.js":              "console.log('app')",
		"styles/main.css":     "body { margin: 0 }",
		"data.json":           `{"ok":true}`,
		"assets/logo.PNG":     "\x89PNG\r\n\x1a\nbinary",
		"fonts/inter.woff2":   "woff2 data",
		"downloads/notes.txt": "plain notes",
		"my file.svg":         "<svg/>",
	}
	writeTree(t, root, files)
	h := newSite(t, root)

	tests := []struct {
		target      string
		file        string
		contentType string
	}{
		{"/index.html", "index.html", "text/html"},
		{"/app.js", "app.js", "text/javascript"},
		{"/styles/main.css", "styles/main.css", "text/css"},
		{"/data.json", "data.json", "application/json"},
		{"/assets/logo.PNG", "assets/logo.PNG", "image/png"},
		{"/fonts/inter.woff2", "fonts/inter.woff2", "font/woff2"},
		{"/downloads/notes.txt", "downloads/notes.txt", "application/octet-stream"},
		{"/my%20file.svg", "my file.svg", "image/svg+xml"},
		{"/app.js?v=123", "app.js", "text/javascript"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()

			w := get(t, h, tt.target)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Equal(t, files[tt.file], w.Body.String())
		})
	}
}

func TestSiteRootAlias(t *testing.T) {
	t.Parallel()

	t.Run("slash equals index", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, map[string]string{"index.html": indexContent})
		h := newSite(t, root)

		slash := get(t, h, "/")
		index := get(t, h, "/index.html")

		assert.Equal(t, http.StatusOK, slash.Code)
		assert.Equal(t, index.Code, slash.Code)
		assert.Equal(t, index.Header(), slash.Header())
		assert.Equal(t, index.Body.String(), slash.Body.String())
	})

	t.Run("custom index file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, map[string]string{"app.html": "app shell"})
		h := newSite(t, root, static.WithIndexFile("app.html"))

		w := get(t, h, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "app shell", w.Body.String())

		w = get(t, h, "/some/route")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "app shell", w.Body.String())
	})

	t.Run("missing index falls to not found page", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, map[string]string{"404.html": notFoundContent})
		h := newSite(t, root)

		w := get(t, h, "/")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, notFoundContent, w.Body.String())
	})
}

func TestSiteRejectsTraversal(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	root := filepath.Join(parent, "www")
	writeTree(t, parent, map[string]string{
		"www/index.html":        indexContent,
		"secret.txt":            "top secret",
		"wwwevil/leak.txt":      "sibling secret",
		"www/assets/public.txt": "public",
	})
	h := newSite(t, root)

	targets := []string{
		"/../secret.txt",
		"/../../etc/passwd",
		"/assets/../../secret.txt",
		"/%2e%2e%2fsecret.txt",
		"/%2e%2e%2f%2e%2e%2fetc%2fpasswd",
		"/%2E%2E/secret.txt",
		"/..%2fwwwevil%2fleak.txt",
		"/../wwwevil/leak.txt",
		"/index.html%00.png",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			t.Parallel()

			w := get(t, h, target)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
			assert.Equal(t, "Forbidden: Invalid path", w.Body.String())
		})
	}
}

func TestSiteRejectsMalformedEscapes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.html": indexContent})
	h := newSite(t, root)

	// net/http refuses these targets before any handler runs, so the raw
	// request line is set directly.
	for _, raw := range []string{"/%zz", "/file%2", "/%"} {
		t.Run(raw, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RequestURI = raw
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, "Forbidden: Invalid path", w.Body.String())
		})
	}
}

func TestSiteFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		files      map[string]string
		target     string
		wantStatus int
		wantBody   string
		wantType   string
	}{
		{
			name:       "route served by index",
			files:      map[string]string{"index.html": indexContent, "404.html": notFoundContent},
			target:     "/dashboard/settings",
			wantStatus: http.StatusOK,
			wantBody:   indexContent,
			wantType:   "text/html",
		},
		{
			name:       "route with trailing slash served by index",
			files:      map[string]string{"index.html": indexContent},
			target:     "/users/",
			wantStatus: http.StatusOK,
			wantBody:   indexContent,
			wantType:   "text/html",
		},
		{
			name:       "route under dotted directory served by index",
			files:      map[string]string{"index.html": indexContent},
			target:     "/v1.2/changelog",
			wantStatus: http.StatusOK,
			wantBody:   indexContent,
			wantType:   "text/html",
		},
		{
			name:       "route without index gets generic page",
			files:      map[string]string{"404.html": notFoundContent},
			target:     "/dashboard",
			wantStatus: http.StatusNotFound,
			wantBody:   static.GenericNotFoundHTML,
			wantType:   "text/html",
		},
		{
			name:       "missing asset gets custom 404",
			files:      map[string]string{"index.html": indexContent, "404.html": notFoundContent},
			target:     "/missing.js",
			wantStatus: http.StatusNotFound,
			wantBody:   notFoundContent,
			wantType:   "text/html",
		},
		{
			name:       "missing asset never gets index",
			files:      map[string]string{"index.html": indexContent},
			target:     "/assets/missing.png",
			wantStatus: http.StatusNotFound,
			wantBody:   static.GenericNotFoundHTML,
			wantType:   "text/html",
		},
		{
			name:       "empty root",
			files:      map[string]string{},
			target:     "/missing.css",
			wantStatus: http.StatusNotFound,
			wantBody:   static.GenericNotFoundHTML,
			wantType:   "text/html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			writeTree(t, root, tt.files)

			w := get(t, newSite(t, root), tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantType, w.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestSiteCustomNotFoundOptions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"errors/missing.html": "moved 404"})

	page := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>nothing here</p>")
		return err
	})

	t.Run("not found file", func(t *testing.T) {
		t.Parallel()

		w := get(t, newSite(t, root, static.WithNotFoundFile("errors/missing.html")), "/x.css")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "moved 404", w.Body.String())
	})

	t.Run("generic page component", func(t *testing.T) {
		t.Parallel()

		w := get(t, newSite(t, root, static.WithNotFoundPage(page)), "/route")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "text/html", w.Header().Get("Content-Type"))
		assert.Equal(t, "<p>nothing here</p>", w.Body.String())
	})
}

func TestSiteMethodNotAllowed(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.html": indexContent})
	h := newSite(t, root)

	methods := []string{
		http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodOptions, "PROPFIND",
	}
	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(method, "/index.html", nil))

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
			if method != http.MethodHead {
				assert.Equal(t, "Method Not Allowed", w.Body.String())
			}
		})
	}
}

func TestSiteReadFailures(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.html":        indexContent,
		"404.html":          notFoundContent,
		"assets/a.css":      "a",
		"docs.v2/guide.txt": "guide",
	})
	h := newSite(t, root)

	for _, target := range []string{"/assets", "/assets/", "/docs.v2", "/index.html/extra"} {
		t.Run(target, func(t *testing.T) {
			t.Parallel()

			w := get(t, h, target)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
			assert.Equal(t, "Internal Server Error", w.Body.String())
		})
	}
}

func TestSiteUnreadableFiles(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	t.Parallel()

	t.Run("primary file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, map[string]string{"index.html": indexContent, "secret.txt": "secret"})
		require.NoError(t, os.Chmod(filepath.Join(root, "secret.txt"), 0o000))

		var logs bytes.Buffer
		h := newSite(t, root, static.WithLogger(logger.New(logger.WithOutput(&logs))))

		w := get(t, h, "/secret.txt")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
		assert.Equal(t, "Internal Server Error", w.Body.String())
		assert.Contains(t, logs.String(), "failed to read file")
		assert.Contains(t, logs.String(), "permission denied")
	})

	t.Run("not found page", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, map[string]string{"index.html": indexContent, "404.html": notFoundContent})
		require.NoError(t, os.Chmod(filepath.Join(root, "404.html"), 0o000))

		var logs bytes.Buffer
		h := newSite(t, root, static.WithLogger(logger.New(logger.WithOutput(&logs))))

		w := get(t, h, "/missing.png")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "text/html", w.Header().Get("Content-Type"))
		assert.Equal(t, static.GenericNotFoundHTML, w.Body.String())
		assert.Contains(t, logs.String(), "failed to read fallback file")
	})
}

func TestSiteIsIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"index.html": indexContent, "app.js": "js"})
	h := newSite(t, root)

	for _, target := range []string{"/", "/app.js", "/route", "/nope.png", "/../x", "/assets"} {
		first := get(t, h, target)
		second := get(t, h, target)

		assert.Equal(t, first.Code, second.Code, target)
		assert.Equal(t, first.Header(), second.Header(), target)
		assert.Equal(t, first.Body.Bytes(), second.Body.Bytes(), target)
	}
}

func TestSitePanicsOnInvalidRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.Panics(t, func() { static.Site[*handler.BaseContext](filepath.Join(dir, "missing")) })
	assert.Panics(t, func() { static.Site[*handler.BaseContext](file) })
	assert.Panics(t, func() { static.Site[*handler.BaseContext]("") })
}
