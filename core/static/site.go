package static

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/staticd/core/handler"
	"github.com/dmitrymomot/staticd/core/logger"
	"github.com/dmitrymomot/staticd/core/response"
)

// GenericNotFoundHTML is the body of the last-resort 404 response.
const GenericNotFoundHTML = `<html><body><h1>404 Not Found</h1><p>The requested file was not found.</p></body></html>`

// Responses with fixed plain-text bodies.
var (
	errMethodNotAllowed = response.ErrMethodNotAllowed.WithMessage("Method Not Allowed")
	errInvalidPath      = response.ErrForbidden.WithMessage("Forbidden: Invalid path")
	errInternal         = response.ErrInternalServerError.WithMessage("Internal Server Error")
)

// siteConfig holds configuration options for Site.
type siteConfig struct {
	indexFile    string
	notFoundFile string
	notFoundPage templ.Component
	logger       *slog.Logger
}

// SiteOption is a functional option type for configuring Site.
type SiteOption func(*siteConfig)

// WithIndexFile sets the SPA fallback file, also served for "/" (default: "index.html").
func WithIndexFile(name string) SiteOption {
	return func(c *siteConfig) {
		if name != "" {
			c.indexFile = name
		}
	}
}

// WithNotFoundFile sets the custom 404 page for missing assets (default: "404.html").
func WithNotFoundFile(name string) SiteOption {
	return func(c *siteConfig) {
		if name != "" {
			c.notFoundFile = name
		}
	}
}

// WithNotFoundPage replaces the built-in generic 404 body.
func WithNotFoundPage(page templ.Component) SiteOption {
	return func(c *siteConfig) {
		if page != nil {
			c.notFoundPage = page
		}
	}
}

// WithLogger sets the logger used for read failures and rejected paths.
func WithLogger(log *slog.Logger) SiteOption {
	return func(c *siteConfig) {
		if log != nil {
			c.logger = log
		}
	}
}

// site is the immutable state shared by every request.
type site struct {
	resolver     *Resolver
	rootAlias    string
	indexPath    string
	notFoundPath string
	notFoundPage templ.Component
	logger       *slog.Logger
}

// Site creates a handler serving files below root with SPA and custom 404 fallbacks.
//
// Only GET is accepted; anything else gets 405. The path "/" is served as the
// index file. Paths that escape root or carry malformed percent-encoding get 403.
// An existing file is returned with a content type from the extension table.
// When the file is missing:
//   - a request whose last segment has no dot (a client-side route) gets the
//     index file with 200
//   - any other request gets the 404 file with 404
//
// If that fallback file is missing too, the generic 404 page is sent. Other
// read failures, including reading a directory, produce 500 and are logged.
//
// Panics at startup if root does not exist or is not a directory.
func Site[C handler.Context](root string, opts ...SiteOption) handler.HandlerFunc[C] {
	cfg := &siteConfig{
		indexFile:    "index.html",
		notFoundFile: "404.html",
		notFoundPage: templ.Raw(GenericNotFoundHTML),
		logger:       logger.Discard(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	resolver, err := NewResolver(root)
	if err != nil {
		panic("static.Site: " + err.Error())
	}
	if err := CheckRoot(resolver.Root()); err != nil {
		panic("static.Site: " + err.Error())
	}

	s := &site{
		resolver:     resolver,
		rootAlias:    "/" + filepath.ToSlash(cfg.indexFile),
		indexPath:    filepath.Join(resolver.Root(), cfg.indexFile),
		notFoundPath: filepath.Join(resolver.Root(), cfg.notFoundFile),
		notFoundPage: cfg.notFoundPage,
		logger:       cfg.logger.With(logger.Component("static"), logger.Root(resolver.Root())),
	}

	return func(ctx C) handler.Response {
		return s.serve(ctx.Request())
	}
}

func (s *site) serve(r *http.Request) handler.Response {
	if r.Method != http.MethodGet {
		return plain(errMethodNotAllowed)
	}

	reqPath := rawRequestPath(r)
	if reqPath == "" || reqPath == "/" {
		reqPath = s.rootAlias
	}

	resolved, err := s.resolver.Resolve(reqPath)
	if err != nil {
		s.logger.DebugContext(r.Context(), "path rejected", logger.Path(reqPath), logger.Error(err))
		return plain(errInvalidPath)
	}

	body, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		return response.Bytes(body, ContentType(resolved))
	case errors.Is(err, fs.ErrNotExist):
		return s.fallback(r, reqPath)
	default:
		s.logger.ErrorContext(r.Context(), "failed to read file", logger.File(resolved), logger.Error(err))
		return plain(errInternal)
	}
}

func (s *site) fallback(r *http.Request, reqPath string) handler.Response {
	if looksLikeRoute(reqPath) {
		if body, ok := s.readFallback(r, s.indexPath); ok {
			return response.Bytes(body, response.ContentTypeHTML)
		}
	} else if body, ok := s.readFallback(r, s.notFoundPath); ok {
		return response.BytesWithStatus(body, response.ContentTypeHTML, http.StatusNotFound)
	}

	return response.TemplWithStatus(s.notFoundPage, http.StatusNotFound)
}

// readFallback reads an optional fallback file. A missing file is expected;
// other failures are logged and degrade to the generic page.
func (s *site) readFallback(r *http.Request, name string) ([]byte, bool) {
	body, err := os.ReadFile(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.WarnContext(r.Context(), "failed to read fallback file", logger.File(name), logger.Error(err))
		}
		return nil, false
	}
	return body, true
}

func plain(e response.HTTPError) handler.Response {
	return response.StringWithStatus(e.Message, e.Status)
}
