package static

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// CheckRoot returns an error unless path is an existing directory.
// Site calls it once at construction to fail fast; callers may repeat it
// to notice a root that disappears while serving.
func CheckRoot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}

// rawRequestPath returns the request path exactly as the client sent it,
// still percent-encoded and without the query string.
func rawRequestPath(r *http.Request) string {
	if uri := r.RequestURI; strings.HasPrefix(uri, "/") {
		if i := strings.IndexByte(uri, '?'); i >= 0 {
			uri = uri[:i]
		}
		return uri
	}
	return r.URL.EscapedPath()
}

// looksLikeRoute reports whether the last segment of a raw request path has no
// dot, meaning it names a client-side route rather than a missing asset.
func looksLikeRoute(raw string) bool {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}
	last := decoded[strings.LastIndexByte(decoded, '/')+1:]
	return !strings.Contains(last, ".")
}
