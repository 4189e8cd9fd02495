package static

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// MalformedTarget is a request target that net/http accepts but Resolve
// always rejects with ErrMalformedPath. Servers rewrite unparseable request
// targets to it so they are answered like any other malformed path.
const MalformedTarget = "/%00"

// Resolver maps raw request paths to absolute filesystem paths confined to a
// root directory. It performs no I/O and is safe for concurrent use.
type Resolver struct {
	root string
}

// NewResolver returns a Resolver for root. The root is made absolute and clean.
func NewResolver(root string) (*Resolver, error) {
	if root == "" {
		return nil, ErrEmptyRoot
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}

	return &Resolver{root: abs}, nil
}

// Root returns the absolute root directory.
func (r *Resolver) Root() string {
	return r.root
}

// Resolve decodes and normalizes a raw, percent-encoded request path and joins
// it onto the root. The result is the root itself or one of its descendants.
// Rejections wrap ErrPathRejected.
func (r *Resolver) Resolve(raw string) (string, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedPath, err)
	}
	if strings.IndexByte(decoded, 0) >= 0 {
		return "", ErrMalformedPath
	}

	// Clean the relative form: a rooted Clean would clamp leading ".." segments
	// at "/" and hide the escape attempt.
	rel := path.Clean(strings.TrimLeft(decoded, "/"))
	full := filepath.Join(r.root, filepath.FromSlash(rel))

	if !isWithin(r.root, full) {
		return "", ErrPathEscapesRoot
	}

	return full, nil
}

// isWithin reports whether target is root or lexically below it.
// Component-wise, so /srv/wwwevil is not inside /srv/www.
func isWithin(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
