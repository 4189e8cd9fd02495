package static_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/staticd/core/static"
)

func TestContentType(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"index.html":      "text/html",
		"style.css":       "text/css",
		"app.js":          "text/javascript",
		"data.json":       "application/json",
		"logo.png":        "image/png",
		"photo.jpg":       "image/jpeg",
		"anim.gif":        "image/gif",
		"icon.svg":        "image/svg+xml",
		"favicon.ico":     "image/x-icon",
		"pic.webp":        "image/webp",
		"font.ttf":        "font/ttf",
		"font.woff":       "font/woff",
		"font.woff2":      "font/woff2",
		"UPPER.HTML":      "text/html",
		"Mixed.Js":        "text/javascript",
		"/abs/dir/a.PNG":  "image/png",
		"photo.jpeg":      static.DefaultContentType,
		"archive.tar.gz":  static.DefaultContentType,
		"README":          static.DefaultContentType,
		"notes.txt":       static.DefaultContentType,
		"/dir.with.dot/x": static.DefaultContentType,
		"trailing.dot.":   static.DefaultContentType,
	}

	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, want, static.ContentType(name))
		})
	}
}
