package staticd

import (
	"net/http"

	"github.com/dmitrymomot/staticd/core/handler"
)

// Context is the per-request context of the static server.
// The server has no routes, so Param always returns an empty string.
type Context struct {
	*handler.BaseContext
}

func newContext(w http.ResponseWriter, r *http.Request) *Context {
	return &Context{BaseContext: handler.NewBaseContext(w, r)}
}
