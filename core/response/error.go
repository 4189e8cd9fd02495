package response

import (
	"net/http"

	"github.com/dmitrymomot/staticd/core/handler"
)

// Error returns a response that propagates the given error to the error handler.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
