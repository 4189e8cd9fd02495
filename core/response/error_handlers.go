package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/staticd/core/handler"
)

// statusCode is an interface that errors can implement
// to provide a custom HTTP status code.
type statusCode interface {
	StatusCode() int
}

// ToHTTPError converts any error to an HTTPError.
// Errors that are neither HTTPError nor carry a known status become 500
// with the original error attached as a detail.
func ToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	baseErr, ok := httpErrorsByStatus[status]
	if !ok {
		baseErr = ErrInternalServerError
	}

	return baseErr.WithError(err)
}

// ErrorHandler renders errors as plain text using the HTTPError message and status.
// Headers already set on the writer (security headers, for example) are kept.
// Nothing is written if the response has already started.
func ErrorHandler[C handler.Context](ctx C, err error) {
	if rec, ok := ctx.ResponseWriter().(handler.StatusRecorder); ok && rec.Written() {
		return
	}
	httpErr := ToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Message, httpErr.Status))
}
