// Package response provides constructors for handler.Response values and the
// error type used to turn failures into HTTP replies.
//
// Plain content:
//
//	response.String("ok")
//	response.StringWithStatus("Forbidden", http.StatusForbidden)
//	response.BytesWithStatus(data, "image/png", http.StatusOK)
//
// Templ components:
//
//	response.TemplWithStatus(templ.Raw("<h1>gone</h1>"), http.StatusNotFound)
//
// Errors are values. A handler returns response.Error(err) and the configured
// error handler decides what the client sees:
//
//	return response.Error(response.ErrForbidden.WithMessage("Forbidden: Invalid path"))
//
// ErrorHandler renders the HTTPError message as text/plain. Errors that are not
// an HTTPError are mapped through their StatusCode() method when present and
// otherwise become a generic 500 with no detail leaked to the client.
package response
