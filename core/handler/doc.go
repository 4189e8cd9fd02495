// Package handler provides the core request-processing types: a type-safe
// HandlerFunc over a custom Context, a Response closure that renders the reply,
// composable Middleware and an ErrorHandler.
//
// Serve turns a HandlerFunc plus middleware into a standard http.Handler:
//
//	h := handler.Serve(
//		static.Site[*handler.BaseContext]("./public"),
//		handler.WithMiddleware(
//			middleware.RequestID[*handler.BaseContext](),
//			middleware.SecurityHeadersWithConfig[*handler.BaseContext](middleware.SiteSecurity),
//		),
//		handler.WithErrorHandler(response.ErrorHandler[*handler.BaseContext]),
//	)
//	http.ListenAndServe(":8000", h)
//
// Handlers return a Response instead of writing directly, so middleware can
// decorate the reply before it is rendered:
//
//	func hello(ctx *handler.BaseContext) handler.Response {
//		return func(w http.ResponseWriter, r *http.Request) error {
//			w.Header().Set("Content-Type", "text/plain")
//			_, err := w.Write([]byte("hello"))
//			return err
//		}
//	}
//
// Errors returned by a Response and panics raised while handling a request are
// passed to the ErrorHandler. A recovered panic is delivered as an error that
// implements PanicError.
package handler
