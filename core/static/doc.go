// Package static serves files from a single root directory with single-page
// application and custom 404 fallbacks.
//
// Resolver turns a raw, percent-encoded request path into an absolute path that
// is guaranteed to stay inside the root:
//
//	res, err := static.NewResolver("./public")
//	p, err := res.Resolve("/assets/app.js")     // /abs/public/assets/app.js
//	_, err = res.Resolve("/%2e%2e%2fetc/passwd") // errors.Is(err, static.ErrPathRejected)
//
// Site builds a handler on top of it:
//
//	h := static.Site[*handler.BaseContext]("./public",
//		static.WithLogger(log),
//	)
//	http.ListenAndServe(":8000", handler.Serve(h))
//
// # Fallback Order
//
//  1. The requested file.
//  2. index.html at the root, when the last path segment has no dot.
//  3. 404.html at the root, served with 404, for every other miss.
//  4. A built-in generic 404 page.
//
// Site never sets security headers itself; install the middleware package's
// SecurityHeaders in front of it.
package static
