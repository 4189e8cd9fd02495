// Package middleware provides HTTP middleware for the static server: request
// IDs, access and completion logging, and security headers.
//
// All middleware functions follow a consistent pattern:
//   - Generic functions that accept a handler.Context type parameter
//   - Configuration structs for customization
//   - Default constructors for common use cases
//   - WithConfig constructors for advanced configuration
//   - Context helpers for retrieving stored values
//
// Each middleware can be configured to skip execution based on custom logic
// through the Skip field of its config.
//
// # Request ID Middleware
//
// RequestID assigns a UUID to every request and stores it in the context.
// It does not touch the response unless SetResponseHeader is enabled.
//
//	mw := middleware.RequestID[*handler.BaseContext]()
//
//	// Inside a handler
//	id, ok := middleware.GetRequestID(ctx)
//
// # Logging Middleware
//
// AccessLog writes "Request: METHOD PATH" when a request arrives. Logging
// writes one record after the response with status, bytes and duration:
//
//	handler.WithMiddleware(
//		middleware.RequestID[*handler.BaseContext](),
//		middleware.AccessLog[*handler.BaseContext](log),
//		middleware.Logging[*handler.BaseContext](log),
//	)
//
// Install RequestID first so both loggers can include the ID.
//
// # Security Headers Middleware
//
// SecurityHeaders sets the SiteSecurity header set on every response, including
// ones produced by the error handler or after a recovered panic:
//
//	X-Content-Type-Options: nosniff
//	X-Frame-Options: DENY
//	X-XSS-Protection: 1; mode=block
//	Referrer-Policy: strict-origin-when-cross-origin
//	Content-Security-Policy: default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; font-src 'self'; img-src 'self' data:;
//
// Custom sets are built from SecurityHeadersConfig:
//
//	cfg := middleware.SiteSecurity
//	cfg.CustomHeaders = map[string]string{"X-Robots-Tag": "noindex"}
//	mw := middleware.SecurityHeadersWithConfig[*handler.BaseContext](cfg)
package middleware
