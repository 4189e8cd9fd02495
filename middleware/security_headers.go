package middleware

import (
	"maps"
	"slices"

	"github.com/dmitrymomot/staticd/core/handler"
)

// SecurityHeadersConfig configures the security headers middleware.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// ContentTypeOptions controls X-Content-Type-Options header
	ContentTypeOptions string

	// FrameOptions controls X-Frame-Options header
	FrameOptions string

	// XSSProtection controls X-XSS-Protection header
	XSSProtection string

	// ReferrerPolicy controls Referrer-Policy header
	ReferrerPolicy string

	// ContentSecurityPolicy controls Content-Security-Policy header
	ContentSecurityPolicy string

	// StrictTransportSecurity controls Strict-Transport-Security header
	StrictTransportSecurity string

	// PermissionsPolicy controls Permissions-Policy header
	PermissionsPolicy string

	// CustomHeaders adds extra headers, applied after the named ones in key order
	CustomHeaders map[string]string

	// IsDevelopment disables HSTS
	IsDevelopment bool
}

// Header is a single response header.
type Header struct {
	Name  string
	Value string
}

// Predefined security configurations
var (
	// SiteSecurity is the fixed header set of the static site server.
	SiteSecurity = SecurityHeadersConfig{
		ContentTypeOptions:    "nosniff",
		FrameOptions:          "DENY",
		XSSProtection:         "1; mode=block",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; font-src 'self'; img-src 'self' data:;",
	}

	// StrictSecurity adds HSTS and locks down browser APIs.
	// Only meaningful behind TLS.
	StrictSecurity = SecurityHeadersConfig{
		ContentTypeOptions:      "nosniff",
		FrameOptions:            "DENY",
		XSSProtection:           "1; mode=block",
		ReferrerPolicy:          "no-referrer",
		ContentSecurityPolicy:   "default-src 'none'; script-src 'self'; style-src 'self'; img-src 'self'; font-src 'self'; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",
		StrictTransportSecurity: "max-age=63072000; includeSubDomains; preload",
		PermissionsPolicy:       "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
	}
)

// Headers returns the configured headers in the order they are applied.
func (cfg SecurityHeadersConfig) Headers() []Header {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	named := []Header{
		{"X-Content-Type-Options", cfg.ContentTypeOptions},
		{"X-Frame-Options", cfg.FrameOptions},
		{"X-XSS-Protection", cfg.XSSProtection},
		{"Referrer-Policy", cfg.ReferrerPolicy},
		{"Content-Security-Policy", cfg.ContentSecurityPolicy},
		{"Strict-Transport-Security", cfg.StrictTransportSecurity},
		{"Permissions-Policy", cfg.PermissionsPolicy},
	}

	headers := make([]Header, 0, len(named)+len(cfg.CustomHeaders))
	for _, h := range named {
		if h.Value != "" {
			headers = append(headers, h)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(cfg.CustomHeaders)) {
		headers = append(headers, Header{Name: name, Value: cfg.CustomHeaders[name]})
	}

	return headers
}

// SecurityHeaders creates a security headers middleware with the SiteSecurity set:
//
//	X-Content-Type-Options: nosniff
//	X-Frame-Options: DENY
//	X-XSS-Protection: 1; mode=block
//	Referrer-Policy: strict-origin-when-cross-origin
//	Content-Security-Policy: default-src 'self'; script-src 'self' 'unsafe-inline'; ...
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](SiteSecurity)
}

// SecurityHeadersStrict creates a security headers middleware with StrictSecurity.
func SecurityHeadersStrict[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](StrictSecurity)
}

// SecurityHeadersWithConfig creates a security headers middleware with custom configuration.
//
// Headers are set on the writer before the wrapped handler runs, so responses
// rendered by the error handler or after a recovered panic carry them too.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	headers := cfg.Headers()

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			h := ctx.ResponseWriter().Header()
			for _, header := range headers {
				h.Set(header.Name, header.Value)
			}

			return next(ctx)
		}
	}
}
