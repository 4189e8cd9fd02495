package handler

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/dmitrymomot/staticd/core/logger"
)

type serveConfig[C Context] struct {
	newContext   func(http.ResponseWriter, *http.Request) C
	errorHandler ErrorHandler[C]
	middlewares  []Middleware[C]
	logger       *slog.Logger
}

// ServeOption configures the http.Handler produced by Serve.
type ServeOption[C Context] func(*serveConfig[C])

// WithContextFactory sets the function that builds a context for each request.
// It is required for context types other than *BaseContext.
func WithContextFactory[C Context](f func(http.ResponseWriter, *http.Request) C) ServeOption[C] {
	return func(c *serveConfig[C]) {
		c.newContext = f
	}
}

// WithErrorHandler sets the handler for errors returned by responses and for recovered panics.
func WithErrorHandler[C Context](h ErrorHandler[C]) ServeOption[C] {
	return func(c *serveConfig[C]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithMiddleware appends middleware around the endpoint. The first one runs first.
func WithMiddleware[C Context](middlewares ...Middleware[C]) ServeOption[C] {
	return func(c *serveConfig[C]) {
		c.middlewares = append(c.middlewares, middlewares...)
	}
}

// WithLogger sets the logger used to report panics that happen after the
// response was already written.
func WithLogger[C Context](logger *slog.Logger) ServeOption[C] {
	return func(c *serveConfig[C]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Serve adapts a HandlerFunc and its middleware into an http.Handler.
// Every request gets a fresh context; errors returned by the response and
// recovered panics are routed through the configured ErrorHandler.
// Panics at construction if h is nil or C needs a factory and none was given.
func Serve[C Context](h HandlerFunc[C], opts ...ServeOption[C]) http.Handler {
	if h == nil {
		panic(ErrNilHandler)
	}

	cfg := &serveConfig[C]{
		errorHandler: defaultErrorHandler[C],
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.newContext == nil {
		var zero C
		if _, ok := any(zero).(*BaseContext); !ok {
			panic("handler.Serve: context factory is required for custom context types")
		}
		cfg.newContext = func(w http.ResponseWriter, r *http.Request) C {
			return any(NewBaseContext(w, r)).(C)
		}
	}

	fn := Chain(h, cfg.middlewares...)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		ctx := cfg.newContext(ww, r)

		defer func() {
			if p := recover(); p != nil {
				perr := &panicError{value: p, stack: debug.Stack()}
				if ww.Written() {
					cfg.logger.Error("panic after response written",
						logger.Error(perr),
						logger.Method(r.Method),
						logger.Path(r.URL.Path),
						logger.StatusCode(ww.Status()),
						slog.String("stack", string(perr.stack)),
					)
					return
				}
				cfg.errorHandler(ctx, perr)
			}
		}()

		response := fn(ctx)
		if response == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}

		// Middleware may have replaced the request to carry new values.
		if err := response(ww, ctx.Request()); err != nil {
			cfg.errorHandler(ctx, err)
		}
	})
}
