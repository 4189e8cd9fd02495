package staticd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/staticd/core/handler"
	"github.com/dmitrymomot/staticd/core/logger"
	"github.com/dmitrymomot/staticd/core/response"
	"github.com/dmitrymomot/staticd/core/server"
	"github.com/dmitrymomot/staticd/core/static"
	"github.com/dmitrymomot/staticd/middleware"
)

// ServiceName identifies the process in log records.
const ServiceName = "staticd"

// App wires configuration, logging, middleware and the static site into a server.
type App struct {
	config  Config
	logger  *slog.Logger
	server  *server.Server
	handler http.Handler
}

type AppOption func(*App) error

// NewApp builds an App from cfg. The static root must exist.
func NewApp(cfg Config, opts ...AppOption) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = NewLogger(cfg)
	}

	h, err := app.buildHandler()
	if err != nil {
		return nil, err
	}
	app.handler = h

	if app.server == nil {
		s, err := server.NewFromConfig(cfg.Server,
			server.WithLogger(app.logger),
			server.WithOnListen(app.announce),
			server.WithMalformedTargetRewrite(static.MalformedTarget),
		)
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

// WithLogger overrides the logger derived from the config.
func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

// WithServer replaces the server built from the config.
func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}

// NewLogger returns the process logger: JSON in production, text otherwise,
// at the level named by cfg.LogLevel.
func NewLogger(cfg Config) *slog.Logger {
	env := logger.WithDevelopment(ServiceName)
	if cfg.IsProduction() {
		env = logger.WithProduction(ServiceName)
	}
	return logger.New(env, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
}

// Handler returns the fully wired HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
// A listener that cannot be bound is returned as an error. While serving,
// the static root is re-checked every RootCheckInterval.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.server.Run(ctx, a.handler))
	if a.config.RootCheckInterval > 0 {
		g.Go(func() error { return a.watchRoot(ctx) })
	}
	return g.Wait()
}

// watchRoot logs when the static root stops or resumes being a usable
// directory. Requests keep being served either way.
func (a *App) watchRoot(ctx context.Context) error {
	ticker := time.NewTicker(a.config.RootCheckInterval)
	defer ticker.Stop()

	available := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := static.CheckRoot(a.config.Root)
			switch {
			case err != nil && available:
				a.logger.ErrorContext(ctx, "static root unavailable", logger.Root(a.config.Root), logger.Error(err))
			case err == nil && !available:
				a.logger.InfoContext(ctx, "static root available again", logger.Root(a.config.Root))
			}
			available = err == nil
		}
	}
}

func (a *App) buildHandler() (h http.Handler, err error) {
	// static.Site panics on an unusable root; report it as an error instead.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidRoot, r)
		}
	}()

	site := static.Site[*Context](a.config.Root, static.WithLogger(a.logger))

	return handler.Serve(site,
		handler.WithContextFactory(newContext),
		handler.WithErrorHandler(response.ErrorHandler[*Context]),
		handler.WithLogger[*Context](a.logger),
		handler.WithMiddleware(
			middleware.RequestID[*Context](),
			middleware.AccessLogWithConfig[*Context](middleware.AccessLogConfig{
				Logger: a.logger,
				Skip:   func(handler.Context) bool { return a.config.IsProduction() },
			}),
			middleware.Logging[*Context](a.logger),
			middleware.SecurityHeaders[*Context](),
		),
	), nil
}

// announce prints the startup line once the port is bound.
func (a *App) announce(addr net.Addr) {
	_, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		port = fmt.Sprint(a.config.Server.Port)
	}
	url := fmt.Sprintf("http://%s/", net.JoinHostPort(a.config.Server.Host, port))
	a.logger.Info("Server running at "+url, logger.Addr(addr.String()))
}
