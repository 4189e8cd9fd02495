// Package server provides an HTTP server with graceful shutdown,
// configurable options, and production-ready defaults. It wraps the standard
// http.Server and binds its listener synchronously so that startup failures,
// such as a port that is already in use, surface as errors from Start.
//
// # Basic Usage
//
//	import (
//		"context"
//		"net/http"
//		"github.com/dmitrymomot/staticd/core/server"
//	)
//
//	func main() {
//		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//			w.Write([]byte("Hello, World!"))
//		})
//
//		if err := server.Run(context.Background(), "localhost:8000", handler); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Configuration
//
// Config reads HOST, PORT and the SERVER_* timeouts from the environment via
// the config package:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//
// # Graceful Shutdown
//
// Run returns a function suitable for errgroup. It stops the server with the
// configured shutdown timeout once the context is canceled:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	if err := g.Wait(); err != nil {
//		log.Fatal(err)
//	}
//
// # Malformed Request Targets
//
// net/http answers 400 by itself when a request target cannot be parsed,
// before any handler runs. WithMalformedTargetRewrite makes the listener
// replace such targets with a fixed one so the handler chooses the response:
//
//	srv := server.New(addr, server.WithMalformedTargetRewrite("/%00"))
//
// The rewrite follows keep-alive connections while request bodies are
// delimited by Content-Length. After a body with any other framing, the rest
// of that connection is passed through untouched.
//
// # Server Defaults
//
//   - ReadTimeout: 15 seconds
//   - WriteTimeout: 15 seconds
//   - IdleTimeout: 60 seconds
//   - MaxHeaderBytes: 1MB
//   - Graceful shutdown timeout: 30 seconds
//   - Logger: discards everything
//
// # Thread Safety
//
// The Server type is safe for concurrent use. Start returns
// ErrServerAlreadyRunning when called on a running instance.
package server
