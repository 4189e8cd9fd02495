// Package staticd assembles the static file server: configuration from the
// environment, the process logger, the middleware chain and the static site
// handler, served by core/server with graceful shutdown.
//
//	cfg, err := staticd.LoadConfig()
//	if err != nil {
//		return err
//	}
//	app, err := staticd.NewApp(cfg)
//	if err != nil {
//		return err
//	}
//	return app.Run(ctx)
//
// Every response carries the SiteSecurity headers. Outside production each
// request is also logged as "Request: METHOD PATH".
package staticd
