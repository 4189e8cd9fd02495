package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/staticd/app/staticd"
	"github.com/dmitrymomot/staticd/core/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := staticd.LoadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("staticd", flag.ContinueOnError)
	fs.StringVar(&cfg.Root, "root", cfg.Root, "directory to serve (env STATIC_ROOT)")
	fs.StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "listen host (env HOST)")
	fs.IntVar(&cfg.Server.Port, "port", cfg.Server.Port, "listen port (env PORT)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	log := staticd.NewLogger(cfg)

	app, err := staticd.NewApp(cfg, staticd.WithLogger(log))
	if err != nil {
		log.Error("failed to initialize", logger.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Error("server stopped", logger.Error(err))
		return err
	}
	return nil
}
