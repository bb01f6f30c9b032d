package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-lessonplan/internal/catalogwatch"
	"github.com/goliatone/go-lessonplan/internal/config"
	"github.com/goliatone/go-lessonplan/internal/logger"
	"github.com/goliatone/go-lessonplan/internal/web"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "lessonplan-web: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("lessonplan-web", flag.ContinueOnError)
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}
	logger.Init(cfg.Logger(os.Stderr))
	log := logger.ForComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalogs, err := catalogwatch.OpenOrEmbedded(cfg.CatalogDir,
		catalogwatch.WithLogger(logger.ForComponent("catalogwatch")),
	)
	if err != nil {
		return err
	}
	if cfg.WatchCatalog && catalogs.Dynamic() {
		go func() {
			if err := catalogs.Watch(ctx); err != nil {
				log.Error("catalog watch stopped", "error", err)
			}
		}()
	}

	server, err := web.New(ctx, web.Config{
		Catalogs:       catalogs,
		DefaultCatalog: cfg.CatalogName(),
		Logger:         logger.ForComponent("web"),
	})
	if err != nil {
		return err
	}
	return server.Run(ctx, cfg.HTTPAddr)
}
