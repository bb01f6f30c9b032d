package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-lessonplan/internal/catalogwatch"
	"github.com/goliatone/go-lessonplan/internal/config"
	"github.com/goliatone/go-lessonplan/internal/logger"
	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/printdoc"
	"github.com/goliatone/go-lessonplan/pkg/render"
	"github.com/goliatone/go-lessonplan/pkg/renderers/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "lessonplan-cli: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("lessonplan-cli", flag.ContinueOnError)
	format := fs.String("format", string(tui.OutputFormatPrettyText), "summary format (json, form, pretty)")
	noPrint := fs.Bool("no-print", false, "skip the print step")
	cfg, err := config.Load(fs, args)
	if err != nil {
		return err
	}
	logger.Init(cfg.Logger(os.Stderr))
	log := logger.ForComponent("cli")

	switch tui.OutputFormat(*format) {
	case tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	catalogs, err := catalogwatch.OpenOrEmbedded(cfg.CatalogDir)
	if err != nil {
		return err
	}
	cat, ok := catalogs.Get(cfg.CatalogName())
	if !ok {
		return fmt.Errorf("catalog %q not found (have %v)", cfg.CatalogName(), catalogs.Names())
	}

	options := []tui.Option{
		tui.WithCatalog(cat),
		tui.WithOutputFormat(tui.OutputFormat(*format)),
		tui.WithTheme(tui.Theme{InfoPrefix: "! ", NoticePrefix: "⚠ "}),
	}
	if !*noPrint {
		document, err := printdoc.NewHTMLRenderer(printdoc.WithAutoPrint(true))
		if err != nil {
			return err
		}
		options = append(options, tui.WithBridge(printdoc.FileBridge{
			Dir:      cfg.OutputDir,
			Renderer: document,
			OnWritten: func(path string) {
				log.Info("document written", "path", path)
			},
		}))
	}

	session, err := tui.New(options...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := session.Render(ctx, form.NewState(cat).Snapshot(), render.RenderOptions{Catalog: cat})
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
