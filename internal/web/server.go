// Package web serves the lesson-plan form over HTTP. The page is stateless:
// every submission carries the full form state and at most one toggle event.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-lessonplan/internal/apispec"
	"github.com/goliatone/go-lessonplan/internal/logger"
	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/presentation"
	"github.com/goliatone/go-lessonplan/pkg/printdoc"
	"github.com/goliatone/go-lessonplan/pkg/render"
)

const (
	defaultShutdownGrace = 5 * time.Second
	readHeaderTimeout    = 5 * time.Second
	maxBodyBytes         = 1 << 20
)

// CatalogSource resolves catalogs by name. Both catalog.Store and the
// reloading catalogwatch.Store satisfy it.
type CatalogSource interface {
	Get(name string) (catalog.Catalog, bool)
	Names() []string
}

// Config wires a Server.
type Config struct {
	Catalogs       CatalogSource
	DefaultCatalog string
	Registry       *render.Registry
	Contract       *apispec.Contract
	Logger         *slog.Logger
	ShutdownGrace  time.Duration
}

// Server hosts the form page, the print endpoints and the API contract.
type Server struct {
	catalogs       CatalogSource
	defaultCatalog string
	registry       *render.Registry
	contract       *apispec.Contract
	log            *slog.Logger
	grace          time.Duration

	document     printdoc.DocumentRenderer
	documentType string
}

// New validates cfg and fills defaults: embedded catalogs, the page and
// document renderers, the embedded API contract.
func New(ctx context.Context, cfg Config) (*Server, error) {
	s := &Server{
		catalogs:       cfg.Catalogs,
		defaultCatalog: cfg.DefaultCatalog,
		registry:       cfg.Registry,
		contract:       cfg.Contract,
		log:            cfg.Logger,
		grace:          cfg.ShutdownGrace,
	}

	if s.log == nil {
		s.log = logger.ForComponent("web")
	}
	if s.grace <= 0 {
		s.grace = defaultShutdownGrace
	}
	if s.catalogs == nil {
		store, err := catalog.Embedded()
		if err != nil {
			return nil, fmt.Errorf("web: load embedded catalogs: %w", err)
		}
		s.catalogs = store
	}
	if s.defaultCatalog == "" {
		s.defaultCatalog = catalog.DefaultName
	}
	if _, ok := s.catalogs.Get(s.defaultCatalog); !ok {
		return nil, fmt.Errorf("web: default catalog %q not found", s.defaultCatalog)
	}

	if s.registry == nil {
		registry, err := DefaultRegistry()
		if err != nil {
			return nil, err
		}
		s.registry = registry
	}
	if _, err := s.registry.Get(presentation.RendererName); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	docRenderer, err := s.registry.Get(printdoc.RendererName)
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	document, ok := docRenderer.(printdoc.DocumentRenderer)
	if !ok {
		return nil, fmt.Errorf("web: renderer %q cannot render print documents", printdoc.RendererName)
	}
	s.document = document
	s.documentType = docRenderer.ContentType()

	if s.contract == nil {
		contract, err := apispec.Load(ctx)
		if err != nil {
			return nil, err
		}
		s.contract = contract
	}
	return s, nil
}

// DefaultRegistry registers the page shell and the printable document.
func DefaultRegistry() (*render.Registry, error) {
	shell, err := presentation.NewShell()
	if err != nil {
		return nil, fmt.Errorf("web: page renderer: %w", err)
	}
	document, err := printdoc.NewHTMLRenderer()
	if err != nil {
		return nil, fmt.Errorf("web: document renderer: %w", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(shell); err != nil {
		return nil, err
	}
	if err := registry.Register(document); err != nil {
		return nil, err
	}
	return registry, nil
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /{$}", s.handleSubmit)
	mux.HandleFunc("POST /print", s.handlePrint)
	mux.HandleFunc("POST "+apispec.PrintPath, s.handleAPIPrint)
	mux.HandleFunc("GET /openapi.yaml", s.handleContract)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return s.logRequests(mux)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "catalog", s.defaultCatalog)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("web: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}
