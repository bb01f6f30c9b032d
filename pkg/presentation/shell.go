package presentation

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/render"
	rendertemplate "github.com/goliatone/go-lessonplan/pkg/render/template"
	"github.com/goliatone/go-lessonplan/pkg/render/template/gotemplate"
)

// RendererName is the registry name of the on-screen page renderer.
const RendererName = "page"

const defaultPageTemplate = "page.tmpl"

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded page template.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Option configures a Shell.
type Option func(*shellConfig)

type shellConfig struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	selector         theme.ThemeSelector
	themeName        string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *shellConfig) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *shellConfig) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelector swaps the palette source. The selector must know the
// "default" and "high-contrast" variants of the configured theme.
func WithThemeSelector(selector theme.ThemeSelector, name string) Option {
	return func(cfg *shellConfig) {
		if selector != nil {
			cfg.selector = selector
			cfg.themeName = name
		}
	}
}

// Shell renders the interactive page: the central form between two
// decorative columns, painted with the palette picked by the contrast flag.
type Shell struct {
	templates rendertemplate.TemplateRenderer
	selector  theme.ThemeSelector
	themeName string
}

var _ render.Renderer = (*Shell)(nil)

// NewShell constructs the page renderer.
func NewShell(options ...Option) (*Shell, error) {
	cfg := shellConfig{
		templateFS: TemplatesFS(),
		themeName:  ThemeName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.selector == nil {
		selector, err := NewSelector(Manifest())
		if err != nil {
			return nil, err
		}
		cfg.selector = selector
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("presentation"),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("presentation: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Shell{templates: renderer, selector: cfg.selector, themeName: cfg.themeName}, nil
}

func (s *Shell) Name() string {
	return RendererName
}

func (s *Shell) ContentType() string {
	return "text/html; charset=utf-8"
}

// Theme resolves the renderer theme config for the contrast flag.
func (s *Shell) Theme(highContrast bool) (*theme.RendererConfig, error) {
	selection, err := s.selector.Select(s.themeName, VariantFor(highContrast))
	if err != nil {
		return nil, fmt.Errorf("presentation: select theme: %w", err)
	}
	cfg := RendererConfig(selection)
	if cfg == nil {
		return nil, errors.New("presentation: theme selection has no manifest")
	}
	return cfg, nil
}

// Render implements render.Renderer.
func (s *Shell) Render(ctx context.Context, snap form.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.templates == nil {
		return nil, errors.New("presentation: template renderer is nil")
	}

	themeCfg, err := s.Theme(snap.HighContrast)
	if err != nil {
		return nil, err
	}

	page := BuildPage(snap, opts.ResolveCatalog(), opts)
	templateName := defaultPageTemplate
	if partial := themeCfg.Partials["page"]; partial != "" {
		templateName = partial
	}

	var stylesheet string
	if themeCfg.AssetURL != nil {
		stylesheet = themeCfg.AssetURL("stylesheet")
	}

	result, err := s.templates.RenderTemplate(templateName, map[string]any{
		"page":          page,
		"theme_style":   CSSVarsStyle(themeCfg.CSSVars),
		"theme_variant": themeCfg.Variant,
		"stylesheet":    stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("presentation: render page: %w", err)
	}
	return []byte(result), nil
}
