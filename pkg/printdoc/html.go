package printdoc

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/render"
	rendertemplate "github.com/goliatone/go-lessonplan/pkg/render/template"
	"github.com/goliatone/go-lessonplan/pkg/render/template/gotemplate"
)

// RendererName is the registry name of the document renderer.
const RendererName = "document"

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded document template.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Option configures HTMLRenderer.
type Option func(*htmlConfig)

type htmlConfig struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	autoPrint        bool
	style            PageStyle
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// document.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *htmlConfig) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *htmlConfig) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAutoPrint controls whether the document opens the print dialog on load.
// Enabled by default.
func WithAutoPrint(enabled bool) Option {
	return func(cfg *htmlConfig) {
		cfg.autoPrint = enabled
	}
}

// WithPageStyle sets the style used by Render (the render.Renderer entry
// point). RenderDocument always uses the style it is given.
func WithPageStyle(style PageStyle) Option {
	return func(cfg *htmlConfig) {
		cfg.style = style
	}
}

// HTMLRenderer produces standalone printable HTML documents.
type HTMLRenderer struct {
	templates rendertemplate.TemplateRenderer
	autoPrint bool
	style     PageStyle
}

var _ render.Renderer = (*HTMLRenderer)(nil)

// NewHTMLRenderer constructs the renderer applying any options.
func NewHTMLRenderer(options ...Option) (*HTMLRenderer, error) {
	cfg := htmlConfig{
		templateFS: TemplatesFS(),
		autoPrint:  true,
		style:      DefaultPageStyle(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("printdoc"),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("printdoc: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &HTMLRenderer{templates: renderer, autoPrint: cfg.autoPrint, style: cfg.style}, nil
}

func (r *HTMLRenderer) Name() string {
	return RendererName
}

func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render builds the view from snap and renders it with the configured page
// style. A serif font family from the catalog overrides the style's.
func (r *HTMLRenderer) Render(ctx context.Context, snap form.Snapshot, opts render.RenderOptions) ([]byte, error) {
	cat := opts.ResolveCatalog()
	title := opts.Title
	if title == "" {
		title = form.DocumentTitle(snap.Name, cat)
	}
	return r.RenderDocument(ctx, BuildView(snap, cat), title, r.style.WithFontFamily(cat.Document.FontFamily))
}

// RenderDocument renders view as a printable HTML document.
func (r *HTMLRenderer) RenderDocument(ctx context.Context, view *View, title string, style PageStyle) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if view == nil {
		return nil, errors.New("printdoc: view is nil")
	}
	if r.templates == nil {
		return nil, errors.New("printdoc: template renderer is nil")
	}

	result, err := r.templates.RenderTemplate("document", map[string]any{
		"title":      title,
		"view":       view,
		"css":        style.CSS(),
		"auto_print": r.autoPrint,
	})
	if err != nil {
		return nil, fmt.Errorf("printdoc: render: %w", err)
	}
	return []byte(result), nil
}

// DocumentRenderer renders a view into a complete printable document.
// HTMLRenderer is the default implementation.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, view *View, title string, style PageStyle) ([]byte, error)
}

var _ DocumentRenderer = (*HTMLRenderer)(nil)

// WriterBridge renders documents straight into W. Nothing is written when
// rendering fails.
type WriterBridge struct {
	W        io.Writer
	Renderer DocumentRenderer
}

// RenderToDocument implements Bridge.
func (b WriterBridge) RenderToDocument(ctx context.Context, view *View, title string, style PageStyle) error {
	if b.W == nil || b.Renderer == nil {
		return errors.New("printdoc: writer bridge needs a writer and a renderer")
	}
	doc, err := b.Renderer.RenderDocument(ctx, view, title, style)
	if err != nil {
		return err
	}
	_, err = b.W.Write(doc)
	return err
}

// FileBridge exports documents as <Dir>/<title>.html.
type FileBridge struct {
	Dir      string
	Renderer DocumentRenderer
	// OnWritten, when set, receives the path of each exported document.
	OnWritten func(path string)
}

// RenderToDocument implements Bridge.
func (b FileBridge) RenderToDocument(ctx context.Context, view *View, title string, style PageStyle) error {
	if b.Renderer == nil {
		return errors.New("printdoc: file bridge needs a renderer")
	}
	doc, err := b.Renderer.RenderDocument(ctx, view, title, style)
	if err != nil {
		return err
	}

	dir := b.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("printdoc: create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName(title))
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("printdoc: write %s: %w", path, err)
	}
	if b.OnWritten != nil {
		b.OnWritten(path)
	}
	return nil
}

// FileName turns a document title into a safe file name with an .html
// extension.
func FileName(title string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-",
		"<", "", ">", "", "|", "", "?", "", "*", "", "\"", "", "\x00", "",
		"\n", " ", "\r", " ",
	)
	name := strings.TrimSpace(replacer.Replace(title))
	name = strings.Trim(name, ".")
	if name == "" {
		name = "document"
	}
	return name + ".html"
}
