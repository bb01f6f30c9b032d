// Package lessonplan is the top-level entry point: build a form over a
// catalog, then render it as the interactive page or the printable document.
package lessonplan

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/presentation"
	"github.com/goliatone/go-lessonplan/pkg/printdoc"
	"github.com/goliatone/go-lessonplan/pkg/render"
)

// Snapshot aliases form.Snapshot so callers can stay on the root package.
type Snapshot = form.Snapshot

// Catalog aliases catalog.Catalog.
type Catalog = catalog.Catalog

// RenderOptions describes per-request notices, errors and hidden fields.
type RenderOptions = render.RenderOptions

// Renderer names registered by NewRegistry.
const (
	PageRenderer     = presentation.RendererName
	DocumentRenderer = printdoc.RendererName
)

// MaxTraits is the trait selection cap.
const MaxTraits = form.MaxTraits

// NewForm builds a form over cat with fresh state.
func NewForm(cat Catalog, options ...form.Option) *form.Form {
	return form.New(cat, options...)
}

// NewRegistry registers the page and document renderers. Page options let
// callers swap the theme or the templates.
func NewRegistry(pageOptions ...presentation.Option) (*render.Registry, error) {
	shell, err := presentation.NewShell(pageOptions...)
	if err != nil {
		return nil, err
	}
	document, err := printdoc.NewHTMLRenderer()
	if err != nil {
		return nil, err
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

// WithThemeManifests registers manifests with a go-theme registry and points
// the page renderer at the named one. It must carry "default" and
// "high-contrast" variants.
func WithThemeManifests(name string, manifests ...*theme.Manifest) (presentation.Option, error) {
	selector, err := presentation.NewSelector(manifests...)
	if err != nil {
		return nil, fmt.Errorf("lessonplan: theme: %w", err)
	}
	return presentation.WithThemeSelector(selector, name), nil
}

// RenderHTML renders snap with the named renderer from a default registry.
func RenderHTML(ctx context.Context, snap Snapshot, rendererName string, opts RenderOptions) ([]byte, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}
	out, err := renderer.Render(ctx, snap, opts)
	if err != nil {
		return nil, fmt.Errorf("lessonplan: render %s: %w", rendererName, err)
	}
	return out, nil
}

// PrintDocument renders the printable document for f's current state.
func PrintDocument(ctx context.Context, f *form.Form) ([]byte, error) {
	return RenderHTML(ctx, f.Snapshot(), DocumentRenderer, RenderOptions{Catalog: f.Catalog(), Title: f.Title()})
}
