package presentation

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme and variant names used for the on-screen page.
const (
	ThemeName           = "lessonplan"
	VariantDefault      = "default"
	VariantHighContrast = "high-contrast"
)

// Palette token keys. Each token is exposed as a CSS custom property named
// "--<key>".
const (
	TokenBackground = "background"
	TokenForeground = "foreground"
	TokenSurface    = "surface"
	TokenAccent     = "accent"
	TokenBorder     = "border"
)

// Manifest returns the built-in theme: a light default palette and a
// high-contrast variant that swaps the background/foreground pair for the
// whole screen.
func Manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			TokenBackground: "#f8f9fa",
			TokenForeground: "#000000",
			TokenSurface:    "#ffffff",
			TokenAccent:     "#0d6efd",
			TokenBorder:     "#ced4da",
		},
		Templates: map[string]string{
			"page": "page.tmpl",
		},
		Variants: map[string]theme.Variant{
			VariantDefault: {},
			VariantHighContrast: {
				Tokens: map[string]string{
					TokenBackground: "#000000",
					TokenForeground: "#ffffff",
					TokenSurface:    "#111111",
					TokenAccent:     "#ffd400",
					TokenBorder:     "#ffffff",
				},
			},
		},
	}
}

// VariantFor maps the contrast flag onto a variant name.
func VariantFor(highContrast bool) string {
	if highContrast {
		return VariantHighContrast
	}
	return VariantDefault
}

// Selector resolves theme selections from a fixed set of manifests. It
// satisfies theme.ThemeSelector.
type Selector struct {
	provider  theme.ThemeProvider
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests with a go-theme registry and keeps them
// for lookups. The first manifest becomes the fallback for empty names.
func NewSelector(manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{Manifest()}
	}
	registry := theme.NewRegistry()
	s := &Selector{
		provider:  registry,
		manifests: make(map[string]*theme.Manifest, len(manifests)),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			return nil, errors.New("presentation: nil theme manifest")
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("presentation: register theme %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
		if s.fallback == "" {
			s.fallback = manifest.Name
		}
	}
	return s, nil
}

// Provider exposes the go-theme registry backing the selector.
func (s *Selector) Provider() theme.ThemeProvider {
	return s.provider
}

// Select implements theme.ThemeSelector. Unknown variants are rejected.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if strings.TrimSpace(name) == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("presentation: unknown theme %q", name)
	}
	if variant == "" {
		variant = VariantDefault
	}
	if _, ok := manifest.Variants[variant]; !ok && variant != VariantDefault {
		return nil, fmt.Errorf("presentation: theme %q has no variant %q", name, variant)
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}

// RendererConfig flattens a selection into the renderer-facing config:
// variant tokens override base tokens, every token becomes a CSS variable and
// asset keys resolve against the manifest prefix.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := mergeStrings(manifest.Tokens, variant.Tokens)
	partials := mergeStrings(manifest.Templates, variant.Templates)
	files := mergeStrings(manifest.Assets.Files, variant.Assets.Files)
	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

// CSSVarsStyle renders CSS variables as a deterministic declaration list.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
