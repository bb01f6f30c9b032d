package render

import "github.com/goliatone/go-lessonplan/pkg/catalog"

// RenderOptions describe per-request data renderers use without touching the
// form state.
type RenderOptions struct {
	// Catalog supplies option tables and copy. Renderers fall back to
	// catalog.Default() when it is empty.
	Catalog catalog.Catalog
	// Notices are blocking, form-level messages (the trait cap notice). Page
	// renderers show them as a modal dialog that must be acknowledged.
	Notices []string
	// Errors surfaces request decoding or validation feedback keyed by field.
	Errors map[string][]string
	// Hidden carries the state that must round-trip with the next submission.
	Hidden []HiddenField
	// Title overrides the derived document title.
	Title string
}

// ResolveCatalog returns opts.Catalog or the bundled default when the caller
// left it empty.
func (opts RenderOptions) ResolveCatalog() catalog.Catalog {
	if opts.Catalog.Language == "" && len(opts.Catalog.Traits) == 0 {
		return catalog.Default()
	}
	return opts.Catalog
}
