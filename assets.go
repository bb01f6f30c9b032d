package lessonplan

import (
	"io/fs"

	"github.com/goliatone/go-lessonplan/internal/apispec"
	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/presentation"
	"github.com/goliatone/go-lessonplan/pkg/printdoc"
)

// PageTemplates exposes the built-in page template so callers can copy or
// extend it and pass the result back through presentation.WithTemplatesFS.
func PageTemplates() fs.FS {
	return presentation.TemplatesFS()
}

// DocumentTemplates exposes the built-in printable document template.
func DocumentTemplates() fs.FS {
	return printdoc.TemplatesFS()
}

// CatalogFiles exposes the bundled catalog YAML files, a starting point for a
// -catalog-dir override.
func CatalogFiles() fs.FS {
	return catalog.EmbeddedFS()
}

// OpenAPIDocument returns the contract of the JSON print endpoint as YAML.
func OpenAPIDocument() []byte {
	return apispec.Raw()
}
