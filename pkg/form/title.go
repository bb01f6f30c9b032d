package form

import (
	"strings"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
)

// DocumentTitle derives "{name-or-placeholder}_{suffix}" from the catalog's
// document copy. Empty or whitespace-only names use the placeholder.
func DocumentTitle(name string, cat catalog.Catalog) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		trimmed = cat.Document.TitlePlaceholder
	}
	return trimmed + "_" + cat.Document.TitleSuffix
}
