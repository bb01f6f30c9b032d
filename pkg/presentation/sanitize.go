package presentation

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// sanitizeMarkup cleans catalog copy that may carry inline markup (ad
// banners). Scripts, handlers and unsafe URLs are removed; the result is
// emitted unescaped by the page template.
func sanitizeMarkup(raw string) string {
	if raw == "" {
		return ""
	}
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.UGCPolicy()
		markupPolicy.RequireNoReferrerOnLinks(true)
		markupPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	})
	return markupPolicy.Sanitize(raw)
}
