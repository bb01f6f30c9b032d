package tui

import (
	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/printdoc"
)

// OutputFormat controls how Render serializes the final snapshot.
type OutputFormat string

const (
	// OutputFormatJSON emits the snapshot as application/json.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits the same field names the web form posts.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits the document sections as plain text.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional message prefixes.
type Theme struct {
	InfoPrefix   string
	NoticePrefix string
}

// Option configures the terminal session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithCatalog selects the option tables and copy.
func WithCatalog(cat catalog.Catalog) Option {
	return func(s *Session) {
		s.catalog = cat
	}
}

// WithOutputFormat selects the serialization used by Render.
func WithOutputFormat(format OutputFormat) Option {
	return func(s *Session) {
		if format != "" {
			s.outputFormat = format
		}
	}
}

// WithBridge sets where the print action sends the document. Without one the
// print step is skipped.
func WithBridge(bridge printdoc.Bridge) Option {
	return func(s *Session) {
		s.bridge = bridge
	}
}

// WithPageStyle overrides the print typography. Page geometry is fixed.
func WithPageStyle(style printdoc.PageStyle) Option {
	return func(s *Session) {
		s.style = style
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}
