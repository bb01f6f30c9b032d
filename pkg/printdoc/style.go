package printdoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
)

// Page geometry of every printed plan.
const (
	PageSize        = "A4"
	PageOrientation = "portrait"
	PageMargin      = "24mm"
)

// DefaultFontFamily lists the serif faces used for printed plans.
const DefaultFontFamily = `'HCR Batang', 'Batang', serif`

// PageStyle holds the print-only typography. Page size, orientation and
// margins are fixed (PageSize, PageOrientation, PageMargin).
type PageStyle struct {
	FontFamily string  `json:"fontFamily"`
	FontSize   string  `json:"fontSize"`
	LineHeight float64 `json:"lineHeight"`
}

// DefaultPageStyle returns serif 11pt at 1.6 line height.
func DefaultPageStyle() PageStyle {
	return PageStyle{
		FontFamily: DefaultFontFamily,
		FontSize:   "11pt",
		LineHeight: 1.6,
	}
}

// WithFontFamily returns a copy using family when it is a serif font list.
// Blank or non-serif lists leave the style unchanged.
func (s PageStyle) WithFontFamily(family string) PageStyle {
	if catalog.IsSerifFamily(family) {
		s.FontFamily = strings.TrimSpace(family)
	}
	return s
}

// CSS renders the @page rule and the print media block.
func (s PageStyle) CSS() string {
	s = s.withDefaults()
	var b strings.Builder
	fmt.Fprintf(&b, "@page { size: %s %s; margin: %s; }\n", PageSize, PageOrientation, PageMargin)
	fmt.Fprintf(&b, "@media print { body { font-family: %s; font-size: %s; line-height: %s; } }",
		s.FontFamily, s.FontSize, strconv.FormatFloat(s.LineHeight, 'f', -1, 64))
	return b.String()
}

func (s PageStyle) withDefaults() PageStyle {
	def := DefaultPageStyle()
	if !catalog.IsSerifFamily(s.FontFamily) {
		s.FontFamily = def.FontFamily
	}
	if s.FontSize == "" {
		s.FontSize = def.FontSize
	}
	if s.LineHeight <= 0 {
		s.LineHeight = def.LineHeight
	}
	return s
}
