package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-lessonplan/pkg/form"
)

// Hidden input names used to round-trip selection state through the page.
const (
	HiddenTraits       = FieldTraits
	HiddenSubjects     = FieldSubjects
	HiddenHighContrast = FieldHighContrast
)

// HiddenField represents a hidden input emitted alongside the visible
// controls.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name, value string) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: value,
	}
}

// StateHiddenFields encodes the parts of the snapshot that have no visible
// input of their own: selected traits (in selection order), selected subjects
// and the contrast flag.
func StateHiddenFields(snap form.Snapshot) []HiddenField {
	fields := make([]HiddenField, 0, len(snap.Traits)+len(snap.Subjects)+1)
	for _, trait := range snap.Traits {
		fields = append(fields, Hidden(HiddenTraits, trait))
	}
	for _, subject := range snap.Subjects {
		fields = append(fields, Hidden(HiddenSubjects, subject))
	}
	fields = append(fields, Hidden(HiddenHighContrast, strconv.FormatBool(snap.HighContrast)))
	return fields
}

// MergeHiddenFields appends extras to base, dropping entries with empty names.
func MergeHiddenFields(base []HiddenField, extras ...HiddenField) []HiddenField {
	out := make([]HiddenField, 0, len(base)+len(extras))
	for _, field := range append(append([]HiddenField(nil), base...), extras...) {
		if strings.TrimSpace(field.Name) == "" {
			continue
		}
		out = append(out, field)
	}
	return out
}
