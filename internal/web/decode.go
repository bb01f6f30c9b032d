package web

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/render"
)

// fieldCatalog carries the catalog name between submissions.
const fieldCatalog = "catalog"

// snapshotFromForm reads the submitted state. Selections come from the
// hidden inputs in the order the page emitted them.
func snapshotFromForm(values url.Values) form.Snapshot {
	contrast, _ := strconv.ParseBool(strings.TrimSpace(values.Get(render.FieldHighContrast)))
	return form.Snapshot{
		Name:           values.Get(render.FieldName),
		DisabilityType: values.Get(render.FieldDisabilityType),
		Traits:         nonEmpty(values[render.FieldTraits]),
		BehaviorNotes:  values.Get(render.FieldBehaviorNotes),
		Grade:          values.Get(render.FieldGrade),
		Subjects:       nonEmpty(values[render.FieldSubjects]),
		Topic:          values.Get(render.FieldTopic),
		TeachingModel:  values.Get(render.FieldTeachingModel),
		HighContrast:   contrast,
	}
}

// eventFromForm returns the toggle carried by the pressed button, if any.
func eventFromForm(values url.Values) (form.Event, bool) {
	switch {
	case values.Has(render.ActionToggleTrait):
		return form.Event{Op: form.OpToggleTrait, Value: values.Get(render.ActionToggleTrait)}, true
	case values.Has(render.ActionToggleSubject):
		return form.Event{Op: form.OpToggleSubject, Value: values.Get(render.ActionToggleSubject)}, true
	case values.Has(render.ActionToggleContrast):
		return form.Event{Op: form.OpToggleContrast}, true
	default:
		return form.Event{}, false
	}
}

func nonEmpty(values []string) []string {
	var out []string
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}
	return out
}
