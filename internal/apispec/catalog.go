package apispec

import (
	"fmt"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/render"
)

// FillDefaults sets empty enum fields to the catalog's first value.
func FillDefaults(snap form.Snapshot, cat catalog.Catalog) form.Snapshot {
	if snap.DisabilityType == "" {
		snap.DisabilityType = cat.DefaultDisabilityType()
	}
	if snap.Grade == "" {
		snap.Grade = cat.DefaultGrade()
	}
	if snap.TeachingModel == "" {
		snap.TeachingModel = cat.DefaultTeachingModel()
	}
	return snap
}

// CheckCatalog reports enum and selection values cat does not list.
func CheckCatalog(snap form.Snapshot, cat catalog.Catalog) error {
	payload := make(map[string][]string)
	enum := func(field, value string, allowed []string) {
		if value != "" && !listed(allowed, value) {
			payload[field] = append(payload[field], fmt.Sprintf("unknown value %q", value))
		}
	}
	enum(render.FieldDisabilityType, snap.DisabilityType, cat.DisabilityTypes)
	enum(render.FieldGrade, snap.Grade, cat.Grades)
	enum(render.FieldTeachingModel, snap.TeachingModel, cat.TeachingModels)
	for _, trait := range snap.Traits {
		enum(render.FieldTraits, trait, cat.Traits)
	}
	for _, subject := range snap.Subjects {
		enum(render.FieldSubjects, subject, cat.Subjects)
	}

	if len(payload) == 0 {
		return nil
	}
	return &ValidationError{Mapping: render.MapErrorPayload(payload)}
}

func listed(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
