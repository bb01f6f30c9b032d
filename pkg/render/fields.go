package render

import "github.com/goliatone/go-lessonplan/pkg/form"

// Input names shared by page renderers and request decoders.
const (
	FieldName           = "name"
	FieldDisabilityType = "disabilityType"
	FieldTraits         = "traits"
	FieldBehaviorNotes  = "behaviorNotes"
	FieldGrade          = "grade"
	FieldSubjects       = "subjects"
	FieldTopic          = "topic"
	FieldTeachingModel  = "teachingModel"
	FieldHighContrast   = "highContrast"
)

// Submit button names. The button value carries the toggled option.
const (
	ActionToggleTrait    = string(form.OpToggleTrait)
	ActionToggleSubject  = string(form.OpToggleSubject)
	ActionToggleContrast = string(form.OpToggleContrast)
)

// ActionRefresh names the page's default submit button. It re-renders the
// posted state without toggling anything, so implicit submission (Enter in a
// text input) never flips a selection.
const ActionRefresh = "refresh"
