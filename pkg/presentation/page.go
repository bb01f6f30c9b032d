package presentation

import (
	"strconv"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/render"
)

// Control kinds emitted by BuildPage.
const (
	KindText        = "text"
	KindTextarea    = "textarea"
	KindSelect      = "select"
	KindToggleGroup = "toggle-group"
	KindButton      = "button"
)

// Choice is one option of a select or toggle group.
type Choice struct {
	Value     string `json:"value"`
	Selected  bool   `json:"selected"`
	AriaLabel string `json:"ariaLabel"`
}

// Control is a single labelled control on the page.
type Control struct {
	ID          string   `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Tooltip     string   `json:"tooltip,omitempty"`
	AriaLabel   string   `json:"ariaLabel"`
	Placeholder string   `json:"placeholder,omitempty"`
	Value       string   `json:"value,omitempty"`
	Choices     []Choice `json:"choices,omitempty"`
	Pressed     bool     `json:"pressed,omitempty"`
	Disabled    bool     `json:"disabled,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

// Column is a decorative side column.
type Column struct {
	Side     string    `json:"side"`
	Controls []Control `json:"controls"`
	Ads      []Ad      `json:"ads"`
}

// Ad is an advertisement placeholder. Body is catalog markup that has
// already been sanitized.
type Ad struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Page is the on-screen view model: the central form plus the two side
// columns.
type Page struct {
	Lang         string               `json:"lang"`
	Heading      string               `json:"heading"`
	Title        string               `json:"title"`
	HighContrast bool                 `json:"highContrast"`
	Fields       []Control            `json:"fields"`
	Print        Control              `json:"print"`
	Left         Column               `json:"left"`
	Right        Column               `json:"right"`
	Notices      []string             `json:"notices,omitempty"`
	Acknowledge  string               `json:"acknowledge"`
	FormErrors   []string             `json:"formErrors,omitempty"`
	Hidden       []render.HiddenField `json:"hidden"`

	// DefaultAction names the first submit button of the form, which
	// browsers press on implicit submission.
	DefaultAction string `json:"defaultAction"`
}

// Controls returns every interactive control on the page, side columns
// included, in document order.
func (p Page) Controls() []Control {
	out := make([]Control, 0, len(p.Fields)+len(p.Left.Controls)+len(p.Right.Controls)+1)
	out = append(out, p.Left.Controls...)
	out = append(out, p.Fields...)
	out = append(out, p.Print)
	out = append(out, p.Right.Controls...)
	return out
}

// BuildPage assembles the page model for snap.
func BuildPage(snap form.Snapshot, cat catalog.Catalog, opts render.RenderOptions) Page {
	labels := cat.Labels
	mapping := render.MapErrorPayload(opts.Errors)
	errs := mapping.Fields

	page := Page{
		Lang:         cat.Language,
		Heading:      cat.Heading,
		Title:        opts.Title,
		HighContrast: snap.HighContrast,
		Fields: []Control{
			textControl(render.FieldName, KindText, labels.Name, snap.Name, errs),
			selectControl(render.FieldDisabilityType, labels.DisabilityType, cat.DisabilityTypes, snap.DisabilityType, errs),
			toggleGroup(render.FieldTraits, render.ActionToggleTrait, labels.Traits, cat.Traits, snap.Traits, errs),
			textControl(render.FieldBehaviorNotes, KindTextarea, labels.BehaviorNotes, snap.BehaviorNotes, errs),
			selectControl(render.FieldGrade, labels.Grade, cat.Grades, snap.Grade, errs),
			toggleGroup(render.FieldSubjects, render.ActionToggleSubject, labels.Subjects, cat.Subjects, snap.Subjects, errs),
			textControl(render.FieldTopic, KindText, labels.Topic, snap.Topic, errs),
			selectControl(render.FieldTeachingModel, labels.TeachingModel, cat.TeachingModels, snap.TeachingModel, errs),
		},
		Print: Control{
			ID:        "lp-print",
			Kind:      KindButton,
			Name:      "print",
			Label:     labels.Print.Title,
			Tooltip:   labels.Print.Tooltip,
			AriaLabel: labels.Print.AriaLabel,
		},
		Left: Column{
			Side:     "left",
			Controls: []Control{contrastButton(cat.Shell, snap.HighContrast)},
			Ads:      ads(cat.Shell),
		},
		Right: Column{
			Side: "right",
			Controls: []Control{{
				ID:        "lp-voice",
				Kind:      KindButton,
				Name:      "voice",
				Label:     cat.Shell.VoiceGuidance,
				AriaLabel: cat.Shell.VoiceGuidance,
				Disabled:  true,
			}},
			Ads: ads(cat.Shell),
		},
		Notices:     render.MergeNotices(opts.Notices),
		Acknowledge: cat.Notices.Acknowledge,
		Hidden:      render.MergeHiddenFields(render.StateHiddenFields(snap), opts.Hidden...),

		DefaultAction: render.ActionRefresh,
	}
	if page.Title == "" {
		page.Title = form.DocumentTitle(snap.Name, cat)
	}
	if page.Acknowledge == "" {
		page.Acknowledge = "OK"
	}
	page.FormErrors = mapping.Form
	return page
}

func textControl(name, kind string, text catalog.Control, value string, errs map[string][]string) Control {
	return Control{
		ID:          controlID(name),
		Kind:        kind,
		Name:        name,
		Label:       text.Title,
		Tooltip:     text.Tooltip,
		AriaLabel:   text.AriaLabel,
		Placeholder: text.Placeholder,
		Value:       value,
		Errors:      fieldErrors(errs, name),
	}
}

func selectControl(name string, text catalog.Control, values []string, selected string, errs map[string][]string) Control {
	choices := make([]Choice, 0, len(values))
	for _, value := range values {
		choices = append(choices, Choice{Value: value, Selected: value == selected, AriaLabel: value})
	}
	return Control{
		ID:        controlID(name),
		Kind:      KindSelect,
		Name:      name,
		Label:     text.Title,
		Tooltip:   text.Tooltip,
		AriaLabel: text.AriaLabel,
		Value:     selected,
		Choices:   choices,
		Errors:    fieldErrors(errs, name),
	}
}

// toggleGroup renders each option as a submit button named after the toggle
// action; aria-checked mirrors membership.
func toggleGroup(field, action string, text catalog.Control, values, selected []string, errs map[string][]string) Control {
	chosen := make(map[string]struct{}, len(selected))
	for _, value := range selected {
		chosen[value] = struct{}{}
	}
	choices := make([]Choice, 0, len(values))
	for _, value := range values {
		_, ok := chosen[value]
		choices = append(choices, Choice{Value: value, Selected: ok, AriaLabel: value})
	}
	return Control{
		ID:        controlID(field),
		Kind:      KindToggleGroup,
		Name:      action,
		Label:     text.Title,
		Tooltip:   text.Tooltip,
		AriaLabel: text.AriaLabel,
		Choices:   choices,
		Errors:    fieldErrors(errs, field),
	}
}

func contrastButton(shell catalog.ShellConfig, enabled bool) Control {
	label := shell.ContrastOn
	if enabled {
		label = shell.ContrastOff
	}
	return Control{
		ID:        "lp-contrast",
		Kind:      KindButton,
		Name:      render.ActionToggleContrast,
		Label:     label,
		AriaLabel: label,
		Value:     strconv.FormatBool(!enabled),
		Pressed:   enabled,
	}
}

func ads(shell catalog.ShellConfig) []Ad {
	if shell.AdSlots <= 0 {
		return nil
	}
	out := make([]Ad, shell.AdSlots)
	for i := range out {
		out[i] = Ad{Title: shell.AdTitle, Body: sanitizeMarkup(shell.AdBody)}
	}
	return out
}

func fieldErrors(errs map[string][]string, field string) []string {
	if len(errs) == 0 {
		return nil
	}
	return errs[field]
}

func controlID(name string) string {
	return "lp-" + name
}
