package printdoc

import (
	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/form"
)

// View is the rendered form as the document sees it: a heading and the
// profile sections in form order.
type View struct {
	Lang     string    `json:"lang"`
	Heading  string    `json:"heading"`
	Sections []Section `json:"sections"`
}

// Section is one labelled entry. Multi-valued entries use Items; scalar
// entries use Value.
type Section struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Value string   `json:"value,omitempty"`
	Items []string `json:"items,omitempty"`
	// Multiline marks free text whose line breaks must survive printing.
	Multiline bool `json:"multiline,omitempty"`
}

// BuildView maps a form snapshot onto the document view using the catalog
// section titles.
func BuildView(snap form.Snapshot, cat catalog.Catalog) *View {
	labels := cat.Labels
	return &View{
		Lang:    cat.Language,
		Heading: cat.Heading,
		Sections: []Section{
			{Key: "name", Label: labels.Name.Title, Value: snap.Name},
			{Key: "disabilityType", Label: labels.DisabilityType.Title, Value: snap.DisabilityType},
			{Key: "traits", Label: labels.Traits.Title, Items: cloneItems(snap.Traits)},
			{Key: "behaviorNotes", Label: labels.BehaviorNotes.Title, Value: snap.BehaviorNotes, Multiline: true},
			{Key: "grade", Label: labels.Grade.Title, Value: snap.Grade},
			{Key: "subjects", Label: labels.Subjects.Title, Items: cloneItems(snap.Subjects)},
			{Key: "topic", Label: labels.Topic.Title, Value: snap.Topic},
			{Key: "teachingModel", Label: labels.TeachingModel.Title, Value: snap.TeachingModel},
		},
	}
}

// Section returns the section registered under key.
func (v *View) Section(key string) (Section, bool) {
	if v == nil {
		return Section{}, false
	}
	for _, section := range v.Sections {
		if section.Key == key {
			return section, true
		}
	}
	return Section{}, false
}

func cloneItems(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
