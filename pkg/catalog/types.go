package catalog

import "strings"

// Catalog holds the fixed option tables and copy used by every front end. A
// process serves exactly one catalog at a time; the tables are configuration
// and never derived from code.
type Catalog struct {
	// Name identifies the catalog inside a Store. Loaders default it to the
	// file's base name when the document omits it.
	Name string `json:"name" yaml:"name"`
	// Language is a BCP 47 tag used for the document and page `lang`
	// attribute.
	Language string `json:"language" yaml:"language"`
	// Heading is the page and document heading.
	Heading string `json:"heading" yaml:"heading"`

	DisabilityTypes []string `json:"disabilityTypes" yaml:"disabilityTypes"`
	Traits          []string `json:"traits" yaml:"traits"`
	Grades          []string `json:"grades" yaml:"grades"`
	Subjects        []string `json:"subjects" yaml:"subjects"`
	TeachingModels  []string `json:"teachingModels" yaml:"teachingModels"`

	Labels   Labels         `json:"labels" yaml:"labels"`
	Notices  Notices        `json:"notices" yaml:"notices"`
	Document DocumentConfig `json:"document" yaml:"document"`
	Shell    ShellConfig    `json:"shell" yaml:"shell"`
}

// Control describes the copy attached to one rendered control: the section
// title, its tooltip, the accessible label and an optional placeholder.
type Control struct {
	Title       string `json:"title" yaml:"title"`
	Tooltip     string `json:"tooltip" yaml:"tooltip"`
	AriaLabel   string `json:"ariaLabel" yaml:"ariaLabel"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// Labels groups the per-control copy in form order.
type Labels struct {
	Name           Control `json:"name" yaml:"name"`
	DisabilityType Control `json:"disabilityType" yaml:"disabilityType"`
	Traits         Control `json:"traits" yaml:"traits"`
	BehaviorNotes  Control `json:"behaviorNotes" yaml:"behaviorNotes"`
	Grade          Control `json:"grade" yaml:"grade"`
	Subjects       Control `json:"subjects" yaml:"subjects"`
	Topic          Control `json:"topic" yaml:"topic"`
	TeachingModel  Control `json:"teachingModel" yaml:"teachingModel"`
	Print          Control `json:"print" yaml:"print"`
}

// Notices holds user-facing blocking messages.
type Notices struct {
	TraitLimit  string `json:"traitLimit" yaml:"traitLimit"`
	Acknowledge string `json:"acknowledge" yaml:"acknowledge"`
}

// DocumentConfig drives the printable document title. FontFamily, when set,
// must end in the generic serif family.
type DocumentConfig struct {
	TitlePlaceholder string `json:"titlePlaceholder" yaml:"titlePlaceholder"`
	TitleSuffix      string `json:"titleSuffix" yaml:"titleSuffix"`
	FontFamily       string `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
}

// ShellConfig carries the copy for the decorative side columns.
type ShellConfig struct {
	ContrastOn    string `json:"contrastOn" yaml:"contrastOn"`
	ContrastOff   string `json:"contrastOff" yaml:"contrastOff"`
	VoiceGuidance string `json:"voiceGuidance" yaml:"voiceGuidance"`
	AdTitle       string `json:"adTitle" yaml:"adTitle"`
	AdBody        string `json:"adBody" yaml:"adBody"`
	AdSlots       int    `json:"adSlots" yaml:"adSlots"`
}

// DefaultDisabilityType returns the first configured disability type.
func (c Catalog) DefaultDisabilityType() string { return first(c.DisabilityTypes) }

// DefaultGrade returns the first configured grade.
func (c Catalog) DefaultGrade() string { return first(c.Grades) }

// DefaultTeachingModel returns the first configured teaching model.
func (c Catalog) DefaultTeachingModel() string { return first(c.TeachingModels) }

// HasTrait reports whether value is one of the configured traits.
func (c Catalog) HasTrait(value string) bool { return contains(c.Traits, value) }

// HasSubject reports whether value is one of the configured subjects.
func (c Catalog) HasSubject(value string) bool { return contains(c.Subjects, value) }

// Clone returns a deep copy so callers can hold on to a catalog while the
// store swaps in a reloaded one.
func (c Catalog) Clone() Catalog {
	out := c
	out.DisabilityTypes = cloneStrings(c.DisabilityTypes)
	out.Traits = cloneStrings(c.Traits)
	out.Grades = cloneStrings(c.Grades)
	out.Subjects = cloneStrings(c.Subjects)
	out.TeachingModels = cloneStrings(c.TeachingModels)
	return out
}

// IsSerifFamily reports whether family is a CSS font list whose generic
// fallback is serif, e.g. `'Batang', serif`. Lists that could close the
// surrounding declaration or style element are rejected.
func IsSerifFamily(family string) bool {
	if strings.ContainsAny(family, "<>{};") {
		return false
	}
	parts := strings.Split(family, ",")
	last := strings.Trim(strings.TrimSpace(parts[len(parts)-1]), `'"`)
	return strings.EqualFold(last, "serif")
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
