package form

import (
	"errors"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
)

// MaxTraits caps the number of traits a profile may carry.
const MaxTraits = 3

// ErrTraitLimit is returned by State.ToggleTrait when adding a trait would
// exceed MaxTraits. The state is left unchanged.
var ErrTraitLimit = errors.New("form: at most 3 traits can be selected")

// State is the single model behind the form. The zero value is usable but has
// empty enum selections; use NewState to seed catalog defaults.
type State struct {
	name           string
	disabilityType string
	traits         []string
	behaviorNotes  string
	grade          string
	subjects       []string
	topic          string
	teachingModel  string
	highContrast   bool
}

// Snapshot is a detached, exported copy of State for renderers and encoders.
type Snapshot struct {
	Name           string   `json:"name"`
	DisabilityType string   `json:"disabilityType"`
	Traits         []string `json:"traits"`
	BehaviorNotes  string   `json:"behaviorNotes"`
	Grade          string   `json:"grade"`
	Subjects       []string `json:"subjects"`
	Topic          string   `json:"topic"`
	TeachingModel  string   `json:"teachingModel"`
	HighContrast   bool     `json:"highContrast"`
}

// NewState returns a fresh state with every enum set to the first catalog
// value, empty selections and high contrast off.
func NewState(cat catalog.Catalog) *State {
	return &State{
		disabilityType: cat.DefaultDisabilityType(),
		grade:          cat.DefaultGrade(),
		teachingModel:  cat.DefaultTeachingModel(),
	}
}

func (s *State) SetName(value string)           { s.name = value }
func (s *State) SetDisabilityType(value string) { s.disabilityType = value }
func (s *State) SetBehaviorNotes(value string)  { s.behaviorNotes = value }
func (s *State) SetGrade(value string)          { s.grade = value }
func (s *State) SetTopic(value string)          { s.topic = value }
func (s *State) SetTeachingModel(value string)  { s.teachingModel = value }

func (s *State) Name() string           { return s.name }
func (s *State) DisabilityType() string { return s.disabilityType }
func (s *State) BehaviorNotes() string  { return s.behaviorNotes }
func (s *State) Grade() string          { return s.grade }
func (s *State) Topic() string          { return s.topic }
func (s *State) TeachingModel() string  { return s.teachingModel }
func (s *State) HighContrast() bool     { return s.highContrast }

// Traits returns the selected traits in selection order.
func (s *State) Traits() []string { return cloneStrings(s.traits) }

// Subjects returns the selected subjects.
func (s *State) Subjects() []string { return cloneStrings(s.subjects) }

// HasTrait reports whether candidate is currently selected.
func (s *State) HasTrait(candidate string) bool { return indexOf(s.traits, candidate) >= 0 }

// HasSubject reports whether candidate is currently selected.
func (s *State) HasSubject(candidate string) bool { return indexOf(s.subjects, candidate) >= 0 }

// ToggleTrait removes candidate when selected and appends it otherwise. An
// addition beyond MaxTraits is rejected with ErrTraitLimit; removal always
// succeeds, including at the cap.
func (s *State) ToggleTrait(candidate string) error {
	if idx := indexOf(s.traits, candidate); idx >= 0 {
		s.traits = removeAt(s.traits, idx)
		return nil
	}
	if len(s.traits) >= MaxTraits {
		return ErrTraitLimit
	}
	s.traits = append(s.traits, candidate)
	return nil
}

// ToggleSubject adds candidate when absent and removes it when present.
func (s *State) ToggleSubject(candidate string) {
	if idx := indexOf(s.subjects, candidate); idx >= 0 {
		s.subjects = removeAt(s.subjects, idx)
		return
	}
	s.subjects = append(s.subjects, candidate)
}

// ToggleContrast flips the high-contrast flag.
func (s *State) ToggleContrast() {
	s.highContrast = !s.highContrast
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	out := *s
	out.traits = cloneStrings(s.traits)
	out.subjects = cloneStrings(s.subjects)
	return &out
}

// Snapshot returns a detached copy suitable for rendering.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Name:           s.name,
		DisabilityType: s.disabilityType,
		Traits:         s.Traits(),
		BehaviorNotes:  s.behaviorNotes,
		Grade:          s.grade,
		Subjects:       s.Subjects(),
		Topic:          s.topic,
		TeachingModel:  s.teachingModel,
		HighContrast:   s.highContrast,
	}
}

// Restore rebuilds a State from a snapshot, replaying trait selections through
// ToggleTrait so the cap holds for untrusted input. Duplicate traits and
// subjects are collapsed; traits past the cap return ErrTraitLimit.
func Restore(snap Snapshot) (*State, error) {
	s := &State{}
	s.SetName(snap.Name)
	s.SetDisabilityType(snap.DisabilityType)
	s.SetBehaviorNotes(snap.BehaviorNotes)
	s.SetGrade(snap.Grade)
	s.SetTopic(snap.Topic)
	s.SetTeachingModel(snap.TeachingModel)
	s.highContrast = snap.HighContrast

	for _, trait := range snap.Traits {
		if s.HasTrait(trait) {
			continue
		}
		if err := s.ToggleTrait(trait); err != nil {
			return nil, err
		}
	}
	for _, subject := range snap.Subjects {
		if !s.HasSubject(subject) {
			s.ToggleSubject(subject)
		}
	}
	return s, nil
}

func indexOf(values []string, value string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}

func removeAt(values []string, idx int) []string {
	out := make([]string, 0, len(values)-1)
	out = append(out, values[:idx]...)
	return append(out, values[idx+1:]...)
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
