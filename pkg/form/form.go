package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
)

// Op names a single user input event.
type Op string

const (
	OpSetName           Op = "set-name"
	OpSetDisabilityType Op = "set-disability-type"
	OpSetBehaviorNotes  Op = "set-behavior-notes"
	OpSetGrade          Op = "set-grade"
	OpSetTopic          Op = "set-topic"
	OpSetTeachingModel  Op = "set-teaching-model"
	OpToggleTrait       Op = "toggle-trait"
	OpToggleSubject     Op = "toggle-subject"
	OpToggleContrast    Op = "toggle-contrast"
)

// Event is one discrete input: a keystroke batch, a click, a selection.
type Event struct {
	Op    Op     `json:"op"`
	Value string `json:"value,omitempty"`
}

// ErrUnknownOp is returned by Apply for events it cannot dispatch.
var ErrUnknownOp = errors.New("form: unknown event op")

// Option configures a Form.
type Option func(*Form)

// WithNotifier sets the capability used for blocking notices. Without one,
// notices are dropped.
func WithNotifier(notifier Notifier) Option {
	return func(f *Form) {
		if notifier != nil {
			f.notifier = notifier
		}
	}
}

// WithState seeds the form with an existing state instead of catalog
// defaults. The form takes ownership of state.
func WithState(state *State) Option {
	return func(f *Form) {
		if state != nil {
			f.state = state
		}
	}
}

// Form owns a State and applies the selection policy to it, surfacing the
// trait cap through a Notifier.
type Form struct {
	state    *State
	catalog  catalog.Catalog
	notifier Notifier
}

// New constructs a Form over a fresh State seeded from cat.
func New(cat catalog.Catalog, options ...Option) *Form {
	f := &Form{
		catalog:  cat,
		notifier: discardNotifier{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.state == nil {
		f.state = NewState(cat)
	}
	return f
}

// State exposes the owned state for direct scalar updates.
func (f *Form) State() *State { return f.state }

// Catalog returns the catalog the form was built with.
func (f *Form) Catalog() catalog.Catalog { return f.catalog }

// Snapshot returns a detached copy of the current state.
func (f *Form) Snapshot() Snapshot { return f.state.Snapshot() }

// Title returns the document title for the current name.
func (f *Form) Title() string { return DocumentTitle(f.state.Name(), f.catalog) }

// ToggleTrait flips candidate's membership. When the cap rejects an addition
// the state stays unchanged and the catalog's trait-limit notice is sent once
// through the notifier; the call blocks until the notifier returns. Only
// notifier failures are returned.
func (f *Form) ToggleTrait(ctx context.Context, candidate string) error {
	err := f.state.ToggleTrait(candidate)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrTraitLimit) {
		return err
	}
	if notifyErr := f.notifier.Notify(ctx, f.traitLimitNotice()); notifyErr != nil {
		return fmt.Errorf("form: notify trait limit: %w", notifyErr)
	}
	return nil
}

// ToggleSubject flips candidate's membership. There is no cap.
func (f *Form) ToggleSubject(candidate string) { f.state.ToggleSubject(candidate) }

// ToggleContrast flips the high-contrast flag.
func (f *Form) ToggleContrast() { f.state.ToggleContrast() }

// Apply dispatches a single event.
func (f *Form) Apply(ctx context.Context, event Event) error {
	switch event.Op {
	case OpSetName:
		f.state.SetName(event.Value)
	case OpSetDisabilityType:
		f.state.SetDisabilityType(event.Value)
	case OpSetBehaviorNotes:
		f.state.SetBehaviorNotes(event.Value)
	case OpSetGrade:
		f.state.SetGrade(event.Value)
	case OpSetTopic:
		f.state.SetTopic(event.Value)
	case OpSetTeachingModel:
		f.state.SetTeachingModel(event.Value)
	case OpToggleTrait:
		return f.ToggleTrait(ctx, event.Value)
	case OpToggleSubject:
		f.ToggleSubject(event.Value)
	case OpToggleContrast:
		f.ToggleContrast()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, event.Op)
	}
	return nil
}

func (f *Form) traitLimitNotice() string {
	if msg := f.catalog.Notices.TraitLimit; msg != "" {
		return msg
	}
	return ErrTraitLimit.Error()
}
