package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/printdoc"
	"github.com/goliatone/go-lessonplan/pkg/render"
)

// RendererName is the registry name of the terminal session.
const RendererName = "tui"

const (
	doneOption  = "✓ Done"
	checkedBox  = "[x] "
	uncheckBox  = "[ ] "
	traitsPage  = 10
	defaultAck  = "OK"
	invalidPick = "Invalid %s selection"
)

// Session drives one form through terminal prompts. It implements
// render.Renderer: Render seeds the prompts from a snapshot and returns the
// edited snapshot serialized per the output format.
type Session struct {
	driver       PromptDriver
	catalog      catalog.Catalog
	outputFormat OutputFormat
	bridge       printdoc.Bridge
	style        printdoc.PageStyle
	theme        Theme
	printer      *printdoc.Printer
}

var _ render.Renderer = (*Session)(nil)

// New constructs a session with defaults (survey driver, default catalog,
// JSON output, no print bridge).
func New(options ...Option) (*Session, error) {
	s := &Session{
		outputFormat: OutputFormatJSON,
		style:        printdoc.DefaultPageStyle(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	if s.catalog.Language == "" {
		s.catalog = catalog.Default()
	}
	s.style = s.style.WithFontFamily(s.catalog.Document.FontFamily)
	s.printer = printdoc.NewPrinter(s.bridge, s.style)
	return s, nil
}

// Name reports the renderer identifier.
func (s *Session) Name() string {
	return RendererName
}

// ContentType reports the serialization format used by Render.
func (s *Session) ContentType() string {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Printer exposes the print handle bound to the last completed run.
func (s *Session) Printer() *printdoc.Printer {
	return s.printer
}

// Run prompts for every field of a fresh form and returns the final
// snapshot.
func (s *Session) Run(ctx context.Context) (form.Snapshot, error) {
	return s.run(ctx, form.NewState(s.catalog))
}

// Render prompts starting from snap and serializes the result.
func (s *Session) Render(ctx context.Context, snap form.Snapshot, _ render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	state, err := form.Restore(snap)
	if err != nil {
		return nil, fmt.Errorf("tui: restore state: %w", err)
	}
	final, err := s.run(ctx, state)
	if err != nil {
		return nil, err
	}
	return s.serialize(final)
}

func (s *Session) run(ctx context.Context, state *form.State) (form.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return form.Snapshot{}, err
	}
	if s.driver == nil {
		return form.Snapshot{}, errors.New("tui: prompt driver is nil")
	}

	cat := s.catalog
	labels := cat.Labels
	f := form.New(cat, form.WithState(state), form.WithNotifier(s.notifier()))
	st := f.State()

	name, err := s.driver.Input(ctx, InputConfig{
		Message: labels.Name.Title,
		Default: st.Name(),
		Help:    labels.Name.Tooltip,
	})
	if err != nil {
		return form.Snapshot{}, err
	}
	st.SetName(name)

	disability, err := s.choose(ctx, labels.DisabilityType, cat.DisabilityTypes, st.DisabilityType())
	if err != nil {
		return form.Snapshot{}, err
	}
	st.SetDisabilityType(disability)

	if err := s.promptTraits(ctx, f); err != nil {
		return form.Snapshot{}, err
	}

	notes, err := s.driver.TextArea(ctx, TextAreaConfig{
		Message: labels.BehaviorNotes.Title,
		Default: st.BehaviorNotes(),
		Help:    labels.BehaviorNotes.Tooltip,
	})
	if err != nil {
		return form.Snapshot{}, err
	}
	st.SetBehaviorNotes(notes)

	grade, err := s.choose(ctx, labels.Grade, cat.Grades, st.Grade())
	if err != nil {
		return form.Snapshot{}, err
	}
	st.SetGrade(grade)

	if err := s.promptSubjects(ctx, f); err != nil {
		return form.Snapshot{}, err
	}

	topic, err := s.driver.Input(ctx, InputConfig{
		Message: labels.Topic.Title,
		Default: st.Topic(),
		Help:    labels.Topic.Tooltip,
	})
	if err != nil {
		return form.Snapshot{}, err
	}
	st.SetTopic(topic)

	model, err := s.choose(ctx, labels.TeachingModel, cat.TeachingModels, st.TeachingModel())
	if err != nil {
		return form.Snapshot{}, err
	}
	st.SetTeachingModel(model)

	snap := f.Snapshot()
	s.printer.Mount(printdoc.BuildView(snap, cat))
	if s.bridge == nil {
		return snap, nil
	}

	doPrint, err := s.driver.Confirm(ctx, ConfirmConfig{
		Message: labels.Print.Title,
		Default: true,
		Help:    labels.Print.Tooltip,
	})
	if err != nil {
		return form.Snapshot{}, err
	}
	if doPrint {
		if err := s.printer.Print(ctx, f.Title()); err != nil {
			return form.Snapshot{}, fmt.Errorf("tui: print: %w", err)
		}
	}
	return snap, nil
}

// promptTraits shows the trait list as a checklist; every pick toggles one
// trait until the user chooses the done entry.
func (s *Session) promptTraits(ctx context.Context, f *form.Form) error {
	cat := s.catalog
	st := f.State()
	last := 0

	for {
		options := make([]string, 0, len(cat.Traits)+1)
		for _, trait := range cat.Traits {
			mark := uncheckBox
			if st.HasTrait(trait) {
				mark = checkedBox
			}
			options = append(options, mark+trait)
		}
		options = append(options, doneOption)

		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      fmt.Sprintf("%s (%d/%d)", cat.Labels.Traits.Title, len(st.Traits()), form.MaxTraits),
			Options:      options,
			DefaultIndex: last,
			Help:         cat.Labels.Traits.Tooltip,
			PageSize:     traitsPage,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(options) {
			s.info(ctx, fmt.Sprintf(invalidPick, cat.Labels.Traits.Title))
			continue
		}
		if idx == len(cat.Traits) {
			return nil
		}
		last = idx
		if err := f.ToggleTrait(ctx, cat.Traits[idx]); err != nil {
			return err
		}
	}
}

// promptSubjects applies the multi-select result as toggles so subjects go
// through the same selection rules as clicks.
func (s *Session) promptSubjects(ctx context.Context, f *form.Form) error {
	cat := s.catalog
	st := f.State()

	var defaults []int
	for i, subject := range cat.Subjects {
		if st.HasSubject(subject) {
			defaults = append(defaults, i)
		}
	}
	picked, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  cat.Labels.Subjects.Title,
		Options:  cat.Subjects,
		Defaults: defaults,
		Help:     cat.Labels.Subjects.Tooltip,
	})
	if err != nil {
		return err
	}

	want := make(map[string]bool, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(cat.Subjects) {
			want[cat.Subjects[idx]] = true
		}
	}
	for _, subject := range cat.Subjects {
		if want[subject] != st.HasSubject(subject) {
			f.ToggleSubject(subject)
		}
	}
	return nil
}

func (s *Session) choose(ctx context.Context, text catalog.Control, options []string, current string) (string, error) {
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      text.Title,
			Options:      options,
			DefaultIndex: indexOf(options, current),
			Help:         text.Tooltip,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) {
			s.info(ctx, fmt.Sprintf(invalidPick, text.Title))
			continue
		}
		return options[idx], nil
	}
}

// notifier turns the trait-limit notice into a single-option prompt that
// blocks until acknowledged.
func (s *Session) notifier() form.Notifier {
	ack := s.catalog.Notices.Acknowledge
	if ack == "" {
		ack = defaultAck
	}
	return form.NotifierFunc(func(ctx context.Context, message string) error {
		_, err := s.driver.Select(ctx, SelectConfig{
			Message: s.theme.NoticePrefix + message,
			Options: []string{ack},
		})
		return err
	})
}

func (s *Session) info(ctx context.Context, msg string) {
	_ = s.driver.Info(ctx, s.theme.InfoPrefix+msg)
}

func (s *Session) serialize(snap form.Snapshot) ([]byte, error) {
	switch s.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(encodeForm(snap)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(printdoc.BuildView(snap, s.catalog))), nil
	default:
		return json.Marshal(snap)
	}
}

func encodeForm(snap form.Snapshot) string {
	values := url.Values{}
	values.Set(render.FieldName, snap.Name)
	values.Set(render.FieldDisabilityType, snap.DisabilityType)
	for _, trait := range snap.Traits {
		values.Add(render.FieldTraits, trait)
	}
	values.Set(render.FieldBehaviorNotes, snap.BehaviorNotes)
	values.Set(render.FieldGrade, snap.Grade)
	for _, subject := range snap.Subjects {
		values.Add(render.FieldSubjects, subject)
	}
	values.Set(render.FieldTopic, snap.Topic)
	values.Set(render.FieldTeachingModel, snap.TeachingModel)
	values.Set(render.FieldHighContrast, strconv.FormatBool(snap.HighContrast))
	return values.Encode()
}

func prettyPrint(view *printdoc.View) string {
	var b strings.Builder
	if view.Heading != "" {
		fmt.Fprintf(&b, "%s\n", view.Heading)
	}
	for _, section := range view.Sections {
		value := section.Value
		if len(section.Items) > 0 {
			value = strings.Join(section.Items, ", ")
		}
		fmt.Fprintf(&b, "%s: %s\n", section.Label, value)
	}
	return b.String()
}
