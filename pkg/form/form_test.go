package form_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/form"
)

type recordingNotifier struct {
	messages []string
	err      error
}

func (r *recordingNotifier) Notify(_ context.Context, message string) error {
	r.messages = append(r.messages, message)
	return r.err
}

func TestNewState_Defaults(t *testing.T) {
	cat := catalog.Default()
	state := form.NewState(cat)

	want := form.Snapshot{
		DisabilityType: cat.DisabilityTypes[0],
		Grade:          cat.Grades[0],
		TeachingModel:  cat.TeachingModels[0],
	}
	if diff := cmp.Diff(want, state.Snapshot()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestSetters_ReplaceSingleField(t *testing.T) {
	state := form.NewState(catalog.Default())
	before := state.Snapshot()

	state.SetName("Kim")
	state.SetName("Lee")
	state.SetTopic("letters")
	state.SetBehaviorNotes("line one\nline two")
	state.SetGrade("Grade 3")
	state.SetDisabilityType("Developmental delay")
	state.SetTeachingModel("Role-play learning model")

	got := state.Snapshot()
	want := before
	want.Name = "Lee"
	want.Topic = "letters"
	want.BehaviorNotes = "line one\nline two"
	want.Grade = "Grade 3"
	want.DisabilityType = "Developmental delay"
	want.TeachingModel = "Role-play learning model"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleTrait_NeverExceedsCap(t *testing.T) {
	state := &form.State{}
	pool := []string{"A", "B", "C", "D", "E", "F"}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		_ = state.ToggleTrait(pool[rng.Intn(len(pool))])
		if got := len(state.Traits()); got > form.MaxTraits {
			t.Fatalf("step %d: %d traits selected", i, got)
		}
	}
}

func TestToggleTrait_RemovesAtCap(t *testing.T) {
	state := &form.State{}
	for _, trait := range []string{"A", "B", "C"} {
		if err := state.ToggleTrait(trait); err != nil {
			t.Fatalf("add %s: %v", trait, err)
		}
	}

	if err := state.ToggleTrait("B"); err != nil {
		t.Fatalf("remove at cap: %v", err)
	}
	if diff := cmp.Diff([]string{"A", "C"}, state.Traits()); diff != "" {
		t.Fatalf("traits mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleTrait_RejectsFourth(t *testing.T) {
	state := &form.State{}
	for _, trait := range []string{"A", "B", "C"} {
		_ = state.ToggleTrait(trait)
	}

	err := state.ToggleTrait("D")
	if !errors.Is(err, form.ErrTraitLimit) {
		t.Fatalf("expected ErrTraitLimit, got %v", err)
	}
	if diff := cmp.Diff([]string{"A", "B", "C"}, state.Traits()); diff != "" {
		t.Fatalf("traits changed (-want +got):\n%s", diff)
	}
}

func TestToggleTrait_PreservesSelectionOrder(t *testing.T) {
	state := &form.State{}
	for _, trait := range []string{"C", "A", "B"} {
		_ = state.ToggleTrait(trait)
	}
	_ = state.ToggleTrait("A")
	_ = state.ToggleTrait("D")

	if diff := cmp.Diff([]string{"C", "B", "D"}, state.Traits()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestToggleTrait_RepeatedClicksFlipOnce(t *testing.T) {
	state := &form.State{}
	for i := 0; i < 5; i++ {
		_ = state.ToggleTrait("A")
	}
	if !state.HasTrait("A") {
		t.Fatalf("odd number of toggles should leave the trait selected")
	}
	_ = state.ToggleTrait("A")
	if state.HasTrait("A") {
		t.Fatalf("even number of toggles should leave the trait unselected")
	}
}

func TestToggleSubject_IsItsOwnInverse(t *testing.T) {
	state := &form.State{}
	state.ToggleSubject("math")
	before := state.Subjects()

	state.ToggleSubject("reading")
	state.ToggleSubject("reading")
	if diff := cmp.Diff(before, state.Subjects()); diff != "" {
		t.Fatalf("subjects mismatch (-want +got):\n%s", diff)
	}

	state.ToggleSubject("math")
	state.ToggleSubject("math")
	if diff := cmp.Diff(before, state.Subjects()); diff != "" {
		t.Fatalf("subjects mismatch after removing and re-adding (-want +got):\n%s", diff)
	}
}

func TestToggleContrast_DoubleInvocation(t *testing.T) {
	state := &form.State{}
	state.ToggleContrast()
	if !state.HighContrast() {
		t.Fatalf("expected contrast on")
	}
	state.ToggleContrast()
	if state.HighContrast() {
		t.Fatalf("expected contrast restored to off")
	}
}

func TestDocumentTitle(t *testing.T) {
	cat := catalog.Default()
	cases := map[string]string{
		"":      "student_lesson-plan",
		"   \t": "student_lesson-plan",
		"Kim":   "Kim_lesson-plan",
		" Kim ": "Kim_lesson-plan",
	}
	for name, want := range cases {
		if got := form.DocumentTitle(name, cat); got != want {
			t.Fatalf("DocumentTitle(%q) = %q, want %q", name, got, want)
		}
	}

	ko := catalog.MustEmbedded("ko")
	if got := form.DocumentTitle("", ko); got != "학생_수업지도안" {
		t.Fatalf("korean placeholder title = %q", got)
	}
}

func TestForm_TraitLimitNotifiesOnce(t *testing.T) {
	cat := catalog.Default()
	notifier := &recordingNotifier{}
	f := form.New(cat, form.WithNotifier(notifier))
	ctx := context.Background()

	f.State().SetName("Kim")
	for _, trait := range []string{"A", "B", "C"} {
		if err := f.ToggleTrait(ctx, trait); err != nil {
			t.Fatalf("toggle %s: %v", trait, err)
		}
	}
	if err := f.ToggleTrait(ctx, "D"); err != nil {
		t.Fatalf("rejected toggle should not error: %v", err)
	}

	if diff := cmp.Diff([]string{"A", "B", "C"}, f.State().Traits()); diff != "" {
		t.Fatalf("traits mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{cat.Notices.TraitLimit}, notifier.messages); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
	if f.State().Grade() != cat.Grades[0] {
		t.Fatalf("grade should default to first value, got %q", f.State().Grade())
	}
	if f.Title() != "Kim_lesson-plan" {
		t.Fatalf("unexpected title %q", f.Title())
	}
}

func TestForm_NotifierFailureSurfaces(t *testing.T) {
	boom := errors.New("dialog closed")
	f := form.New(catalog.Default(), form.WithNotifier(&recordingNotifier{err: boom}))
	for _, trait := range []string{"A", "B", "C"} {
		_ = f.ToggleTrait(context.Background(), trait)
	}
	if err := f.ToggleTrait(context.Background(), "D"); !errors.Is(err, boom) {
		t.Fatalf("expected notifier error, got %v", err)
	}
}

func TestForm_WithoutNotifierDropsNotice(t *testing.T) {
	f := form.New(catalog.Default())
	for _, trait := range []string{"A", "B", "C", "D"} {
		if err := f.ToggleTrait(context.Background(), trait); err != nil {
			t.Fatalf("toggle %s: %v", trait, err)
		}
	}
	if len(f.State().Traits()) != 3 {
		t.Fatalf("cap not enforced")
	}
}

func TestForm_Apply(t *testing.T) {
	notices := &form.Notices{}
	f := form.New(catalog.Default(), form.WithNotifier(notices))
	ctx := context.Background()

	events := []form.Event{
		{Op: form.OpSetName, Value: "Kim"},
		{Op: form.OpSetGrade, Value: "Grade 2"},
		{Op: form.OpSetTopic, Value: "letters"},
		{Op: form.OpSetBehaviorNotes, Value: "shouts"},
		{Op: form.OpSetDisabilityType, Value: "Learning difficulty"},
		{Op: form.OpSetTeachingModel, Value: "Direct instruction model"},
		{Op: form.OpToggleTrait, Value: "A"},
		{Op: form.OpToggleTrait, Value: "B"},
		{Op: form.OpToggleTrait, Value: "C"},
		{Op: form.OpToggleTrait, Value: "D"},
		{Op: form.OpToggleSubject, Value: "Mathematics"},
		{Op: form.OpToggleContrast},
	}
	for _, event := range events {
		if err := f.Apply(ctx, event); err != nil {
			t.Fatalf("apply %v: %v", event, err)
		}
	}

	want := form.Snapshot{
		Name:           "Kim",
		DisabilityType: "Learning difficulty",
		Traits:         []string{"A", "B", "C"},
		BehaviorNotes:  "shouts",
		Grade:          "Grade 2",
		Subjects:       []string{"Mathematics"},
		Topic:          "letters",
		TeachingModel:  "Direct instruction model",
		HighContrast:   true,
	}
	if diff := cmp.Diff(want, f.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if len(notices.Messages()) != 1 {
		t.Fatalf("expected one notice, got %v", notices.Messages())
	}

	if err := f.Apply(ctx, form.Event{Op: "explode"}); !errors.Is(err, form.ErrUnknownOp) {
		t.Fatalf("expected ErrUnknownOp, got %v", err)
	}
}

func TestRestore(t *testing.T) {
	snap := form.Snapshot{
		Name:     "Kim",
		Traits:   []string{"B", "A", "B"},
		Subjects: []string{"x", "x", "y"},
	}
	state, err := form.Restore(snap)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if diff := cmp.Diff([]string{"B", "A"}, state.Traits()); diff != "" {
		t.Fatalf("traits mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x", "y"}, state.Subjects()); diff != "" {
		t.Fatalf("subjects mismatch (-want +got):\n%s", diff)
	}

	_, err = form.Restore(form.Snapshot{Traits: []string{"A", "B", "C", "D"}})
	if !errors.Is(err, form.ErrTraitLimit) {
		t.Fatalf("expected ErrTraitLimit, got %v", err)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	state := &form.State{}
	_ = state.ToggleTrait("A")
	clone := state.Clone()
	_ = clone.ToggleTrait("B")
	clone.SetName("other")

	if diff := cmp.Diff([]string{"A"}, state.Traits()); diff != "" {
		t.Fatalf("original mutated (-want +got):\n%s", diff)
	}
	if state.Name() != "" {
		t.Fatalf("original name mutated")
	}
}

func TestNotifierFunc(t *testing.T) {
	var got string
	n := form.NotifierFunc(func(_ context.Context, message string) error {
		got = message
		return nil
	})
	if err := n.Notify(context.Background(), "hi"); err != nil || got != "hi" {
		t.Fatalf("notifier func not invoked: %q %v", got, err)
	}
}
