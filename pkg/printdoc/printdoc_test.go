package printdoc_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/printdoc"
	"github.com/goliatone/go-lessonplan/pkg/render"
	"github.com/goliatone/go-lessonplan/pkg/testsupport"
)

func sampleSnapshot(t *testing.T) form.Snapshot {
	t.Helper()
	return testsupport.LoadSnapshot(t, filepath.Join("testdata", "snapshot.json"))
}

func newRenderer(t *testing.T, opts ...printdoc.Option) *printdoc.HTMLRenderer {
	t.Helper()
	renderer, err := printdoc.NewHTMLRenderer(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestBuildView_SectionsInFormOrder(t *testing.T) {
	cat := catalog.Default()
	view := printdoc.BuildView(sampleSnapshot(t), cat)

	keys := make([]string, 0, len(view.Sections))
	for _, section := range view.Sections {
		keys = append(keys, section.Key)
	}
	want := []string{"name", "disabilityType", "traits", "behaviorNotes", "grade", "subjects", "topic", "teachingModel"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}

	traits, ok := view.Section("traits")
	if !ok {
		t.Fatalf("traits section missing")
	}
	if diff := cmp.Diff(sampleSnapshot(t).Traits, traits.Items); diff != "" {
		t.Fatalf("traits mismatch (-want +got):\n%s", diff)
	}
	notes, _ := view.Section("behaviorNotes")
	if !notes.Multiline {
		t.Fatalf("behavior notes should be multiline")
	}
	if _, ok := view.Section("missing"); ok {
		t.Fatalf("unexpected section")
	}
}

func TestPageStyle_CSS(t *testing.T) {
	css := printdoc.DefaultPageStyle().CSS()
	for _, fragment := range []string{
		"@page { size: A4 portrait; margin: 24mm; }",
		"@media print",
		"font-size: 11pt",
		"line-height: 1.6",
		"serif",
	} {
		if !strings.Contains(css, fragment) {
			t.Fatalf("css missing %q:\n%s", fragment, css)
		}
	}

	zero := printdoc.PageStyle{}.CSS()
	if zero != css {
		t.Fatalf("zero style should fall back to defaults:\n%s", zero)
	}

	sans := printdoc.DefaultPageStyle().WithFontFamily("Arial, sans-serif")
	if sans.FontFamily != printdoc.DefaultFontFamily {
		t.Fatalf("non-serif family should be ignored, got %q", sans.FontFamily)
	}
	forced := printdoc.PageStyle{FontFamily: "Arial, sans-serif"}.CSS()
	if strings.Contains(forced, "sans-serif") || !strings.Contains(forced, "size: A4 portrait") {
		t.Fatalf("print geometry and serif family are fixed:\n%s", forced)
	}
}

func TestRenderDocument_ContainsSectionsAndStyle(t *testing.T) {
	renderer := newRenderer(t)
	view := printdoc.BuildView(sampleSnapshot(t), catalog.Default())

	out, err := renderer.RenderDocument(testsupport.Context(), view, "Kim_lesson-plan", printdoc.DefaultPageStyle())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, fragment := range []string{
		"<title>Kim_lesson-plan</title>",
		"@page { size: A4 portrait; margin: 24mm; }",
		"Short attention span",
		"Counting to ten",
		`class="lp-multiline"`,
		"window.print()",
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("document missing %q:\n%s", fragment, html)
		}
	}
	if strings.Index(html, "Kim") > strings.Index(html, "Counting to ten") {
		t.Fatalf("sections out of order")
	}
}

func TestRenderDocument_EscapesUserText(t *testing.T) {
	renderer := newRenderer(t, printdoc.WithAutoPrint(false))
	cat := catalog.Default()
	state := form.NewState(cat)
	state.SetName("<Kim>")
	state.SetBehaviorNotes("a<b & c")
	state.SetTopic(`Reading <script>alert("x")</script> letters`)
	title := form.DocumentTitle(state.Name(), cat)
	if title != "<Kim>_lesson-plan" {
		t.Fatalf("unexpected title %q", title)
	}

	out, err := renderer.RenderDocument(testsupport.Context(), printdoc.BuildView(state.Snapshot(), cat), title, printdoc.DefaultPageStyle())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, fragment := range []string{
		"<title>&lt;Kim&gt;_lesson-plan</title>",
		"<dd>&lt;Kim&gt;</dd>",
		`<dd class="lp-multiline">a&lt;b &amp; c</dd>`,
		"Reading &lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt; letters",
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("document missing %q:\n%s", fragment, html)
		}
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatalf("user markup leaked into document:\n%s", html)
	}
	if strings.Contains(html, "window.print()") {
		t.Fatalf("auto print should be disabled")
	}
}

func TestRender_IgnoresContrast(t *testing.T) {
	renderer := newRenderer(t)
	plain := sampleSnapshot(t)
	contrast := sampleSnapshot(t)
	contrast.HighContrast = true

	opts := render.RenderOptions{Catalog: catalog.Default()}
	a, err := renderer.Render(testsupport.Context(), plain, opts)
	if err != nil {
		t.Fatalf("render plain: %v", err)
	}
	b, err := renderer.Render(testsupport.Context(), contrast, opts)
	if err != nil {
		t.Fatalf("render contrast: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("printed output should not depend on the contrast flag")
	}
	if !strings.Contains(string(a), "<title>Kim_lesson-plan</title>") {
		t.Fatalf("expected derived title")
	}
}

func TestRender_UsesCatalogFont(t *testing.T) {
	renderer := newRenderer(t)
	ko := catalog.MustEmbedded("ko")
	out, err := renderer.Render(testsupport.Context(), form.Snapshot{}, render.RenderOptions{Catalog: ko})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), ko.Document.FontFamily) {
		t.Fatalf("expected catalog font family in output")
	}
	if !strings.Contains(string(out), `lang="ko"`) {
		t.Fatalf("expected korean lang attribute")
	}
}

func TestPrint_NilViewIsNoop(t *testing.T) {
	called := false
	bridge := printdoc.BridgeFunc(func(context.Context, *printdoc.View, string, printdoc.PageStyle) error {
		called = true
		return nil
	})

	if err := printdoc.Print(testsupport.Context(), bridge, nil, "t", printdoc.DefaultPageStyle()); err != nil {
		t.Fatalf("print: %v", err)
	}
	if err := printdoc.Print(testsupport.Context(), nil, &printdoc.View{}, "t", printdoc.DefaultPageStyle()); err != nil {
		t.Fatalf("print without bridge: %v", err)
	}
	if called {
		t.Fatalf("bridge should not be invoked without a view")
	}
}

func TestPrinter_MountLifecycle(t *testing.T) {
	var titles []string
	boom := errors.New("printer offline")
	fail := false
	bridge := printdoc.BridgeFunc(func(_ context.Context, view *printdoc.View, title string, _ printdoc.PageStyle) error {
		titles = append(titles, title)
		if fail {
			return boom
		}
		return nil
	})
	printer := printdoc.NewPrinter(bridge, printdoc.DefaultPageStyle())
	ctx := testsupport.Context()

	if err := printer.Print(ctx, "before"); err != nil || printer.Mounted() {
		t.Fatalf("unmounted print should be a silent no-op: %v", err)
	}

	printer.Mount(printdoc.BuildView(sampleSnapshot(t), catalog.Default()))
	if err := printer.Print(ctx, "mounted"); err != nil {
		t.Fatalf("print: %v", err)
	}
	fail = true
	if err := printer.Print(ctx, "mounted"); !errors.Is(err, boom) {
		t.Fatalf("expected bridge error, got %v", err)
	}

	printer.Unmount()
	if err := printer.Print(ctx, "after"); err != nil {
		t.Fatalf("print after unmount: %v", err)
	}
	if diff := cmp.Diff([]string{"mounted", "mounted"}, titles); diff != "" {
		t.Fatalf("bridge calls mismatch (-want +got):\n%s", diff)
	}
}

func TestWriterBridge(t *testing.T) {
	var buf bytes.Buffer
	bridge := printdoc.WriterBridge{W: &buf, Renderer: newRenderer(t)}
	view := printdoc.BuildView(sampleSnapshot(t), catalog.Default())

	if err := printdoc.Print(testsupport.Context(), bridge, view, "Kim_lesson-plan", printdoc.DefaultPageStyle()); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "<!DOCTYPE html>") {
		t.Fatalf("expected html document, got %q", buf.String())
	}

	if err := (printdoc.WriterBridge{}).RenderToDocument(testsupport.Context(), view, "t", printdoc.DefaultPageStyle()); err == nil {
		t.Fatalf("expected error for unconfigured bridge")
	}
}

func TestFileBridge_WritesTitledFile(t *testing.T) {
	dir := t.TempDir()
	var written string
	bridge := printdoc.FileBridge{
		Dir:       filepath.Join(dir, "out"),
		Renderer:  newRenderer(t),
		OnWritten: func(path string) { written = path },
	}
	view := printdoc.BuildView(sampleSnapshot(t), catalog.Default())

	if err := bridge.RenderToDocument(testsupport.Context(), view, "Kim_lesson-plan", printdoc.DefaultPageStyle()); err != nil {
		t.Fatalf("export: %v", err)
	}
	want := filepath.Join(dir, "out", "Kim_lesson-plan.html")
	if written != want {
		t.Fatalf("written path = %q, want %q", written, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "Counting to ten") {
		t.Fatalf("export missing content")
	}
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"Kim_lesson-plan":   "Kim_lesson-plan.html",
		"a/b\\c":            "a-b-c.html",
		"<Kim>_lesson-plan": "Kim_lesson-plan.html",
		"  ":                "document.html",
		"..":                "document.html",
	}
	for title, want := range cases {
		if got := printdoc.FileName(title); got != want {
			t.Fatalf("FileName(%q) = %q, want %q", title, got, want)
		}
	}
}
