package catalog_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lessonplan/pkg/catalog"
)

const minimalYAML = `
language: en-us
disabilityTypes: [A, B]
traits: [t1, t2, t3, t4]
grades: [g1, g2]
subjects: [s1, s2]
teachingModels: [m1]
notices:
  traitLimit: " too many "
document:
  titlePlaceholder: student
  titleSuffix: lesson-plan
`

func TestEmbeddedCatalogs(t *testing.T) {
	store, err := catalog.Embedded()
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if diff := cmp.Diff([]string{"en", "ko"}, store.Names()); diff != "" {
		t.Fatalf("catalog names mismatch (-want +got):\n%s", diff)
	}

	for _, name := range store.Names() {
		cat, _ := store.Get(name)
		if got := len(cat.DisabilityTypes); got != 5 {
			t.Fatalf("%s: expected 5 disability types, got %d", name, got)
		}
		if got := len(cat.Grades); got != 4 {
			t.Fatalf("%s: expected 4 grades, got %d", name, got)
		}
		if got := len(cat.TeachingModels); got != 6 {
			t.Fatalf("%s: expected 6 teaching models, got %d", name, got)
		}
		if got := len(cat.Subjects); got != 2 {
			t.Fatalf("%s: expected 2 subjects, got %d", name, got)
		}
		if got := len(cat.Traits); got != 18 {
			t.Fatalf("%s: expected 18 traits, got %d", name, got)
		}
	}
}

func TestDefaultCatalogTitleCopy(t *testing.T) {
	cat := catalog.Default()
	if cat.Document.TitlePlaceholder != "student" || cat.Document.TitleSuffix != "lesson-plan" {
		t.Fatalf("unexpected document copy: %#v", cat.Document)
	}
	if cat.DefaultGrade() != "Grade 1" {
		t.Fatalf("default grade mismatch: %q", cat.DefaultGrade())
	}
}

func TestLoadFS_YAMLNormalises(t *testing.T) {
	fsys := fstest.MapFS{
		"nested/custom.yaml": {Data: []byte(minimalYAML)},
		"README.md":          {Data: []byte("ignored")},
	}

	store, err := catalog.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cat, ok := store.Get("custom")
	if !ok {
		t.Fatalf("expected catalog named after file, got %v", store.Names())
	}
	if cat.Language != "en-US" {
		t.Fatalf("language not canonicalised: %q", cat.Language)
	}
	if cat.Notices.TraitLimit != "too many" {
		t.Fatalf("notice not trimmed: %q", cat.Notices.TraitLimit)
	}
}

func TestLoadFS_JSON(t *testing.T) {
	doc := `{"name":"json-cat","language":"ko","disabilityTypes":["a"],"traits":["t"],"grades":["g"],"subjects":["s"],"teachingModels":["m"],"notices":{"traitLimit":"n"},"document":{"titlePlaceholder":"p","titleSuffix":"s"}}`
	store, err := catalog.LoadFS(fstest.MapFS{"x.json": {Data: []byte(doc)}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := store.Get("json-cat"); !ok {
		t.Fatalf("expected explicit name to win, got %v", store.Names())
	}
}

func TestLoadFS_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty table":  strings.Replace(minimalYAML, "grades: [g1, g2]", "grades: []", 1),
		"duplicate":    strings.Replace(minimalYAML, "traits: [t1, t2, t3, t4]", "traits: [t1, t1]", 1),
		"bad language": strings.Replace(minimalYAML, "language: en-us", "language: '!!'", 1),
		"no notice":    strings.Replace(minimalYAML, `traitLimit: " too many "`, `traitLimit: ""`, 1),
		"empty file":   "   ",
		"sans font":    strings.Replace(minimalYAML, "titleSuffix: lesson-plan", "titleSuffix: lesson-plan\n  fontFamily: Arial, sans-serif", 1),
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.LoadFS(fstest.MapFS{"c.yaml": {Data: []byte(doc)}})
			if err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestIsSerifFamily(t *testing.T) {
	cases := map[string]bool{
		"'HCR Batang', 'Batang', serif": true,
		"Georgia, \"serif\"":            true,
		"serif":                         true,
		"Arial, sans-serif":             false,
		"Georgia":                       false,
		"":                              false,
		"x</style><b>, serif":           false,
		"a; color: red; serif":          false,
	}
	for family, want := range cases {
		if got := catalog.IsSerifFamily(family); got != want {
			t.Fatalf("IsSerifFamily(%q) = %v, want %v", family, got, want)
		}
	}
}

func TestLoadFS_DuplicateNames(t *testing.T) {
	fsys := fstest.MapFS{
		"a/cat.yaml": {Data: []byte(minimalYAML)},
		"b/cat.yaml": {Data: []byte(minimalYAML)},
	}
	if _, err := catalog.LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate catalog error")
	}
}

func TestLoadFS_NilFS(t *testing.T) {
	store, err := catalog.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store, err := catalog.LoadFS(fstest.MapFS{"c.yaml": {Data: []byte(minimalYAML)}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cat, _ := store.Get("c")
	cat.Traits[0] = "mutated"

	again, _ := store.Get("c")
	if again.Traits[0] != "t1" {
		t.Fatalf("store leaked internal slice: %v", again.Traits)
	}
}
