package apispec_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lessonplan/internal/apispec"
	"github.com/goliatone/go-lessonplan/pkg/catalog"
	"github.com/goliatone/go-lessonplan/pkg/form"
	"github.com/goliatone/go-lessonplan/pkg/render"
)

func loadContract(t *testing.T) *apispec.Contract {
	t.Helper()
	contract, err := apispec.Load(context.Background())
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}
	return contract
}

func TestLoad_ExposesPrintOperation(t *testing.T) {
	contract := loadContract(t)
	doc := contract.Document()
	if doc.Paths == nil || doc.Paths.Len() != 1 {
		t.Fatalf("expected a single path in the contract")
	}
	item := doc.Paths.Map()[apispec.PrintPath]
	if item == nil || item.Post == nil || item.Post.OperationID != "printLessonPlan" {
		t.Fatalf("print operation missing")
	}
	if !strings.Contains(string(apispec.Raw()), "openapi: 3.0.3") {
		t.Fatalf("raw document should be the embedded YAML")
	}
}

func TestDecodePrintRequest_Valid(t *testing.T) {
	contract := loadContract(t)
	body := `{"catalog":"ko","name":"Kim","traits":["a","b"],"subjects":["Math"],"highContrast":true}`

	req, err := contract.DecodePrintRequest([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := apispec.PrintRequest{
		Snapshot: form.Snapshot{Name: "Kim", Traits: []string{"a", "b"}, Subjects: []string{"Math"}, HighContrast: true},
		Catalog:  "ko",
	}
	if diff := cmp.Diff(want, req); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePrintRequest_Malformed(t *testing.T) {
	contract := loadContract(t)
	for _, body := range []string{"", "   ", "{", "not json"} {
		if _, err := contract.DecodePrintRequest([]byte(body)); !errors.Is(err, apispec.ErrMalformed) {
			t.Fatalf("body %q: expected ErrMalformed, got %v", body, err)
		}
	}
}

func TestDecodePrintRequest_SchemaViolations(t *testing.T) {
	contract := loadContract(t)
	body := `{"traits":["a","b","c","d"],"highContrast":"yes"}`

	_, err := contract.DecodePrintRequest([]byte(body))
	var validation *apispec.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validation.Mapping.Fields[render.FieldTraits]) == 0 {
		t.Fatalf("expected a traits error, got %+v", validation.Mapping)
	}
	if len(validation.Mapping.Fields[render.FieldHighContrast]) == 0 {
		t.Fatalf("expected a highContrast error, got %+v", validation.Mapping)
	}
	if !strings.Contains(err.Error(), "traits:") {
		t.Fatalf("error text should name the field: %v", err)
	}
}

func TestDecodePrintRequest_UnknownPropertyIsFormLevel(t *testing.T) {
	contract := loadContract(t)
	_, err := contract.DecodePrintRequest([]byte(`{"colour":"red"}`))
	var validation *apispec.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validation.Mapping.Form) == 0 {
		t.Fatalf("expected a form-level error, got %+v", validation.Mapping)
	}
}

func TestCheckCatalog(t *testing.T) {
	cat := catalog.Default()
	ok := apispec.FillDefaults(form.Snapshot{Traits: []string{cat.Traits[0]}}, cat)
	if ok.Grade != cat.Grades[0] || ok.TeachingModel != cat.TeachingModels[0] {
		t.Fatalf("defaults not applied: %+v", ok)
	}
	if err := apispec.CheckCatalog(ok, cat); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := ok
	bad.Grade = "Grade 42"
	bad.Subjects = []string{"Alchemy"}
	err := apispec.CheckCatalog(bad, cat)
	var validation *apispec.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := map[string][]string{
		render.FieldGrade:    {`unknown value "Grade 42"`},
		render.FieldSubjects: {`unknown value "Alchemy"`},
	}
	if diff := cmp.Diff(want, validation.Mapping.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}
