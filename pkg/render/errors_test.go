package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

func TestMapErrorPayload(t *testing.T) {
	questions := model.QuestionList{
		{ID: "q1", Title: "Name", Type: model.QuestionSingleLine},
		{ID: "q2", Title: "Age", Type: model.QuestionInteger},
	}
	payload := map[string][]string{
		"q1":      {" too long ", "too long"},
		"unknown": {"template was deleted"},
		"":        {"try again"},
		"q2":      {"   "},
	}

	mapping := MapErrorPayload(questions, payload)

	if diff := cmp.Diff(map[string][]string{"q1": {"too long"}}, mapping.Fields); diff != "" {
		t.Errorf("fields mismatch:\n%s", diff)
	}
	wantForm := map[string]bool{"template was deleted": true, "try again": true}
	if len(mapping.Form) != 2 {
		t.Fatalf("form errors = %v", mapping.Form)
	}
	for _, msg := range mapping.Form {
		if !wantForm[msg] {
			t.Errorf("unexpected form error %q", msg)
		}
	}
}

func TestMapErrorPayloadEmpty(t *testing.T) {
	mapping := MapErrorPayload(nil, nil)
	if mapping.Fields == nil {
		t.Error("expected initialised Fields map for empty payload")
	}
	if mapping.Form != nil {
		t.Errorf("form = %v", mapping.Form)
	}
}

func TestMergeFormErrors(t *testing.T) {
	got := MergeFormErrors([]string{"a ", "", "b"}, "b", " c")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("merge mismatch:\n%s", diff)
	}
}

func TestLocalize(t *testing.T) {
	catalog := DefaultCatalog()

	opts := Options{Locale: "SPANISH", Translator: catalog}
	if got := Localize(opts, LabelQuestions, "Questions"); got != "Preguntas" {
		t.Errorf("got %q", got)
	}

	opts.Locale = "GERMAN"
	if got := Localize(opts, LabelQuestions, "Questions"); got != "Questions" {
		t.Errorf("fallback locale: got %q", got)
	}

	if got := Localize(Options{}, LabelQuestions, "Questions"); got != "Questions" {
		t.Errorf("no translator: got %q", got)
	}
	if got := Localize(Options{}, "label.never_defined", ""); got != "label.never_defined" {
		t.Errorf("key fallback: got %q", got)
	}
}
