package html

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/render"
)

func testTemplate() *model.Template {
	return &model.Template{
		ID:          "t1",
		Title:       "Course feedback",
		Description: "End of term survey",
		Topic:       "Education",
		Tags:        []string{"school", "survey"},
		Public:      true,
		Author:      &model.User{ID: "u1", Name: "Ada"},
		Questions: model.QuestionList{
			{ID: "q1", Title: "Your name", Type: model.QuestionSingleLine},
			{ID: "q2", Title: "Favourite colors", Type: model.QuestionCheckbox, Options: []string{"Red", "Blue"}},
		},
	}
}

func TestRenderTemplateDetail(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), render.View{Template: testTemplate()}, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	page := string(out)
	for _, want := range []string{
		"Course feedback",
		"Your name",
		"Favourite colors",
		"Red",
		"Education",
		`data-theme="LIGHT"`,
		"--background: #ffffff",
		"Public",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if r.ContentType() != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", r.ContentType())
	}
}

func TestRenderFormDetail(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := &model.FilledForm{
		ID:         "f1",
		TemplateID: "t1",
		Answers: model.AnswerSet{
			{QuestionID: "q1", Value: "Ada Lovelace"},
			{QuestionID: "q2", Value: "Red,Blue"},
		},
		User:      &model.User{ID: "u2", Name: "Grace"},
		CreatedAt: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}
	out, err := r.Render(context.Background(), render.View{Template: testTemplate(), Form: form}, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	page := string(out)
	for _, want := range []string{
		"Ada Lovelace",
		"Grace",
		"2025-06-01 12:30",
		"<li>Red</li>",
		"<li>Blue</li>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderSanitizesAuthorContent(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	tpl := testTemplate()
	tpl.Title = `Feedback <script>alert("x")</script>`
	tpl.Questions[0].Title = "<img src=x onerror=steal()>Name"

	out, err := r.Render(context.Background(), render.View{Template: tpl}, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	if strings.Contains(page, "<script>") || strings.Contains(page, "onerror") {
		t.Error("script content survived sanitization")
	}
	if !strings.Contains(page, "Feedback") || !strings.Contains(page, "Name") {
		t.Error("legitimate text lost during sanitization")
	}
}

func TestRenderDarkVariant(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), render.View{Template: testTemplate()}, render.Options{Variant: "DARK"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, `data-theme="DARK"`) {
		t.Error("variant not applied")
	}
	if !strings.Contains(page, "--background: #111827") {
		t.Error("dark tokens not applied")
	}

	out, err = r.Render(context.Background(), render.View{Template: testTemplate()}, render.Options{Variant: "SEPIA"})
	if err != nil {
		t.Fatalf("render unknown variant: %v", err)
	}
	if !strings.Contains(string(out), `data-theme="LIGHT"`) {
		t.Error("unknown variant should fall back to LIGHT")
	}
}

func TestRenderLocalizedChrome(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	opts := render.Options{
		Locale:     "SPANISH",
		Translator: render.DefaultCatalog(),
	}
	out, err := r.Render(context.Background(), render.View{Template: testTemplate()}, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, "Preguntas") {
		t.Error("chrome labels not localized")
	}
	if !strings.Contains(page, "Course feedback") {
		t.Error("author content must stay untranslated")
	}
}

func TestRenderFieldErrors(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	opts := render.Options{
		Errors: map[string][]string{
			"q1": {"Too long"},
			"":   {"Template is incomplete"},
		},
	}
	out, err := r.Render(context.Background(), render.View{Template: testTemplate()}, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, "Too long") {
		t.Error("field error missing")
	}
	if !strings.Contains(page, "Template is incomplete") {
		t.Error("form error missing")
	}
}

func TestRenderRequiresTemplate(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), render.View{}, render.Options{}); err == nil {
		t.Fatal("expected error without template")
	}
}
