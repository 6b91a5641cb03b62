package sessions

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/api"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

type stubFormAPI struct {
	template  *model.Template
	form      *model.FilledForm
	forms     []model.FilledForm
	submitID  string
	submitted []api.FormSubmission
	updates   map[string]model.AnswerSet
	deleted   []string
}

func (s *stubFormAPI) Template(_ context.Context, id string) (*model.Template, error) {
	if s.template == nil || s.template.ID != id {
		return nil, &api.APIError{Status: http.StatusNotFound}
	}
	tpl := *s.template
	return &tpl, nil
}

func (s *stubFormAPI) Form(_ context.Context, id string) (*model.FilledForm, error) {
	if s.form == nil || s.form.ID != id {
		return nil, &api.APIError{Status: http.StatusNotFound}
	}
	form := *s.form
	return &form, nil
}

func (s *stubFormAPI) SubmitForm(_ context.Context, submission api.FormSubmission) (string, error) {
	s.submitted = append(s.submitted, submission)
	return s.submitID, nil
}

func (s *stubFormAPI) UpdateForm(_ context.Context, id string, answers model.AnswerSet) error {
	if s.updates == nil {
		s.updates = make(map[string]model.AnswerSet)
	}
	s.updates[id] = answers
	return nil
}

func (s *stubFormAPI) DeleteForm(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubFormAPI) FormsByTemplate(context.Context, string) ([]model.FilledForm, error) {
	return s.forms, nil
}

type scriptedCollector struct {
	answers  model.AnswerSet
	received model.AnswerSet
}

func (c *scriptedCollector) Collect(_ context.Context, questions model.QuestionList, existing model.AnswerSet) (model.AnswerSet, error) {
	c.received = existing
	if c.answers != nil {
		return c.answers, nil
	}
	return model.InitAnswers(questions), nil
}

func fillTemplate() *model.Template {
	return &model.Template{
		ID:        "t1",
		Title:     "Quiz",
		Public:    true,
		CreatorID: "owner",
		Questions: model.QuestionList{
			{ID: "q1", Title: "Name", Type: model.QuestionSingleLine},
		},
	}
}

func TestFormSessionFill(t *testing.T) {
	client := &stubFormAPI{template: fillTemplate(), submitID: "f5"}
	nav := &recordingNav{}
	collector := &scriptedCollector{
		answers: model.AnswerSet{{QuestionID: "q1", Value: "Ada"}},
	}
	s := NewFormSession(client, &stubAuth{user: &model.User{ID: "u2"}}, nav, collector)

	id, err := s.Fill(context.Background(), "t1")
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if id != "f5" {
		t.Errorf("id = %q", id)
	}
	if len(client.submitted) != 1 {
		t.Fatalf("submitted = %d", len(client.submitted))
	}
	want := []model.Answer{{QuestionID: "q1", Value: "Ada"}}
	if diff := cmp.Diff(want, client.submitted[0].Answers); diff != "" {
		t.Errorf("answers mismatch:\n%s", diff)
	}
	if nav.last() != "/forms/f5" {
		t.Errorf("route = %q", nav.last())
	}
}

func TestFormSessionFillRestrictedAccess(t *testing.T) {
	tpl := fillTemplate()
	tpl.Public = false
	tpl.AccessUsers = []string{"invited"}
	client := &stubFormAPI{template: tpl, submitID: "f1"}

	cases := []struct {
		name    string
		auth    *stubAuth
		allowed bool
	}{
		{"listed user", &stubAuth{user: &model.User{ID: "invited"}}, true},
		{"creator", &stubAuth{user: &model.User{ID: "owner"}}, true},
		{"admin", &stubAuth{user: &model.User{ID: "other"}, admin: true}, true},
		{"outsider", &stubAuth{user: &model.User{ID: "other"}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewFormSession(client, tc.auth, &recordingNav{}, &scriptedCollector{})
			_, err := s.Fill(context.Background(), "t1")
			if tc.allowed && err != nil {
				t.Fatalf("fill: %v", err)
			}
			if !tc.allowed && !errors.Is(err, ErrNotAuthorized) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestFormSessionFillRequiresLogin(t *testing.T) {
	nav := &recordingNav{}
	s := NewFormSession(&stubFormAPI{}, &stubAuth{}, nav, &scriptedCollector{})
	if _, err := s.Fill(context.Background(), "t1"); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err = %v", err)
	}
	if nav.last() != RouteLogin {
		t.Errorf("route = %q", nav.last())
	}
}

func TestFormSessionEditPrefillsExistingAnswers(t *testing.T) {
	tpl := fillTemplate()
	existing := model.AnswerSet{{QuestionID: "q1", Value: "old"}}
	client := &stubFormAPI{
		template: tpl,
		form: &model.FilledForm{
			ID:         "f1",
			TemplateID: "t1",
			Answers:    existing,
			User:       &model.User{ID: "u2"},
			Template:   tpl,
		},
	}
	nav := &recordingNav{}
	collector := &scriptedCollector{
		answers: model.AnswerSet{{QuestionID: "q1", Value: "new"}},
	}
	s := NewFormSession(client, &stubAuth{user: &model.User{ID: "u2"}}, nav, collector)

	if err := s.Edit(context.Background(), "f1"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if diff := cmp.Diff(existing, collector.received); diff != "" {
		t.Errorf("collector prefill mismatch:\n%s", diff)
	}
	if got := client.updates["f1"].Get("q1"); got != "new" {
		t.Errorf("saved answer = %q", got)
	}
}

func TestFormSessionEditOwnershipGate(t *testing.T) {
	tpl := fillTemplate()
	client := &stubFormAPI{
		template: tpl,
		form: &model.FilledForm{
			ID:         "f1",
			TemplateID: "t1",
			User:       &model.User{ID: "respondent"},
			Template:   tpl,
		},
	}
	s := NewFormSession(client, &stubAuth{user: &model.User{ID: "other"}}, &recordingNav{}, &scriptedCollector{})
	if err := s.Edit(context.Background(), "f1"); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err = %v", err)
	}

	s = NewFormSession(client, &stubAuth{user: &model.User{ID: "other"}, admin: true}, &recordingNav{}, &scriptedCollector{})
	if err := s.Edit(context.Background(), "f1"); err != nil {
		t.Fatalf("admin edit: %v", err)
	}
}

func TestFormSessionViewGate(t *testing.T) {
	tpl := fillTemplate()
	client := &stubFormAPI{
		template: tpl,
		form: &model.FilledForm{
			ID:         "f1",
			TemplateID: "t1",
			User:       &model.User{ID: "respondent"},
			Template:   tpl,
		},
	}

	// the template creator may view forms filled against their template
	s := NewFormSession(client, &stubAuth{user: &model.User{ID: "owner"}}, &recordingNav{}, &scriptedCollector{})
	view, err := s.View(context.Background(), "f1")
	if err != nil {
		t.Fatalf("creator view: %v", err)
	}
	if view.Template == nil || view.Form == nil {
		t.Error("incomplete view")
	}

	s = NewFormSession(client, &stubAuth{user: &model.User{ID: "stranger"}}, &recordingNav{}, &scriptedCollector{})
	if _, err := s.View(context.Background(), "f1"); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err = %v", err)
	}
}

func TestFormSessionDeleteNavigatesToTemplate(t *testing.T) {
	client := &stubFormAPI{
		form: &model.FilledForm{
			ID:         "f1",
			TemplateID: "t1",
			User:       &model.User{ID: "u2"},
			Template:   fillTemplate(),
		},
	}
	nav := &recordingNav{}
	s := NewFormSession(client, &stubAuth{user: &model.User{ID: "u2"}}, nav, &scriptedCollector{})

	if err := s.Delete(context.Background(), "f1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(client.deleted) != 1 {
		t.Fatalf("deleted = %v", client.deleted)
	}
	if nav.last() != "/templates/t1" {
		t.Errorf("route = %q", nav.last())
	}
}

func TestFormSessionDeleteGate(t *testing.T) {
	cases := []struct {
		name    string
		auth    *stubAuth
		allowed bool
	}{
		{"form owner", &stubAuth{user: &model.User{ID: "respondent"}}, true},
		{"template creator", &stubAuth{user: &model.User{ID: "owner"}}, true},
		{"admin", &stubAuth{user: &model.User{ID: "other"}, admin: true}, true},
		{"stranger", &stubAuth{user: &model.User{ID: "other"}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := &stubFormAPI{
				form: &model.FilledForm{
					ID:         "f1",
					TemplateID: "t1",
					User:       &model.User{ID: "respondent"},
					Template:   fillTemplate(),
				},
			}
			s := NewFormSession(client, tc.auth, &recordingNav{}, &scriptedCollector{})
			err := s.Delete(context.Background(), "f1")
			if tc.allowed {
				if err != nil {
					t.Fatalf("delete: %v", err)
				}
				if len(client.deleted) != 1 {
					t.Fatalf("deleted = %v", client.deleted)
				}
				return
			}
			if !errors.Is(err, ErrNotAuthorized) {
				t.Fatalf("err = %v", err)
			}
			if len(client.deleted) != 0 {
				t.Fatalf("deleted = %v", client.deleted)
			}
		})
	}
}

func TestFormSessionDeleteResolvesTemplateWhenNotEmbedded(t *testing.T) {
	client := &stubFormAPI{
		template: fillTemplate(),
		form: &model.FilledForm{
			ID:         "f1",
			TemplateID: "t1",
			User:       &model.User{ID: "respondent"},
		},
	}
	s := NewFormSession(client, &stubAuth{user: &model.User{ID: "owner"}}, &recordingNav{}, &scriptedCollector{})
	if err := s.Delete(context.Background(), "f1"); err != nil {
		t.Fatalf("creator delete: %v", err)
	}
}

func TestFormSessionListByTemplateGate(t *testing.T) {
	client := &stubFormAPI{
		template: fillTemplate(),
		forms:    []model.FilledForm{{ID: "f1"}, {ID: "f2"}},
	}

	s := NewFormSession(client, &stubAuth{user: &model.User{ID: "owner"}}, &recordingNav{}, &scriptedCollector{})
	forms, err := s.ListByTemplate(context.Background(), "t1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(forms) != 2 {
		t.Errorf("forms = %d", len(forms))
	}

	s = NewFormSession(client, &stubAuth{user: &model.User{ID: "other"}}, &recordingNav{}, &scriptedCollector{})
	if _, err := s.ListByTemplate(context.Background(), "t1"); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("err = %v", err)
	}
}
