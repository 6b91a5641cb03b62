package sessions

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/api"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/render"
)

// FormAPI is the slice of the persistence boundary the fill flow uses.
// *api.Client satisfies it.
type FormAPI interface {
	Template(ctx context.Context, id string) (*model.Template, error)
	Form(ctx context.Context, id string) (*model.FilledForm, error)
	SubmitForm(ctx context.Context, submission api.FormSubmission) (string, error)
	UpdateForm(ctx context.Context, id string, answers model.AnswerSet) error
	DeleteForm(ctx context.Context, id string) error
	FormsByTemplate(ctx context.Context, templateID string) ([]model.FilledForm, error)
}

// AnswerCollector gathers answers for a question list, prefilled from an
// existing answer set. The TUI answer renderer satisfies it.
type AnswerCollector interface {
	Collect(ctx context.Context, questions model.QuestionList, answers model.AnswerSet) (model.AnswerSet, error)
}

// FormSession runs the fill, edit, view and delete flows for filled forms.
type FormSession struct {
	api       FormAPI
	auth      Authorizer
	nav       Navigator
	collector AnswerCollector
	log       zerolog.Logger
}

// FormSessionOption configures a FormSession.
type FormSessionOption func(*FormSession)

// WithFormLogger attaches a structured logger.
func WithFormLogger(log zerolog.Logger) FormSessionOption {
	return func(s *FormSession) {
		s.log = log
	}
}

// NewFormSession wires a fill-flow session against the given boundaries.
func NewFormSession(client FormAPI, auth Authorizer, nav Navigator, collector AnswerCollector, options ...FormSessionOption) *FormSession {
	s := &FormSession{
		api:       client,
		auth:      auth,
		nav:       nav,
		collector: collector,
		log:       zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Fill runs the answer prompts for a template and submits a new form.
// Partially answered forms are accepted. On success the session navigates to
// the new form's detail route and returns its id.
func (s *FormSession) Fill(ctx context.Context, templateID string) (string, error) {
	user, err := s.requireUser()
	if err != nil {
		return "", err
	}

	tpl, err := s.api.Template(ctx, templateID)
	if err != nil {
		return "", s.routeAuthFailure(err)
	}
	if !s.canFill(tpl, user) {
		return "", ErrNotAuthorized
	}

	answers, err := s.collector.Collect(ctx, tpl.Questions, nil)
	if err != nil {
		return "", err
	}

	id, err := s.api.SubmitForm(ctx, api.FormSubmission{
		TemplateID: templateID,
		Answers:    answers.Serialize(),
	})
	if err != nil {
		return "", s.routeAuthFailure(err)
	}
	s.log.Info().Str("form", id).Str("template", templateID).Msg("form submitted")
	s.nav.Navigate(FormRoute(id))
	return id, nil
}

// Edit reruns the prompts for an existing form, prefilled with its committed
// answers, and saves the result. Only the form's owner or an admin may edit.
func (s *FormSession) Edit(ctx context.Context, formID string) error {
	user, err := s.requireUser()
	if err != nil {
		return err
	}

	form, tpl, err := s.loadFormWithTemplate(ctx, formID)
	if err != nil {
		return err
	}
	if !form.OwnedBy(*user) && !s.auth.IsAdmin() {
		return ErrNotAuthorized
	}

	answers, err := s.collector.Collect(ctx, tpl.Questions, form.Answers)
	if err != nil {
		return err
	}

	if err := s.api.UpdateForm(ctx, formID, answers); err != nil {
		return s.routeAuthFailure(err)
	}
	s.log.Info().Str("form", formID).Msg("form updated")
	s.nav.Navigate(FormRoute(formID))
	return nil
}

// View fetches a form for read-only rendering. The owner, the template
// creator and admins may view.
func (s *FormSession) View(ctx context.Context, formID string) (render.View, error) {
	user, err := s.requireUser()
	if err != nil {
		return render.View{}, err
	}

	form, tpl, err := s.loadFormWithTemplate(ctx, formID)
	if err != nil {
		return render.View{}, err
	}
	if !form.OwnedBy(*user) && !tpl.OwnedBy(*user) && !s.auth.IsAdmin() {
		return render.View{}, ErrNotAuthorized
	}

	return render.View{Template: tpl, Form: form, Answers: form.Answers}, nil
}

// Delete removes a form and navigates back to its template. The form's owner,
// the template's creator and admins may delete.
func (s *FormSession) Delete(ctx context.Context, formID string) error {
	user, err := s.requireUser()
	if err != nil {
		return err
	}

	form, tpl, err := s.loadFormWithTemplate(ctx, formID)
	if err != nil {
		return err
	}
	if !form.OwnedBy(*user) && !tpl.OwnedBy(*user) && !s.auth.IsAdmin() {
		return ErrNotAuthorized
	}

	if err := s.api.DeleteForm(ctx, formID); err != nil {
		return s.routeAuthFailure(err)
	}
	s.log.Info().Str("form", formID).Msg("form deleted")
	s.nav.Navigate(TemplateRoute(form.TemplateID))
	return nil
}

// ListByTemplate returns every form submitted against a template. Only the
// template's creator or an admin may list.
func (s *FormSession) ListByTemplate(ctx context.Context, templateID string) ([]model.FilledForm, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}

	tpl, err := s.api.Template(ctx, templateID)
	if err != nil {
		return nil, s.routeAuthFailure(err)
	}
	if !tpl.OwnedBy(*user) && !s.auth.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	forms, err := s.api.FormsByTemplate(ctx, templateID)
	if err != nil {
		return nil, s.routeAuthFailure(err)
	}
	return forms, nil
}

func (s *FormSession) requireUser() (*model.User, error) {
	if !s.auth.IsAuthenticated() {
		s.nav.Navigate(RouteLogin)
		return nil, ErrNotAuthorized
	}
	user := s.auth.CurrentUser()
	if user == nil {
		s.nav.Navigate(RouteLogin)
		return nil, ErrNotAuthorized
	}
	return user, nil
}

// loadFormWithTemplate fetches a form and resolves its template, preferring
// the copy embedded in the form detail response.
func (s *FormSession) loadFormWithTemplate(ctx context.Context, formID string) (*model.FilledForm, *model.Template, error) {
	form, err := s.api.Form(ctx, formID)
	if err != nil {
		return nil, nil, s.routeAuthFailure(err)
	}
	tpl := form.Template
	if tpl == nil {
		tpl, err = s.api.Template(ctx, form.TemplateID)
		if err != nil {
			return nil, nil, s.routeAuthFailure(err)
		}
	}
	return form, tpl, nil
}

// canFill applies the access rule: public templates are open to any signed-in
// user, restricted templates to the listed users, the creator and admins.
func (s *FormSession) canFill(tpl *model.Template, user *model.User) bool {
	if tpl.Public {
		return true
	}
	if tpl.OwnedBy(*user) || s.auth.IsAdmin() {
		return true
	}
	for _, id := range tpl.AccessUsers {
		if id == user.ID {
			return true
		}
	}
	return false
}

func (s *FormSession) routeAuthFailure(err error) error {
	if api.IsUnauthorized(err) {
		s.nav.Navigate(RouteLogin)
	}
	return err
}
