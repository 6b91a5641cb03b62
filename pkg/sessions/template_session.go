package sessions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/api"
	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

// TemplateAPI is the slice of the persistence boundary the authoring flow
// uses. *api.Client satisfies it.
type TemplateAPI interface {
	Template(ctx context.Context, id string) (*model.Template, error)
	Tags(ctx context.Context) ([]model.Tag, error)
	AdminUsers(ctx context.Context) ([]model.User, error)
	CreateTemplate(ctx context.Context, draft api.TemplateDraft) (string, error)
	UpdateTemplate(ctx context.Context, id string, draft api.TemplateDraft) error
	DeleteTemplate(ctx context.Context, id string) error
}

// Authorizer exposes the session boundary's identity checks. *auth.Store
// satisfies it.
type Authorizer interface {
	CurrentUser() *model.User
	IsAuthenticated() bool
	IsAdmin() bool
}

// TemplateSession owns the working copy of one template through an authoring
// flow. Edits accumulate in Draft and reach the server only on Submit.
type TemplateSession struct {
	api  TemplateAPI
	auth Authorizer
	nav  Navigator
	log  zerolog.Logger

	templateID string
	loaded     bool

	// Draft is the working copy. The question list inside is owned by the
	// session and safe to hand to a question editor.
	Draft api.TemplateDraft

	tags   []model.Tag
	users  []model.User
	errors map[string][]string
}

// TemplateSessionOption configures a TemplateSession.
type TemplateSessionOption func(*TemplateSession)

// WithTemplateLogger attaches a structured logger.
func WithTemplateLogger(log zerolog.Logger) TemplateSessionOption {
	return func(s *TemplateSession) {
		s.log = log
	}
}

// NewTemplateSession wires an authoring session against the given boundaries.
func NewTemplateSession(client TemplateAPI, auth Authorizer, nav Navigator, options ...TemplateSessionOption) *TemplateSession {
	s := &TemplateSession{
		api:  client,
		auth: auth,
		nav:  nav,
		log:  zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Load prepares the session. An empty id starts a fresh draft; otherwise the
// template is fetched and only its author or an admin may continue. Tag and
// user lookups feed the authoring pickers; a failed user lookup is logged and
// tolerated since only admins can list accounts.
func (s *TemplateSession) Load(ctx context.Context, id string) error {
	if !s.auth.IsAuthenticated() {
		s.nav.Navigate(RouteLogin)
		return ErrNotAuthorized
	}

	s.errors = nil
	s.templateID = id

	if id == "" {
		s.Draft = api.TemplateDraft{
			Tags:        []string{},
			AccessUsers: []string{},
			Public:      true,
			Questions:   model.QuestionList{},
		}
		if user := s.auth.CurrentUser(); user != nil {
			s.Draft.Author = user.Name
		}
		s.Draft.Date = time.Now().Format("2006-01-02")
	} else {
		tpl, err := s.api.Template(ctx, id)
		if err != nil {
			return s.routeAuthFailure(err)
		}
		user := s.auth.CurrentUser()
		if user == nil || (!tpl.OwnedBy(*user) && !s.auth.IsAdmin()) {
			return ErrNotAuthorized
		}
		s.Draft = draftFromTemplate(tpl)
	}

	tags, err := s.api.Tags(ctx)
	if err != nil {
		return s.routeAuthFailure(err)
	}
	s.tags = tags

	users, err := s.api.AdminUsers(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("user list unavailable for access picker")
		users = nil
	}
	s.users = users

	s.loaded = true
	return nil
}

// AvailableTags returns the known tag names for the tag picker.
func (s *TemplateSession) AvailableTags() []model.Tag {
	return s.tags
}

// AvailableUsers returns the accounts offered by the restricted-access
// picker. Empty when the caller may not list accounts.
func (s *TemplateSession) AvailableUsers() []model.User {
	return s.users
}

// Errors returns the validation messages from the last failed Submit, keyed
// by field name with form-level messages under the empty key.
func (s *TemplateSession) Errors() map[string][]string {
	return s.errors
}

// IsNew reports whether Submit will create rather than update.
func (s *TemplateSession) IsNew() bool {
	return s.templateID == ""
}

// SetVisibility switches between public and restricted access. Making the
// template public clears the user list; restricting it replaces the list.
func (s *TemplateSession) SetVisibility(public bool, userIDs []string) {
	s.Draft.Public = public
	if public {
		s.Draft.AccessUsers = []string{}
		return
	}
	s.Draft.AccessUsers = append([]string{}, userIDs...)
}

// Submit validates the draft and persists it. On validation failure the
// errors are recorded and the draft is left intact so the user can fix and
// resubmit. On success the session navigates to the template detail route.
func (s *TemplateSession) Submit(ctx context.Context) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if errs := s.validate(); len(errs) > 0 {
		s.errors = errs
		return ErrIncomplete
	}
	s.errors = nil

	id := s.templateID
	if id == "" {
		created, err := s.api.CreateTemplate(ctx, s.Draft)
		if err != nil {
			return s.routeAuthFailure(err)
		}
		id = created
		s.templateID = id
		s.log.Info().Str("template", id).Msg("template created")
	} else {
		if err := s.api.UpdateTemplate(ctx, id, s.Draft); err != nil {
			return s.routeAuthFailure(err)
		}
		s.log.Info().Str("template", id).Msg("template updated")
	}

	s.nav.Navigate(TemplateRoute(id))
	return nil
}

// Delete removes the template and navigates home. Only the loaded session's
// template can be deleted, which keeps the author/admin gate from Load.
func (s *TemplateSession) Delete(ctx context.Context) error {
	if !s.loaded || s.templateID == "" {
		return ErrNotLoaded
	}
	if err := s.api.DeleteTemplate(ctx, s.templateID); err != nil {
		return s.routeAuthFailure(err)
	}
	s.log.Info().Str("template", s.templateID).Msg("template deleted")
	s.nav.Navigate(RouteHome)
	return nil
}

func (s *TemplateSession) validate() map[string][]string {
	errs := make(map[string][]string)
	if strings.TrimSpace(s.Draft.Title) == "" {
		errs["title"] = append(errs["title"], "Title is required.")
	}
	if strings.TrimSpace(s.Draft.Description) == "" {
		errs["description"] = append(errs["description"], "Description is required.")
	}
	if !validTopic(s.Draft.Topic) {
		errs["topic"] = append(errs["topic"], fmt.Sprintf("Topic must be one of %s.", strings.Join(model.Topics(), ", ")))
	}
	if len(s.Draft.Questions) == 0 {
		errs[""] = append(errs[""], "Add at least one question.")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (s *TemplateSession) routeAuthFailure(err error) error {
	if api.IsUnauthorized(err) {
		s.nav.Navigate(RouteLogin)
	}
	return err
}

func validTopic(topic string) bool {
	for _, t := range model.Topics() {
		if t == topic {
			return true
		}
	}
	return false
}

func draftFromTemplate(tpl *model.Template) api.TemplateDraft {
	draft := api.TemplateDraft{
		Title:       tpl.Title,
		Description: tpl.Description,
		Topic:       tpl.Topic,
		Tags:        append([]string{}, tpl.Tags...),
		Public:      tpl.Public,
		AccessUsers: append([]string{}, tpl.AccessUsers...),
		Questions:   append(model.QuestionList{}, tpl.Questions...),
		ImageURL:    tpl.ImageURL,
	}
	if tpl.Author != nil {
		draft.Author = tpl.Author.Name
	}
	return draft
}
