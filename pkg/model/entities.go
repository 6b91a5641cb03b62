package model

import "time"

// Role values assigned by the remote service.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Preference sets recognised by the remote service.
const (
	LanguageEnglish = "ENGLISH"
	LanguageSpanish = "SPANISH"
	LanguageRussian = "RUSSIAN"

	ThemeLight = "LIGHT"
	ThemeDark  = "DARK"
)

// Topics is the fixed topic set offered during template authoring.
func Topics() []string {
	return []string{"Education", "Quiz", "Other"}
}

// User is an account record as returned by the remote API.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	Language string `json:"language,omitempty"`
	Theme    string `json:"theme,omitempty"`
	Blocked  bool   `json:"blocked,omitempty"`
}

// IsAdmin reports whether the user carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Tag labels templates for search and the home-page tag cloud.
type Tag struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Template is an author-defined, ordered collection of typed questions plus
// metadata. It is referenced — never owned — by filled forms.
type Template struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Topic       string   `json:"topic"`
	Tags        []string `json:"tags,omitempty"`
	Public      bool     `json:"public"`
	// AccessUsers lists the user ids allowed to fill/view when the template
	// is restricted. Empty for public templates.
	AccessUsers []string     `json:"selectedUsers,omitempty"`
	CreatorID   string       `json:"creatorId,omitempty"`
	Author      *User        `json:"author,omitempty"`
	Questions   QuestionList `json:"questions"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	FilledCount int          `json:"filledCount,omitempty"`
	CreatedAt   time.Time    `json:"createdAt,omitempty"`
}

// OwnedBy reports whether the given user may edit or delete the template.
func (t Template) OwnedBy(u User) bool {
	if t.CreatorID != "" && t.CreatorID == u.ID {
		return true
	}
	return t.Author != nil && t.Author.ID == u.ID
}

// FilledForm is one respondent's answer set against a specific template. The
// template is referenced by id; detail responses embed a copy for rendering.
type FilledForm struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"templateId"`
	Answers    AnswerSet `json:"answers"`
	User       *User     `json:"user,omitempty"`
	Template   *Template `json:"template,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// OwnedBy reports whether the given user submitted the form.
func (f FilledForm) OwnedBy(u User) bool {
	return f.User != nil && f.User.ID == u.ID
}

// Comment is a single entry in a template's comment feed.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId,omitempty"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
