package api

import (
	"encoding/json"
	"time"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

// The service is loose about payload shapes: ids arrive as numbers or
// strings, tags as plain strings or {name} objects, checkbox options as
// strings or {id, value} rows. The wire types below absorb those variations
// so the rest of the client sees only pkg/model values.

type tagNames []string

func (t *tagNames) UnmarshalJSON(data []byte) error {
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*t = plain
		return nil
	}
	var objects []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &objects); err != nil {
		return err
	}
	names := make([]string, 0, len(objects))
	for _, o := range objects {
		if o.Name != "" {
			names = append(names, o.Name)
		}
	}
	*t = names
	return nil
}

type optionValues []string

func (o *optionValues) UnmarshalJSON(data []byte) error {
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*o = plain
		return nil
	}
	var objects []struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &objects); err != nil {
		return err
	}
	values := make([]string, 0, len(objects))
	for _, obj := range objects {
		values = append(values, obj.Value)
	}
	*o = values
	return nil
}

type userWire struct {
	ID       flexID `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Language string `json:"language"`
	Theme    string `json:"theme"`
	Blocked  bool   `json:"blocked"`
}

func (u userWire) toModel() model.User {
	return model.User{
		ID:       string(u.ID),
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		Language: u.Language,
		Theme:    u.Theme,
		Blocked:  u.Blocked,
	}
}

type questionWire struct {
	ID               flexID             `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Type             model.QuestionType `json:"type"`
	DisplayedInTable bool               `json:"displayedInTable"`
	Options          optionValues       `json:"options"`
}

func (q questionWire) toModel() model.Question {
	question := model.Question{
		ID:               string(q.ID),
		Title:            q.Title,
		Description:      q.Description,
		Type:             q.Type,
		DisplayedInTable: q.DisplayedInTable,
	}
	if question.HasOptions() {
		question.Options = append([]string(nil), q.Options...)
	}
	return question
}

type templateWire struct {
	ID            flexID         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Topic         string         `json:"topic"`
	Tags          tagNames       `json:"tags"`
	Public        bool           `json:"public"`
	SelectedUsers []flexID       `json:"selectedUsers"`
	CreatorID     flexID         `json:"creatorId"`
	Author        *userWire      `json:"author"`
	Questions     []questionWire `json:"questions"`
	ImageURL      string         `json:"imageUrl"`
	FilledCount   int            `json:"filledCount"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (t templateWire) toModel() model.Template {
	tpl := model.Template{
		ID:          string(t.ID),
		Title:       t.Title,
		Description: t.Description,
		Topic:       t.Topic,
		Tags:        t.Tags,
		Public:      t.Public,
		CreatorID:   string(t.CreatorID),
		ImageURL:    t.ImageURL,
		FilledCount: t.FilledCount,
		CreatedAt:   t.CreatedAt,
	}
	for _, id := range t.SelectedUsers {
		tpl.AccessUsers = append(tpl.AccessUsers, string(id))
	}
	if t.Author != nil {
		author := t.Author.toModel()
		tpl.Author = &author
		if tpl.CreatorID == "" {
			tpl.CreatorID = author.ID
		}
	}
	tpl.Questions = make(model.QuestionList, 0, len(t.Questions))
	for _, q := range t.Questions {
		tpl.Questions = append(tpl.Questions, q.toModel())
	}
	return tpl
}

type answerWire struct {
	QuestionID flexID `json:"questionId"`
	Value      string `json:"value"`
}

type formWire struct {
	ID         flexID        `json:"id"`
	TemplateID flexID        `json:"templateId"`
	Answers    []answerWire  `json:"answers"`
	User       *userWire     `json:"user"`
	Template   *templateWire `json:"template"`
	CreatedAt  time.Time     `json:"createdAt"`
}

func (f formWire) toModel() model.FilledForm {
	form := model.FilledForm{
		ID:         string(f.ID),
		TemplateID: string(f.TemplateID),
		CreatedAt:  f.CreatedAt,
	}
	form.Answers = make(model.AnswerSet, 0, len(f.Answers))
	for _, a := range f.Answers {
		form.Answers = append(form.Answers, model.Answer{
			QuestionID: string(a.QuestionID),
			Value:      a.Value,
		})
	}
	if f.User != nil {
		u := f.User.toModel()
		form.User = &u
	}
	if f.Template != nil {
		tpl := f.Template.toModel()
		form.Template = &tpl
		if form.TemplateID == "" {
			form.TemplateID = tpl.ID
		}
	}
	return form
}

type commentWire struct {
	ID        flexID    `json:"id"`
	Content   string    `json:"content"`
	UserID    flexID    `json:"userId"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c commentWire) toModel() model.Comment {
	return model.Comment{
		ID:        string(c.ID),
		Content:   c.Content,
		UserID:    string(c.UserID),
		Author:    c.Author,
		CreatedAt: c.CreatedAt,
	}
}

func usersToModel(wires []userWire) []model.User {
	users := make([]model.User, 0, len(wires))
	for _, w := range wires {
		users = append(users, w.toModel())
	}
	return users
}

func templatesToModel(wires []templateWire) []model.Template {
	templates := make([]model.Template, 0, len(wires))
	for _, w := range wires {
		templates = append(templates, w.toModel())
	}
	return templates
}

func formsToModel(wires []formWire) []model.FilledForm {
	forms := make([]model.FilledForm, 0, len(wires))
	for _, w := range wires {
		forms = append(forms, w.toModel())
	}
	return forms
}

func commentsToModel(wires []commentWire) []model.Comment {
	comments := make([]model.Comment, 0, len(wires))
	for _, w := range wires {
		comments = append(comments, w.toModel())
	}
	return comments
}
