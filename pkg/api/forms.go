package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

// FormSubmission is the payload of a new filled form.
type FormSubmission struct {
	TemplateID string         `json:"templateId"`
	Answers    []model.Answer `json:"answers"`
}

// Form fetches one filled form; detail responses embed the owning template so
// answers can be rendered against their questions.
func (c *Client) Form(ctx context.Context, id string) (*model.FilledForm, error) {
	var wire formWire
	if err := c.get(ctx, "/forms/"+url.PathEscape(id), nil, &wire); err != nil {
		return nil, err
	}
	form := wire.toModel()
	return &form, nil
}

// SubmitForm creates a filled form for a template. Partially filled answer
// sets are accepted; the service does not require every question answered.
func (c *Client) SubmitForm(ctx context.Context, submission FormSubmission) (string, error) {
	if submission.TemplateID == "" {
		return "", fmt.Errorf("api: template id is required")
	}
	var wire formWire
	if err := c.post(ctx, "/forms", submission, &wire); err != nil {
		return "", err
	}
	return string(wire.ID), nil
}

// UpdateForm replaces the answers of an existing filled form. Answers are the
// only mutable part of a form.
func (c *Client) UpdateForm(ctx context.Context, id string, answers model.AnswerSet) error {
	if id == "" {
		return fmt.Errorf("api: form id is required")
	}
	body := struct {
		Answers []model.Answer `json:"answers"`
	}{Answers: answers.Serialize()}
	return c.put(ctx, "/forms/"+url.PathEscape(id), body, nil)
}

// DeleteForm removes a filled form.
func (c *Client) DeleteForm(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("api: form id is required")
	}
	return c.delete(ctx, "/forms/"+url.PathEscape(id))
}

// FormsByTemplate lists the filled forms submitted against a template. The
// server restricts this to the template creator.
func (c *Client) FormsByTemplate(ctx context.Context, templateID string) ([]model.FilledForm, error) {
	var wires []formWire
	if err := c.get(ctx, "/forms/template/"+url.PathEscape(templateID), nil, &wires); err != nil {
		return nil, err
	}
	return formsToModel(wires), nil
}
