package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

// TemplateDraft is the authoring payload for template create/update. The
// author name and date travel with the payload for display purposes; the
// server re-derives ownership from the credential.
type TemplateDraft struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Topic       string             `json:"topic"`
	Tags        []string           `json:"tags"`
	Public      bool               `json:"public"`
	AccessUsers []string           `json:"selectedUsers"`
	Author      string             `json:"user,omitempty"`
	Date        string             `json:"date,omitempty"`
	Questions   model.QuestionList `json:"questions"`
	ImageURL    string             `json:"imageUrl,omitempty"`
}

// Template fetches a single template with its question list.
func (c *Client) Template(ctx context.Context, id string) (*model.Template, error) {
	var wire templateWire
	if err := c.get(ctx, "/templates/"+url.PathEscape(id), nil, &wire); err != nil {
		return nil, err
	}
	tpl := wire.toModel()
	return &tpl, nil
}

// Templates lists every template visible to the caller.
func (c *Client) Templates(ctx context.Context) ([]model.Template, error) {
	var wires []templateWire
	if err := c.get(ctx, "/templates", nil, &wires); err != nil {
		return nil, err
	}
	return templatesToModel(wires), nil
}

// LatestTemplates returns the most recently created templates.
func (c *Client) LatestTemplates(ctx context.Context) ([]model.Template, error) {
	var wires []templateWire
	if err := c.get(ctx, "/templates/latest", nil, &wires); err != nil {
		return nil, err
	}
	return templatesToModel(wires), nil
}

// PopularTemplates returns templates ranked by filled-form count. Ranking is
// the server's concern; the list arrives pre-ordered.
func (c *Client) PopularTemplates(ctx context.Context) ([]model.Template, error) {
	var wires []templateWire
	if err := c.get(ctx, "/templates/popular", nil, &wires); err != nil {
		return nil, err
	}
	return templatesToModel(wires), nil
}

// SearchTemplates runs a full-text search on the server.
func (c *Client) SearchTemplates(ctx context.Context, query string) ([]model.Template, error) {
	var wires []templateWire
	params := url.Values{"query": []string{query}}
	if err := c.get(ctx, "/templates/search", params, &wires); err != nil {
		return nil, err
	}
	return templatesToModel(wires), nil
}

// Tags returns every known tag name.
func (c *Client) Tags(ctx context.Context) ([]model.Tag, error) {
	var wires []struct {
		ID   flexID `json:"id"`
		Name string `json:"name"`
	}
	if err := c.get(ctx, "/templates/tags", nil, &wires); err != nil {
		return nil, err
	}
	tags := make([]model.Tag, 0, len(wires))
	for _, w := range wires {
		tags = append(tags, model.Tag{ID: string(w.ID), Name: w.Name})
	}
	return tags, nil
}

// CreateTemplate persists a new template and returns its server-assigned id.
func (c *Client) CreateTemplate(ctx context.Context, draft TemplateDraft) (string, error) {
	var wire templateWire
	if err := c.post(ctx, "/templates", draft, &wire); err != nil {
		return "", err
	}
	return string(wire.ID), nil
}

// UpdateTemplate replaces every editable field of an existing template.
func (c *Client) UpdateTemplate(ctx context.Context, id string, draft TemplateDraft) error {
	if id == "" {
		return fmt.Errorf("api: template id is required")
	}
	return c.put(ctx, "/templates/"+url.PathEscape(id), draft, nil)
}

// DeleteTemplate removes a template. The server enforces authorization; the
// client additionally gates the action on fetched ownership data.
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("api: template id is required")
	}
	return c.delete(ctx, "/templates/"+url.PathEscape(id))
}
