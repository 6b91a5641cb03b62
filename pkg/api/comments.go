package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

// Comments fetches the discussion thread under a template, oldest first.
func (c *Client) Comments(ctx context.Context, templateID string) ([]model.Comment, error) {
	if templateID == "" {
		return nil, fmt.Errorf("api: template id is required")
	}
	var wires []commentWire
	if err := c.get(ctx, "/templates/"+url.PathEscape(templateID)+"/comments", nil, &wires); err != nil {
		return nil, err
	}
	return commentsToModel(wires), nil
}

// PostComment appends a comment to a template's thread and returns the
// refreshed thread so watchers pick up the new entry without a second fetch.
func (c *Client) PostComment(ctx context.Context, templateID, text string) ([]model.Comment, error) {
	if templateID == "" {
		return nil, fmt.Errorf("api: template id is required")
	}
	if text == "" {
		return nil, fmt.Errorf("api: comment text is required")
	}
	body := struct {
		Text string `json:"text"`
	}{Text: text}

	var wires []commentWire
	if err := c.post(ctx, "/templates/"+url.PathEscape(templateID)+"/comments", body, &wires); err != nil {
		return nil, err
	}
	return commentsToModel(wires), nil
}
