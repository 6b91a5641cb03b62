package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

// AdminUsers lists every account. Requires an admin credential; the template
// authoring flow also uses it to offer the restricted-access user picker.
func (c *Client) AdminUsers(ctx context.Context) ([]model.User, error) {
	var wires []userWire
	if err := c.get(ctx, "/admin/users", nil, &wires); err != nil {
		return nil, err
	}
	return usersToModel(wires), nil
}

// BlockUser marks an account blocked. Admin only.
func (c *Client) BlockUser(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("api: user id is required")
	}
	return c.post(ctx, "/admin/users/"+url.PathEscape(id)+"/block", nil, nil)
}

// DeleteUser removes an account. Admin only.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("api: user id is required")
	}
	return c.delete(ctx, "/admin/users/"+url.PathEscape(id))
}

// UpdatePreferences pushes the caller's language and theme choice.
func (c *Client) UpdatePreferences(ctx context.Context, language, theme string) error {
	body := struct {
		Language string `json:"language"`
		Theme    string `json:"theme"`
	}{Language: language, Theme: theme}
	return c.put(ctx, "/user/preferences", body, nil)
}

// MyTemplates lists the templates authored by the caller.
func (c *Client) MyTemplates(ctx context.Context) ([]model.Template, error) {
	var wires []templateWire
	if err := c.get(ctx, "/user/templates", nil, &wires); err != nil {
		return nil, err
	}
	return templatesToModel(wires), nil
}

// MyForms lists the filled forms submitted by the caller.
func (c *Client) MyForms(ctx context.Context) ([]model.FilledForm, error) {
	var wires []formWire
	if err := c.get(ctx, "/user/forms", nil, &wires); err != nil {
		return nil, err
	}
	return formsToModel(wires), nil
}
