package api

import (
	"context"
	"errors"

	"github.com/AhanafShahriar/forms-app-frontend/pkg/model"
)

// Credentials is the login response: a bearer token plus the account record.
type Credentials struct {
	Token string
	User  model.User
}

// Login exchanges email and password for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	if email == "" || password == "" {
		return nil, errors.New("api: email and password are required")
	}
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var wire struct {
		Token string   `json:"token"`
		User  userWire `json:"user"`
	}
	if err := c.post(ctx, "/auth/login", body, &wire); err != nil {
		return nil, err
	}
	if wire.Token == "" {
		return nil, errors.New("api: login response carried no token")
	}
	return &Credentials{Token: wire.Token, User: wire.User.toModel()}, nil
}

// Register creates a new account. The caller logs in separately afterwards.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Name: name, Email: email, Password: password}
	return c.post(ctx, "/auth/register", body, nil)
}

// Me returns the account behind the current credential.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var wire userWire
	if err := c.get(ctx, "/auth/me", nil, &wire); err != nil {
		return nil, err
	}
	user := wire.toModel()
	return &user, nil
}
