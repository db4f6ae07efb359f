package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/rushikeshburle/autoq/internal/model"
)

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	var user model.User
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &user)
	return user, err
}

// Login exchanges credentials for a token. The server expects multipart
// form fields, not JSON; this is part of the wire contract.
func (c *Client) Login(ctx context.Context, username, password string) (model.Token, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("username", username); err != nil {
		return model.Token{}, fmt.Errorf("encode login form: %w", err)
	}
	if err := w.WriteField("password", password); err != nil {
		return model.Token{}, fmt.Errorf("encode login form: %w", err)
	}
	if err := w.Close(); err != nil {
		return model.Token{}, fmt.Errorf("encode login form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", &buf, w.FormDataContentType())
	if err != nil {
		return model.Token{}, err
	}
	raw, err := c.send(req)
	if err != nil {
		return model.Token{}, err
	}
	var token model.Token
	if err := decodeJSON(raw, &token); err != nil {
		return model.Token{}, err
	}
	return token, nil
}

// CurrentUser fetches the profile behind the current token.
func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	var user model.User
	err := c.getJSON(ctx, "/auth/me", &user)
	return user, err
}
