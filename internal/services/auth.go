package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/shared"
)

// Login validates credentials locally, then exchanges them for a token.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	if err := shared.ValidateLogin(username, password); err != nil {
		return nil, err
	}

	var out models.LoginResponse
	body := models.Credentials{Username: username, Password: password}
	if err := c.Do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return nil, err
	}
	if out.Data.Token == "" {
		return nil, fmt.Errorf("%w: login response has no token", shared.ErrUnexpectedResponse)
	}
	return &out, nil
}

// Register validates input locally, then creates the account.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	if err := shared.ValidateSignup(username, email, password); err != nil {
		return err
	}
	body := models.Credentials{Username: username, Email: email, Password: password}
	_, err := c.Request(ctx, http.MethodPost, "/register", body)
	return err
}
