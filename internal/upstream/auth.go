package upstream

import (
	"context"
	"net/http"

	"github.com/monikajha100/prime-admin-gateway/internal/models"
)

// AuthResult is the token/user pair returned by login, register and
// impersonate.
type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for an upstream token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account and returns its token/user pair.
func (c *Client) Register(ctx context.Context, email, password, fullName string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password, "full_name": fullName}
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Impersonate obtains a token acting as the target user.
func (c *Client) Impersonate(ctx context.Context, token, userID string) (*AuthResult, error) {
	var result AuthResult
	if err := c.do(ctx, http.MethodPost, pathf("/auth/impersonate/%s", userID), token, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
