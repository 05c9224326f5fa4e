package api

import (
	"context"
	"net/http"

	"fintrack/internal/session"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. A 2xx response without a
// token fails with ErrInvalidResponse.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	body, err := c.send(ctx, http.MethodPost, "/auth/login", session.Anonymous, creds)
	if err != nil {
		return "", err
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := body.Decode(&res); err != nil || res.Token == "" {
		return "", ErrInvalidResponse
	}
	return res.Token, nil
}

// Register creates an account. The response body is returned as is.
func (c *Client) Register(ctx context.Context, reg Registration) (Body, error) {
	return c.send(ctx, http.MethodPost, "/auth/register", session.Anonymous, reg)
}
