// Package api is the HTTP client for the account backend. It speaks the
// same JSON envelope the server emits and surfaces server-side messages as
// plain errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// User is the public projection the server returns; it never contains a
// password hash.
type User struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *User  `json:"user"`
	Users   []User `json:"users"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) call(ctx context.Context, method, path string, body any) (*envelope, error) {

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling server: %w", err)
	}
	defer resp.Body.Close()

	env := &envelope{}
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	if !env.Success {
		if env.Message == "" {
			return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", env.Message)
	}

	return env, nil
}

// Register creates a new account and returns its public fields.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, error) {
	env, err := c.call(ctx, http.MethodPost, "/api/register",
		registerRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Login verifies credentials. The identifier may be a username or an email.
func (c *Client) Login(ctx context.Context, identifier, password string) (*User, error) {
	env, err := c.call(ctx, http.MethodPost, "/api/login",
		loginRequest{Username: identifier, Password: password})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// ListUsers returns every account's public fields.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	env, err := c.call(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}
	return env.Users, nil
}
