package todosdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a typed client for the todo service. Call Login (or SetToken)
// before using the authenticated endpoints; the bearer token is attached to
// every subsequent request. Logout is client-side: drop the token.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetToken installs an access token obtained elsewhere.
func (c *Client) SetToken(token string) { c.token = token }

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, email, password string) (*UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodPost, "/users/", RegisterRequest{
		Email:    email,
		Password: password,
	}, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and stores the returned access token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{
		Email:    email,
		Password: password,
	}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	c.token = out.AccessToken
	return &out, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTodos returns all todos owned by the authenticated user.
func (c *Client) ListTodos(ctx context.Context) ([]TodoResponse, error) {
	var out []TodoResponse
	if err := c.do(ctx, http.MethodGet, "/todos/", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTodo creates a todo owned by the authenticated user.
func (c *Client) CreateTodo(ctx context.Context, in TodoCreateRequest) (*TodoResponse, error) {
	var out TodoResponse
	if err := c.do(ctx, http.MethodPost, "/todos/", in, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTodo fetches a single todo by id.
func (c *Client) GetTodo(ctx context.Context, id string) (*TodoResponse, error) {
	var out TodoResponse
	if err := c.do(ctx, http.MethodGet, "/todos/"+id, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTodo applies a partial update; absent fields are left unchanged.
func (c *Client) UpdateTodo(ctx context.Context, id string, in TodoUpdateRequest) (*TodoResponse, error) {
	var out TodoResponse
	if err := c.do(ctx, http.MethodPut, "/todos/"+id, in, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTodo removes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id, nil, nil, http.StatusNoContent)
}

// ToggleTodo flips the completion flag.
func (c *Client) ToggleTodo(ctx context.Context, id string) (*TodoResponse, error) {
	var out TodoResponse
	if err := c.do(ctx, http.MethodPatch, "/todos/"+id+"/toggle", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs a request and decodes the response. A response with any other
// status than wantStatus is decoded as an *APIError.
func (c *Client) do(ctx context.Context, method, path string, in, out any, wantStatus int) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("todosdk: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("todosdk: create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("todosdk: send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("todosdk: read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return parseAPIError(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("todosdk: decode response: %w", err)
		}
	}
	return nil
}
