// Package client implements the HTTP client for the task API. It satisfies
// syncer.Service, mapping HTTP status codes back onto the shared error
// taxonomy and wrapping transport failures as models.ErrUnavailable.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"taskflow/internal/models"
)

// Client talks to a task API server at a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, e.g. after a login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ListTasks fetches all tasks.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches one task by id.
func (c *Client) GetTask(ctx context.Context, id string) (models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// CreateTask submits a new task and returns the stored version.
func (c *Client) CreateTask(ctx context.Context, input models.NewTask) (models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", input, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask submits a partial update and returns the post-update task.
func (c *Client) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id, patch, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task. The server treats deletes as idempotent.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

// Summary fetches the aggregate dashboard view.
func (c *Client) Summary(ctx context.Context) (models.Summary, error) {
	var sum models.Summary
	if err := c.do(ctx, http.MethodGet, "/tasks/summary", nil, &sum); err != nil {
		return models.Summary{}, err
	}
	return sum, nil
}

// Login exchanges credentials for an access token and stores it on the client.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (string, error) {
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return "", err
	}
	c.token = resp.AccessToken
	return resp.AccessToken, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, creds models.Credentials) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/auth/register", creds, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// do performs one JSON round trip and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errorFromStatus(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorFromStatus maps an HTTP error response back onto the error taxonomy,
// keeping the server's message as context.
func errorFromStatus(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	msg := payload.Error
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", models.ErrValidation, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", models.ErrUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", models.ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", models.ErrConflict, msg)
	default:
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, msg)
	}
}
