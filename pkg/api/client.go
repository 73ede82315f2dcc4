package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Luishgfarias/todo-front/pkg/domain"
)

// TokenFunc returns the bearer token to attach to outgoing requests.
// It is consulted before every request so a login or logout takes
// effect without rebuilding the client. An empty string sends the
// request unauthenticated.
type TokenFunc func() string

// Client is the todo API client.
type Client struct {
	baseURL    string
	token      TokenFunc
	httpClient *http.Client
}

// New creates a new API client. token may be nil for a client that
// never authenticates.
func New(baseURL string, token TokenFunc) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// loginRequest is the credential payload for login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// registerRequest is the payload for account creation.
type registerRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// Login exchanges credentials for a session token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.post(ctx, "/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, fmt.Errorf("api.Login: %w", err)
	}
	return &out, nil
}

// Register creates a new account. It does not authenticate.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	if err := c.post(ctx, "/usuario", registerRequest{Name: name, Email: email, Password: password}, nil); err != nil {
		return fmt.Errorf("api.Register: %w", err)
	}
	return nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/usuario", &u); err != nil {
		return nil, fmt.Errorf("api.Me: %w", err)
	}
	return &u, nil
}

// UpdateMe updates the authenticated user. Only non-zero fields of data
// are sent.
func (c *Client) UpdateMe(ctx context.Context, data domain.UpdateUserData) (*domain.User, error) {
	var u domain.User
	if err := c.doRequest(ctx, http.MethodPut, "/usuario", data, &u); err != nil {
		return nil, fmt.Errorf("api.UpdateMe: %w", err)
	}
	return &u, nil
}

// DeleteMe deletes the authenticated user's account.
func (c *Client) DeleteMe(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/usuario", nil, nil); err != nil {
		return fmt.Errorf("api.DeleteMe: %w", err)
	}
	return nil
}

// ListTasks fetches one page of tasks, optionally filtered by title.
// page values below 1 are sent as 1.
func (c *Client) ListTasks(ctx context.Context, page int, title string) (*domain.TaskPage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("pagina", strconv.Itoa(page))
	if title != "" {
		params.Set("titulo", title)
	}

	var p domain.TaskPage
	if err := c.get(ctx, "/tarefas?"+params.Encode(), &p); err != nil {
		return nil, fmt.Errorf("api.ListTasks: %w", err)
	}
	return &p, nil
}

// GetTask fetches a single task with its full detail.
func (c *Client) GetTask(ctx context.Context, id int) (*domain.FullTask, error) {
	var t domain.FullTask
	if err := c.get(ctx, "/tarefas/"+strconv.Itoa(id), &t); err != nil {
		return nil, fmt.Errorf("api.GetTask: %w", err)
	}
	return &t, nil
}

// CreateTask creates a new task and returns the server-assigned record.
func (c *Client) CreateTask(ctx context.Context, data domain.CreateTaskData) (*domain.Task, error) {
	var t domain.Task
	if err := c.post(ctx, "/tarefas", data, &t); err != nil {
		return nil, fmt.Errorf("api.CreateTask: %w", err)
	}
	return &t, nil
}

// UpdateTask applies a partial update to a task by id.
func (c *Client) UpdateTask(ctx context.Context, id int, data domain.UpdateTaskData) (*domain.Task, error) {
	var t domain.Task
	if err := c.doRequest(ctx, http.MethodPut, "/tarefas/"+strconv.Itoa(id), data, &t); err != nil {
		return nil, fmt.Errorf("api.UpdateTask: %w", err)
	}
	return &t, nil
}

// ToggleTask flips a task's completion flag.
func (c *Client) ToggleTask(ctx context.Context, id int, completed bool) (*domain.Task, error) {
	var t domain.Task
	body := map[string]bool{"concluida": completed}
	if err := c.doRequest(ctx, http.MethodPatch, "/tarefas/"+strconv.Itoa(id), body, &t); err != nil {
		return nil, fmt.Errorf("api.ToggleTask: %w", err)
	}
	return &t, nil
}

// DeleteTask deletes a single task by id.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/tarefas/"+strconv.Itoa(id), nil, nil); err != nil {
		return fmt.Errorf("api.DeleteTask: %w", err)
	}
	return nil
}

// DeleteTasks deletes every task in ids in a single call.
func (c *Client) DeleteTasks(ctx context.Context, ids []int) error {
	body := map[string][]int{"ids": ids}
	if err := c.doRequest(ctx, http.MethodDelete, "/tarefas/apagar-varias", body, nil); err != nil {
		return fmt.Errorf("api.DeleteTasks: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

// TODO: retry on 401 with a token refresh once the server exposes
// /auth/refresh; until then an expired token surfaces as HTTP 401.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Body: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return newHTTPError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
