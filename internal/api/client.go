// Package api is the typed client for the habits REST contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
)

// ErrNotFound matches any StatusError with a 404 code.
var ErrNotFound = errors.New("not found")

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Op      string
	Method  string
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s %s returned %d: %s", e.Op, e.Method, e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s %s returned %d", e.Op, e.Method, e.Path, e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Client issues requests against a habits API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTransport swaps the round tripper used for requests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// New creates a client for the API rooted at baseURL (for example http://127.0.0.1:8080).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: constants.DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewInProcess creates a client whose requests are served directly by handler,
// without opening a socket.
func NewInProcess(handler http.Handler, opts ...Option) *Client {
	c, _ := New("http://habitual.local", append([]Option{WithTransport(handlerTransport{handler})}, opts...)...)
	return c
}

func (c *Client) ListHabits(ctx context.Context) ([]models.Habit, error) {
	var habits []models.Habit
	if err := c.do(ctx, "list habits", http.MethodGet, constants.HabitsPath, nil, &habits); err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return habits, nil
}

func (c *Client) CreateHabit(ctx context.Context, d models.Draft) (models.Habit, error) {
	if d.CompletedDates == nil {
		d.CompletedDates = []string{}
	}
	var h models.Habit
	err := c.do(ctx, "create habit", http.MethodPost, constants.HabitsPath, d, &h)
	return h, err
}

// UpdateHabit sends the full record. The server merges it onto the stored one.
func (c *Client) UpdateHabit(ctx context.Context, h models.Habit) (models.Habit, error) {
	h.Normalize()
	var out models.Habit
	err := c.do(ctx, "update habit", http.MethodPut, habitPath(h.ID), h, &out)
	return out, err
}

func (c *Client) ToggleHabit(ctx context.Context, id, date string) (models.Habit, error) {
	var out models.Habit
	err := c.do(ctx, "toggle habit", http.MethodPatch, habitPath(id)+"/toggle", models.ToggleRequest{Date: date}, &out)
	return out, err
}

func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	return c.do(ctx, "delete habit", http.MethodDelete, habitPath(id), nil, nil)
}

// Healthy reports whether the API answers its health check.
func (c *Client) Healthy(ctx context.Context) error {
	return c.do(ctx, "health check", http.MethodGet, constants.HealthPath, nil, nil)
}

func habitPath(id string) string {
	return constants.HabitsPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("API request failed", "op", op, "method", method, "path", path, "error", err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	logger.Debug("API request", "op", op, "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{Op: op, Method: method, Path: path, Code: resp.StatusCode}
		var eb struct {
			Error string `json:"error"`
		}
		if data, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil && json.Unmarshal(data, &eb) == nil {
			serr.Message = eb.Error
		}
		return serr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}
