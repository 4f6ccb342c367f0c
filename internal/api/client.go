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
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/teemow/taskmanager/internal/instrumentation"
	"github.com/teemow/taskmanager/internal/logging"
	"github.com/teemow/taskmanager/internal/tasks"
)

// DefaultTimeout bounds a single request to the remote task API.
const DefaultTimeout = 30 * time.Second

// Client talks to a remote task API over HTTP. There are no retries.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	metrics    *instrumentation.Metrics
	logger     logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithClientMetrics records one metric per request sent.
func WithClientMetrics(m *instrumentation.Metrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithClientLogger sets the logger used for request debugging.
func WithClientLogger(l logging.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient returns a client for the task API at baseURL, e.g. http://localhost:8000.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := ParseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logging.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ParseBaseURL checks that raw is an absolute http or https URL.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q: missing host", raw)
	}
	return u, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.baseURL.String(), "/") + path
}

func taskPath(id int) string {
	return "/tasks/" + strconv.Itoa(id)
}

// do sends a request and decodes a 2xx JSON response into out.
// Non-2xx responses are returned as *StatusError.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("sending task API request", logging.KeyMethod, method, logging.KeyPath, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordClientRequest(ctx, method, 0)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.metrics.RecordClientRequest(ctx, method, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) ListTasks(ctx context.Context) ([]tasks.Task, error) {
	var list []tasks.Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []tasks.Task{}
	}
	return list, nil
}

func (c *Client) GetTask(ctx context.Context, id int) (*tasks.Task, error) {
	var task tasks.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) CreateTask(ctx context.Context, in tasks.NewTask) (*tasks.Task, error) {
	var task tasks.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask sends only the fields set in u.
func (c *Client) UpdateTask(ctx context.Context, id int, u tasks.TaskUpdate) (*tasks.Task, error) {
	var task tasks.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), u, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int) (*tasks.Deleted, error) {
	var deleted tasks.Deleted
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, &deleted); err != nil {
		return nil, err
	}
	return &deleted, nil
}

var (
	_ TaskService = (*Client)(nil)
	_ TaskService = (*LocalClient)(nil)
)
