// Package backend is the HTTP client of the marketplace REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/ports"
)

// APIError is a non-2xx answer of the backend. Detail is the "detail"
// field of the body when it is a string, the raw body otherwise.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// UserMessage is the backend explanation shown to the user.
func (e *APIError) UserMessage() string { return e.Error() }

// Is lets callers match backend answers against domain errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case domain.ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case domain.ErrUnauthenticated:
		return e.StatusCode == http.StatusUnauthorized
	}
	return false
}

func newAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		var detail string
		if json.Unmarshal(envelope.Detail, &detail) == nil {
			return &APIError{StatusCode: status, Detail: detail}
		}
	}
	return &APIError{StatusCode: status, Detail: strings.TrimSpace(string(body))}
}

// Client talks to the marketplace API. The zero token makes anonymous
// calls; As returns a copy bound to a session token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

var (
	_ ports.Backend     = (*Client)(nil)
	_ domain.UserFacing = (*APIError)(nil)
)

// New creates a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// As returns a MarketplaceAPI that sends the session token as bearer.
func (c *Client) As(s domain.Session) ports.MarketplaceAPI {
	clone := *c
	clone.token = s.Token
	return &clone
}

// request performs an HTTP request and decodes the JSON response into
// result. endpoint is the route template used as metric label.
func (c *Client) request(ctx context.Context, method, path, endpoint string, body io.Reader, contentType string, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(method, endpoint, "error").Inc()
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()
	requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path, endpoint string, body, result any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.request(ctx, method, path, endpoint, reader, contentType, result)
}

func (c *Client) get(ctx context.Context, path, endpoint string, result any) error {
	return c.doJSON(ctx, http.MethodGet, path, endpoint, nil, result)
}

func (c *Client) post(ctx context.Context, path, endpoint string, body, result any) error {
	return c.doJSON(ctx, http.MethodPost, path, endpoint, body, result)
}

func (c *Client) put(ctx context.Context, path, endpoint string, body, result any) error {
	return c.doJSON(ctx, http.MethodPut, path, endpoint, body, result)
}

func (c *Client) delete(ctx context.Context, path, endpoint string) error {
	return c.doJSON(ctx, http.MethodDelete, path, endpoint, nil, nil)
}

// Ping checks that the backend answers at all. Any HTTP response counts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/services", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
