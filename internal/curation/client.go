// Package curation talks to the book curation backend over HTTP.
package curation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Recommender defines the interface for requesting book recommendations.
// This interface is implemented by *Client and can be used for testing.
type Recommender interface {
	Recommend(ctx context.Context, req Request) (*Response, error)
	Healthz(ctx context.Context) error
}

// Ensure Client implements Recommender at compile time.
var _ Recommender = (*Client)(nil)

// Client talks to the curation HTTP API. It holds its own configuration;
// there is no package-level default client.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "http://localhost:8000"
	defaultUserAgent = "curio/0.1"
	requestTimeout   = 10 * time.Second

	// DefaultTopK matches the backend default for /recommend.
	DefaultTopK = 5
	// The backend rejects top_k outside this range.
	minTopK = 1
	maxTopK = 20
)

// ErrBlankQuery is returned when a query is empty or whitespace-only.
// Blank queries are rejected before any network call is made.
var ErrBlankQuery = fmt.Errorf("query is blank")

// APIError reports a non-2xx response from the backend, keeping the raw
// body text for debuggability.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, body)
}

// NewClient builds a Client for the given base address. An empty address
// uses the default localhost backend; a bare host:port gets an http scheme.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Recommend performs one POST /recommend call. The query must be non-blank;
// TopK defaults to DefaultTopK and is clamped to the backend's accepted
// range. No retries.
func (c *Client) Recommend(ctx context.Context, req Request) (*Response, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrBlankQuery
	}
	req.TopK = clampTopK(req.TopK)

	var payload Response
	if err := c.postJSON(ctx, "/recommend", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Healthz probes the backend health endpoint.
func (c *Client) Healthz(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var payload healthzResponse
	if err := c.getJSON(ctx, "/healthz", &payload); err != nil {
		return err
	}
	if payload.Status != "ok" {
		return fmt.Errorf("backend unhealthy: status %q", payload.Status)
	}
	return nil
}

// BaseURL reports the configured base address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) postJSON(ctx context.Context, path string, body, dest any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(encoded), dest)
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	return c.do(ctx, http.MethodGet, path, nil, dest)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func clampTopK(k int) int {
	switch {
	case k == 0:
		return DefaultTopK
	case k < minTopK:
		return minTopK
	case k > maxTopK:
		return maxTopK
	}
	return k
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
