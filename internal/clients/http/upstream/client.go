// Package upstream wraps BFF-to-API HTTP calls behind a small client with
// sane defaults.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client issues calls against the upstream storefront API.
type Client struct {
	baseURL string
	http    *http.Client
}

// CallOption configures a single outbound request.
type CallOption func(*callOptions)

type callOptions struct {
	authorization string
}

// WithAuthorization forwards the given Authorization header value verbatim.
// Empty or whitespace-only values are ignored.
func WithAuthorization(header string) CallOption {
	return func(opts *callOptions) {
		opts.authorization = strings.TrimSpace(header)
	}
}

// New instantiates the upstream client with sane defaults.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("upstream base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

// Result carries the upstream response as seen on the wire.
type Result struct {
	Status      int
	Body        []byte
	ContentType string
	Header      http.Header
}

// Success reports whether the upstream answered with a 2xx status.
func (r *Result) Success() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// Get issues a GET against the given path (which may carry a query string).
func (c *Client) Get(ctx context.Context, path string, optFns ...CallOption) (*Result, error) {
	return c.do(ctx, http.MethodGet, path, nil, "", optFns...)
}

// Post issues a POST with the given body and content type. A nil body sends
// an empty request, which the upstream logout endpoint accepts.
func (c *Client) Post(ctx context.Context, path string, body io.Reader, contentType string, optFns ...CallOption) (*Result, error) {
	return c.do(ctx, http.MethodPost, path, body, contentType, optFns...)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, optFns ...CallOption) (*Result, error) {
	if c == nil || c.http == nil {
		return nil, errors.New("upstream client not configured")
	}
	var opts callOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opts.authorization != "" {
		req.Header.Set("Authorization", opts.authorization)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call upstream API: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}
	return &Result{
		Status:      resp.StatusCode,
		Body:        payload,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      resp.Header.Clone(),
	}, nil
}
