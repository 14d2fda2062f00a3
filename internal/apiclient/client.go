// Package apiclient is the single HTTP wrapper used to talk to the quiz
// backend. It builds URLs, attaches JSON headers and the bearer token, and
// turns non-2xx responses into errors. It never retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	mimeJSON            = "application/json"
)

// TokenSource supplies the bearer token read at the moment a request is built.
// An empty token means the request goes out without an Authorization header.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// RequestOptions tunes a single request.
type RequestOptions struct {
	Headers  map[string]string
	Query    Query
	Body     any
	SkipAuth bool
}

// Client issues requests against a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets a transport timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client for baseURL (e.g. http://localhost:5000/api).
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts RequestOptions, out any) error {
	return c.Do(ctx, http.MethodGet, path, opts, out)
}

// Post issues a POST request with body.
func (c *Client) Post(ctx context.Context, path string, body any, opts RequestOptions, out any) error {
	opts.Body = body
	return c.Do(ctx, http.MethodPost, path, opts, out)
}

// Put issues a PUT request with body.
func (c *Client) Put(ctx context.Context, path string, body any, opts RequestOptions, out any) error {
	opts.Body = body
	return c.Do(ctx, http.MethodPut, path, opts, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts RequestOptions, out any) error {
	return c.Do(ctx, http.MethodDelete, path, opts, out)
}

// Do performs one request. When the response is JSON it is decoded into out
// (out may be nil to discard it); any other content type leaves out untouched.
func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions, out any) error {
	headers := c.headers(opts)

	body, err := encodeBody(opts.Body, headers[headerContentType])
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("encode body: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+opts.Query.String(), body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observe(method, 0, started)
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()
	observe(method, resp.StatusCode, started)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("read response: %w", err)}
	}

	isJSON := strings.Contains(resp.Header.Get(headerContentType), mimeJSON)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		if isJSON {
			_ = json.Unmarshal(raw, &payload)
		}
		return newAPIError(method, path, resp, payload.Message)
	}

	if !isJSON || out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// headers merges defaults, caller overrides and the bearer token.
func (c *Client) headers(opts RequestOptions) map[string]string {
	headers := map[string]string{
		headerContentType: mimeJSON,
		headerAccept:      mimeJSON,
		headerRequestID:   uuid.NewString(),
	}
	for k, v := range opts.Headers {
		headers[http.CanonicalHeaderKey(k)] = v
	}
	if !opts.SkipAuth && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			headers[headerAuthorization] = "Bearer " + token
		}
	}
	return headers
}

func encodeBody(body any, contentType string) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	if contentType == mimeJSON {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(payload), nil
	}
	switch b := body.(type) {
	case io.Reader:
		return b, nil
	case []byte:
		return bytes.NewReader(b), nil
	case string:
		return strings.NewReader(b), nil
	default:
		return nil, fmt.Errorf("unsupported body %T for content type %q", body, contentType)
	}
}
