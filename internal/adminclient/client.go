// Package adminclient is a Go client for the EstateHub admin API. It keeps
// the bearer token, decodes the response envelope, and tears the session
// down uniformly when the server answers 401 or 403.
package adminclient

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
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotLoggedIn is returned by calls that need a token when none is held.
var ErrNotLoggedIn = errors.New("adminclient: not logged in")

// FieldError is one invalid input field reported by the server.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Detail  string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("adminclient: %d %s (%s)", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("adminclient: %d %s", e.Status, e.Message)
}

// SessionExpired reports whether the server rejected the token.
func (e *APIError) SessionExpired() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}

// Page is the pagination block of list responses.
type Page struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Error      string          `json:"error"`
	Errors     []FieldError    `json:"errors"`
	Pagination *Page           `json:"pagination"`
	Count      *int            `json:"count"`
}

// Client talks to one EstateHub server. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger

	mu    sync.Mutex
	token string

	// OnSessionExpired runs after any 401/403 answer, once the token has
	// been discarded. Set it before making calls.
	OnSessionExpired func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithToken starts the client with an existing bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token currently held, or "".
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) setToken(t string) {
	c.mu.Lock()
	c.token = t
	c.mu.Unlock()
}

// expire discards the token and notifies the application.
func (c *Client) expire() {
	c.setToken("")
	if c.OnSessionExpired != nil {
		c.OnSessionExpired()
	}
}

// do sends one request and decodes the envelope's data into out (if non-nil).
// It returns the pagination block when the server sent one.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) (*Page, error) {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("adminclient: encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return nil, fmt.Errorf("adminclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := c.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adminclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.Debug("admin api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		if resp.StatusCode < 400 {
			return nil, fmt.Errorf("adminclient: decode %s %s: %w", method, path, err)
		}
		// Proxies answer errors with HTML; keep the status, drop the body.
		env = envelope{}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message, Detail: env.Error, Fields: env.Errors}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		if apiErr.SessionExpired() {
			c.log.Info("admin session expired", zap.Int("status", resp.StatusCode))
			c.expire()
		}
		return nil, apiErr
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("adminclient: decode %s %s data: %w", method, path, err)
		}
	}
	return env.Pagination, nil
}

// requireToken fails fast when an admin call is attempted without a session.
func (c *Client) requireToken() error {
	if c.Token() == "" {
		return ErrNotLoggedIn
	}
	return nil
}
