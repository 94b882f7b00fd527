// Package transport is the HTTP client used to talk to the FormBuilder API.
// It applies authentication and common headers and turns network failures
// and non-200 answers into typed errors. Requests are never retried.
package transport

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/agentstation/formsync/pkg/constants"
	"github.com/agentstation/formsync/pkg/errors"
	"github.com/agentstation/formsync/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http *http.Client
	auth Authenticator
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a new transport client with the specified authenticator.
func New(auth Authenticator, opts ...Option) *Client {
	if auth == nil {
		auth = NoAuth
	}
	c := &Client{
		http: &http.Client{Timeout: DefaultHTTPTimeout},
		auth: auth,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Timeout returns the request timeout.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(ctx context.Context, req *http.Request, apiKey string) (*http.Response, error) {
	if apiKey != "" {
		c.auth.Apply(req, apiKey)
	}

	// Set common headers
	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return nil, c.networkError(req, err)
	}

	logging.FromContext(ctx).Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("HTTP request completed")

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url, apiKey string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewConnectionError(url, err)
	}
	return c.Do(ctx, req, apiKey)
}

// networkError classifies a failed round trip.
func (c *Client) networkError(req *http.Request, err error) error {
	endpoint := req.URL.String()

	if stderrors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &netErr) && netErr.Timeout()) {
		return &errors.TimeoutError{
			Operation: req.Method + " " + endpoint,
			Duration:  c.http.Timeout.String(),
			Message:   "no response from server",
			Err:       err,
		}
	}

	return errors.NewConnectionError(endpoint, err)
}
