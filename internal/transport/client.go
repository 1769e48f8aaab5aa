// Package transport provides the HTTP plumbing shared by remote API clients:
// authentication, common headers and an explicit timeout.
package transport

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/agentstation/personsync/pkg/constants"
	"github.com/agentstation/personsync/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// maxBodyBytes caps how much of a response body is kept for diagnostics.
const maxBodyBytes = 64 << 10

// Client provides HTTP client functionality with authentication.
type Client struct {
	http *http.Client
	auth Authenticator
}

// New creates a new transport client with the specified authenticator.
// A zero timeout keeps the transport default.
func New(auth Authenticator, timeout time.Duration) *Client {
	return NewWithHTTPClient(&http.Client{Timeout: timeout}, auth)
}

// NewWithHTTPClient wraps an existing *http.Client, e.g. one with custom TLS.
func NewWithHTTPClient(hc *http.Client, auth Authenticator) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if auth == nil {
		auth = &NoAuth{}
	}
	return &Client{http: hc, auth: auth}
}

// Do performs an HTTP request with authentication and common headers applied.
// The caller must close the response body.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	c.auth.Apply(req)

	req.Header.Set("Accept", constants.ContentTypeJSON)
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	return c.http.Do(req)
}

// ReadBody reads at most maxBodyBytes of the response body. The body is
// always closed.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return body, errors.WrapIO("read", "response body", err)
	}
	return body, nil
}

// Discard drains and closes the response body so the connection can be reused.
func Discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
}
