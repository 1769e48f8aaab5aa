package personsync

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/personsync/pkg/errors"
	"github.com/agentstation/personsync/pkg/reconciler"
)

// Option is a function that configures a Step
type Option func(*options) error

type options struct {
	httpClient *http.Client
	client     reconciler.Client
	logger     *zerolog.Logger
	timeout    *time.Duration
}

func defaultOptions() *options {
	return &options{}
}

// WithHTTPClient configures the HTTP client used for remote calls. Its own
// timeout applies instead of the configured one.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return &errors.ValidationError{Field: "httpClient", Message: "cannot be nil"}
		}
		o.httpClient = hc
		return nil
	}
}

// WithClient replaces the remote client entirely.
func WithClient(client reconciler.Client) Option {
	return func(o *options) error {
		if client == nil {
			return &errors.ValidationError{Field: "client", Message: "cannot be nil"}
		}
		o.client = client
		return nil
	}
}

// WithLogger configures the logger. Without it the logger carried by the
// context of each call is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		o.logger = logger
		return nil
	}
}

// WithTimeout overrides the configured transport timeout. Zero keeps the
// transport default.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout < 0 {
			return &errors.ValidationError{Field: "timeout", Value: timeout, Message: "cannot be negative"}
		}
		o.timeout = &timeout
		return nil
	}
}
