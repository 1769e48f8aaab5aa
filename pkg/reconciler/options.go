package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/personsync/pkg/errors"
)

// options configures a reconciler.
type options struct {
	logger *zerolog.Logger
}

func defaultOptions() *options {
	return &options{}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithLogger sets the logger used for stat markers. Without it the logger
// carried by the context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &errors.ValidationError{
				Field:   "logger",
				Message: "cannot be nil",
			}
		}
		o.logger = logger
		return nil
	}
}
