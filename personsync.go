// Package personsync provisions persons in a TOPdesk installation from the
// attributes of a successful login. A Step plugs into an authentication
// processing pipeline: it probes the persons API by email and creates the
// person when it is not known yet. Any failure is returned to the pipeline,
// which decides how to react.
package personsync

import (
	"context"

	"github.com/agentstation/personsync/pkg/config"
	"github.com/agentstation/personsync/pkg/errors"
	"github.com/agentstation/personsync/pkg/pipeline"
	"github.com/agentstation/personsync/pkg/reconciler"
	"github.com/agentstation/personsync/pkg/topdesk"
)

// Name is the filter name reported to the pipeline.
const Name = "personsync"

// Step is the provisioning step of an authentication pipeline.
type Step interface {
	pipeline.Filter
	pipeline.Named

	// Reconcile runs the step on req and reports what happened.
	Reconcile(ctx context.Context, req *pipeline.Request) (*reconciler.Result, error)

	// Config returns the configuration the step was built with.
	Config() config.Config

	// OnPersonCreated registers a callback for created persons
	OnPersonCreated(PersonCreatedHook)

	// OnPersonExists registers a callback for persons found by the probe
	OnPersonExists(PersonExistsHook)
}

// step is the internal implementation of the Step interface
type step struct {
	cfg        config.Config
	reconciler reconciler.Reconciler

	hooks *hooks
}

// New creates a Step from the options map of the pipeline configuration.
// Missing or malformed options fail with a *errors.ConfigError.
func New(settings map[string]any, opts ...Option) (Step, error) {
	cfg, err := config.FromMap(settings)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, opts...)
}

// NewWithConfig creates a Step from an already loaded configuration.
func NewWithConfig(cfg config.Config, opts ...Option) (Step, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.timeout != nil {
		cfg.Timeout = *o.timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := o.client
	if client == nil {
		var clientOpts []topdesk.Option
		if o.httpClient != nil {
			clientOpts = append(clientOpts, topdesk.WithHTTPClient(o.httpClient))
		}
		if o.logger != nil {
			clientOpts = append(clientOpts, topdesk.WithLogger(o.logger))
		}
		client = topdesk.NewClient(cfg, clientOpts...)
	}

	var recOpts []reconciler.Option
	if o.logger != nil {
		recOpts = append(recOpts, reconciler.WithLogger(o.logger))
	}
	rec, err := reconciler.New(client, cfg.BranchID, recOpts...)
	if err != nil {
		return nil, err
	}

	return &step{
		cfg:        cfg,
		reconciler: rec,
		hooks:      newHooks(),
	}, nil
}

// Name implements pipeline.Named.
func (s *step) Name() string {
	return Name
}

// Config returns the step configuration.
func (s *step) Config() config.Config {
	return s.cfg
}

// Process implements pipeline.Filter. The request is never modified.
func (s *step) Process(ctx context.Context, req *pipeline.Request) error {
	_, err := s.Reconcile(ctx, req)
	return err
}

// Reconcile implements Step.
func (s *step) Reconcile(ctx context.Context, req *pipeline.Request) (*reconciler.Result, error) {
	if req == nil {
		return nil, &errors.ValidationError{Field: "request", Message: "cannot be nil"}
	}
	if req.Attributes == nil {
		return nil, &errors.ValidationError{Field: "attributes", Message: "cannot be nil"}
	}

	result, err := s.reconciler.Reconcile(ctx, req.Attributes)
	if err != nil {
		return result, err
	}

	s.hooks.trigger(result)
	return result, nil
}

// OnPersonCreated registers a callback for created persons
func (s *step) OnPersonCreated(fn PersonCreatedHook) {
	s.hooks.OnPersonCreated(fn)
}

// OnPersonExists registers a callback for persons found by the probe
func (s *step) OnPersonExists(fn PersonExistsHook) {
	s.hooks.OnPersonExists(fn)
}
