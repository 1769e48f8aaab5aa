// Package reconciler makes sure a person exists in the remote persons
// registry for the identity described by one set of login attributes. It
// probes by email and creates the person only when the probe says it is
// absent.
package reconciler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/personsync/pkg/attributes"
	"github.com/agentstation/personsync/pkg/constants"
	"github.com/agentstation/personsync/pkg/errors"
	"github.com/agentstation/personsync/pkg/logging"
	"github.com/agentstation/personsync/pkg/topdesk"
)

// Client is the remote surface driven by the reconciler.
type Client interface {
	ProbeExists(ctx context.Context, email string) (topdesk.LookupOutcome, error)
	CreatePerson(ctx context.Context, person topdesk.Person) (topdesk.CreateResult, error)
}

// Reconciler provisions persons from login attributes.
type Reconciler interface {
	// Process ensures the person described by attrs exists remotely.
	Process(ctx context.Context, attrs attributes.Set) error

	// Reconcile is Process with a report of what happened.
	Reconcile(ctx context.Context, attrs attributes.Set) (*Result, error)
}

// reconciler is the default implementation of Reconciler. It holds only
// immutable state.
type reconciler struct {
	client   Client
	branchID string
	logger   *zerolog.Logger
}

// New creates a Reconciler that files created persons under branchID.
func New(client Client, branchID string, opts ...Option) (Reconciler, error) {
	if client == nil {
		return nil, &errors.ValidationError{
			Field:   "client",
			Message: "cannot be nil",
		}
	}
	if branchID == "" {
		return nil, &errors.ValidationError{
			Field:   "branchId",
			Message: "cannot be empty",
		}
	}

	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		client:   client,
		branchID: branchID,
		logger:   options.logger,
	}, nil
}

// Process implements Reconciler.
func (r *reconciler) Process(ctx context.Context, attrs attributes.Set) error {
	_, err := r.Reconcile(ctx, attrs)
	return err
}

// Reconcile implements Reconciler.
func (r *reconciler) Reconcile(ctx context.Context, attrs attributes.Set) (*Result, error) {
	start := time.Now()
	logger := r.log(ctx)

	// mail gates every network call
	mail, err := attrs.RequireSingle(constants.AttrMail, constants.MinMailLength, constants.MaxMailLength)
	if err != nil {
		return nil, err
	}

	result := &Result{Email: mail}
	defer func() { result.Duration = time.Since(start) }()

	// client events carry the email from here on
	ctx = logging.WithSubject(ctx, mail)

	outcome, err := r.client.ProbeExists(ctx, mail)
	result.Outcome = outcome
	if err != nil {
		return result, err
	}

	switch outcome {
	case topdesk.Exists:
		logging.LogStat(logger, constants.StatUserExists, mail)
		result.Action = ActionNone
		return result, nil
	case topdesk.Absent:
		logging.LogStat(logger, constants.StatUserDoesNotExist, mail)
	default:
		return result, errors.NewRemoteError("probe", "", mail, 0, "")
	}

	surname, err := attrs.RequireSingle(constants.AttrSurname, 1, 0)
	if err != nil {
		return result, err
	}
	givenName, err := attrs.RequireSingle(constants.AttrGivenName, 1, 0)
	if err != nil {
		return result, err
	}

	person := BuildPerson(attrs, mail, surname, givenName, r.branchID)
	result.Person = &person

	created, err := r.client.CreatePerson(ctx, person)
	result.Create = &created
	if err != nil {
		return result, err
	}

	logging.LogStat(logger, constants.StatCreatingUser, mail)
	result.Action = ActionCreated
	return result, nil
}

func (r *reconciler) log(ctx context.Context) *zerolog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return logging.FromContext(ctx)
}
