package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/personsync/pkg/topdesk"
)

// Action is what a reconciliation did remotely.
type Action int

const (
	// ActionNone means nothing was written.
	ActionNone Action = iota
	// ActionCreated means a person was created.
	ActionCreated
)

// String returns the action name.
func (a Action) String() string {
	if a == ActionCreated {
		return "created"
	}
	return "none"
}

// Result represents the outcome of a reconciliation.
type Result struct {
	Email   string
	Outcome topdesk.LookupOutcome
	Action  Action

	// Person and Create are set once creation was attempted.
	Person *topdesk.Person
	Create *topdesk.CreateResult

	Duration time.Duration
}

// Summary returns a one-line human readable summary.
func (r *Result) Summary() string {
	switch {
	case r == nil:
		return "no result"
	case r.Action == ActionCreated:
		return fmt.Sprintf("%s: created (status %d)", r.Email, r.Create.StatusCode)
	case r.Outcome == topdesk.Exists:
		return fmt.Sprintf("%s: already exists", r.Email)
	default:
		return fmt.Sprintf("%s: %s", r.Email, r.Outcome)
	}
}
