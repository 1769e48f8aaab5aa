package personsync

import (
	"sync"

	"github.com/agentstation/personsync/pkg/reconciler"
	"github.com/agentstation/personsync/pkg/topdesk"
)

// Hook function types for provisioning events
type (
	// PersonCreatedHook is called after a person was created remotely
	PersonCreatedHook func(person topdesk.Person, result topdesk.CreateResult)

	// PersonExistsHook is called when the probe found the person
	PersonExistsHook func(email string)
)

// hooks manages event callbacks for provisioning outcomes
type hooks struct {
	mu              sync.RWMutex
	onPersonCreated []PersonCreatedHook
	onPersonExists  []PersonExistsHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnPersonCreated registers a callback for created persons
func (h *hooks) OnPersonCreated(fn PersonCreatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPersonCreated = append(h.onPersonCreated, fn)
}

// OnPersonExists registers a callback for persons found by the probe
func (h *hooks) OnPersonExists(fn PersonExistsHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPersonExists = append(h.onPersonExists, fn)
}

// trigger fires the hooks matching a successful result
func (h *hooks) trigger(result *reconciler.Result) {
	if result == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	switch {
	case result.Action == reconciler.ActionCreated && result.Person != nil && result.Create != nil:
		for _, hook := range h.onPersonCreated {
			hook(*result.Person, *result.Create)
		}
	case result.Outcome == topdesk.Exists:
		for _, hook := range h.onPersonExists {
			hook(result.Email)
		}
	}
}
