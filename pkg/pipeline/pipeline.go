// Package pipeline models the processing chain an identity provider runs
// after authentication. Each Filter sees the request attributes in turn.
// The first failing filter stops the chain.
package pipeline

import (
	"context"
	"fmt"

	"github.com/agentstation/personsync/pkg/attributes"
	"github.com/agentstation/personsync/pkg/errors"
	"github.com/agentstation/personsync/pkg/logging"
)

// Request is the authentication request handed to filters.
type Request struct {
	// Attributes are the identity claims of the authenticated user.
	Attributes attributes.Set
}

// Filter processes a request.
type Filter interface {
	Process(ctx context.Context, req *Request) error
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(ctx context.Context, req *Request) error

// Process implements Filter.
func (f FilterFunc) Process(ctx context.Context, req *Request) error {
	return f(ctx, req)
}

// Named is implemented by filters that report a name for errors and logs.
type Named interface {
	Name() string
}

// FilterError wraps the error of the filter that halted a chain.
type FilterError struct {
	Filter string
	Index  int
	Err    error
}

// Error implements the error interface
func (e *FilterError) Error() string {
	return fmt.Sprintf("filter %s: %v", e.Filter, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FilterError) Unwrap() error {
	return e.Err
}

// Chain runs filters in order.
type Chain struct {
	filters []Filter
}

// NewChain creates a chain of filters. Nil filters are skipped.
func NewChain(filters ...Filter) *Chain {
	c := &Chain{}
	for _, f := range filters {
		if f != nil {
			c.filters = append(c.filters, f)
		}
	}
	return c
}

// Process runs every filter on req. The first error halts the chain and is
// returned as a *FilterError.
func (c *Chain) Process(ctx context.Context, req *Request) error {
	if req == nil {
		return &errors.ValidationError{Field: "request", Message: "cannot be nil"}
	}

	logger := logging.FromContext(ctx)
	for i, f := range c.filters {
		if err := ctx.Err(); err != nil {
			return &FilterError{Filter: nameOf(f, i), Index: i, Err: err}
		}
		if err := f.Process(ctx, req); err != nil {
			name := nameOf(f, i)
			logger.Debug().Err(err).Str("filter", name).Int("index", i).Msg("filter halted chain")
			return &FilterError{Filter: name, Index: i, Err: err}
		}
	}
	return nil
}

func nameOf(f Filter, i int) string {
	if n, ok := f.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("#%d", i)
}
