package pipeline

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/personsync/pkg/attributes"
	"github.com/agentstation/personsync/pkg/errors"
)

type namedFilter struct {
	name string
	fn   FilterFunc
}

func (f namedFilter) Name() string { return f.name }

func (f namedFilter) Process(ctx context.Context, req *Request) error { return f.fn(ctx, req) }

func TestChainRunsInOrder(t *testing.T) {
	var order []string
	record := func(name string) FilterFunc {
		return func(context.Context, *Request) error {
			order = append(order, name)
			return nil
		}
	}

	chain := NewChain(record("a"), nil, record("b"), record("c"))
	err := chain.Process(context.Background(), &Request{Attributes: attributes.Set{}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestChainHaltsOnError(t *testing.T) {
	boom := errors.NewValidationError("mail", nil, "attribute is missing")
	ranAfter := false

	chain := NewChain(
		FilterFunc(func(context.Context, *Request) error { return nil }),
		namedFilter{name: "personsync", fn: func(context.Context, *Request) error { return boom }},
		FilterFunc(func(context.Context, *Request) error {
			ranAfter = true
			return nil
		}),
	)

	err := chain.Process(context.Background(), &Request{})
	require.Error(t, err)
	assert.False(t, ranAfter)
	assert.True(t, errors.IsValidationError(err))

	var ferr *FilterError
	require.True(t, stderrors.As(err, &ferr))
	assert.Equal(t, "personsync", ferr.Filter)
	assert.Equal(t, 1, ferr.Index)
	assert.Contains(t, err.Error(), "filter personsync:")
}

func TestChainUnnamedFilter(t *testing.T) {
	chain := NewChain(FilterFunc(func(context.Context, *Request) error { return stderrors.New("x") }))
	err := chain.Process(context.Background(), &Request{})
	assert.EqualError(t, err, "filter #0: x")
}

func TestChainNilRequest(t *testing.T) {
	err := NewChain().Process(context.Background(), nil)
	assert.True(t, errors.IsValidationError(err))
}

func TestChainCancelledContext(t *testing.T) {
	ran := false
	chain := NewChain(FilterFunc(func(context.Context, *Request) error {
		ran = true
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := chain.Process(ctx, &Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}
