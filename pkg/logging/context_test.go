package logging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/personsync/pkg/logging"
)

func TestContextFunctions(t *testing.T) {
	t.Run("FromContext falls back to default", func(t *testing.T) {
		assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
		//nolint:staticcheck // nil context is handled explicitly
		assert.Equal(t, logging.Default(), logging.FromContext(nil))
	})

	t.Run("WithLogger nil uses default", func(t *testing.T) {
		ctx := logging.WithLogger(context.Background(), nil)
		assert.Equal(t, logging.Default(), logging.FromContext(ctx))
	})

	t.Run("WithRequestID sets id and field", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithRequestID(ctx, "run-123")

		assert.Equal(t, "run-123", logging.RequestID(ctx))
		logging.FromContext(ctx).Info().Msg("hello")
		tl.AssertContains(t, `"request_id":"run-123"`)
	})

	t.Run("RequestID empty when unset", func(t *testing.T) {
		assert.Equal(t, "", logging.RequestID(context.Background()))
	})

	t.Run("WithSubject sets email and field", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithSubject(ctx, "jane@example.com")

		assert.Equal(t, "jane@example.com", logging.Subject(ctx))
		assert.Equal(t, "", logging.Subject(context.Background()))
		logging.FromContext(ctx).Info().Msg("hello")
		tl.AssertContains(t, `"email":"jane@example.com"`)
	})

	t.Run("WithField keeps value types", func(t *testing.T) {
		tl := logging.NewTestLogger(t)
		ctx := logging.WithLogger(context.Background(), tl.Logger)
		ctx = logging.WithField(ctx, "branch", "b-1")
		ctx = logging.WithField(ctx, "status", 204)
		ctx = logging.WithField(ctx, "error", errors.New("boom"))
		ctx = logging.WithField(ctx, "exists", false)

		logging.FromContext(ctx).Info().Msg("fields")
		tl.AssertContains(t, `"branch":"b-1"`)
		tl.AssertContains(t, `"status":204`)
		tl.AssertContains(t, `"error":"boom"`)
		tl.AssertContains(t, `"exists":false`)
	})
}
