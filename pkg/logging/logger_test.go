package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/personsync/pkg/logging"
)

func TestDefaultLogger(t *testing.T) {
	original := *logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	logging.SetDefault(logger)

	logging.Default().Info().Msg("info message")
	logging.Default().Error().Msg("error message")

	output := buf.String()
	if !strings.Contains(output, "info message") {
		t.Errorf("Expected info message in output, got: %s", output)
	}
	if !strings.Contains(output, "error message") {
		t.Errorf("Expected error message in output, got: %s", output)
	}
}

func TestContextLogger(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), testLogger.Logger)
	ctx = logging.WithSubject(ctx, "jane@example.com")
	ctx = logging.WithOperation(ctx, "probe")

	logging.FromContext(ctx).Info().Msg("test message")

	testLogger.AssertContains(t, `"email":"jane@example.com"`)
	testLogger.AssertContains(t, `"operation":"probe"`)
	testLogger.AssertContains(t, "test message")
}

func TestStat(t *testing.T) {
	testLogger := logging.NewTestLogger(t)

	logging.LogStat(testLogger.Logger, "user exists", "jane@example.com")
	logging.Stat(testLogger.Logger, "creating user").Int("attempt", 1).Msg("creating user")

	assert.Equal(t, 2, testLogger.CountContaining(`"stat":`))
	testLogger.AssertContains(t, `"stat":"user exists"`)
	testLogger.AssertContains(t, `"level":"info"`)
	testLogger.AssertContains(t, `"attempt":1`)
}

func TestStatNilLogger(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)

	logging.LogStat(nil, "user does not exist", "john@example.com")

	captured.AssertContains(t, `"stat":"user does not exist"`)
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNopLogger()
	// Should not panic
	logging.LogStat(logger, "user exists", "x@y.z")
	logger.Error().Msg("discarded")
}
