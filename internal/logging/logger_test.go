package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdstream/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", " DEBUG ", log.DebugLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := logging.ParseLevel(testCase.level); got != testCase.expected {
				t.Errorf("expected level %v, got %v", testCase.expected, got)
			}
			assert.Equal(t, testCase.expected, logging.New(testCase.level).GetLevel())
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")
	logger.Debug("decoded", logging.FieldPath, "a.md", logging.FieldTokens, 3)

	assert.Contains(t, buf.String(), "decoded")
	assert.Contains(t, buf.String(), "path=a.md")
	assert.Contains(t, buf.String(), "tokens=3")
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("error")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestSetDefault(t *testing.T) {
	// Not parallel: modifies the default logger.

	original := logging.Default()
	defer logging.SetDefault(original)

	replacement := logging.New("info")
	logging.SetDefault(replacement)
	if logging.Default() != replacement {
		t.Error("SetDefault did not change the default logger")
	}

	logging.SetLevel("debug")
	if logging.Default().GetLevel() != log.DebugLevel {
		t.Error("SetLevel to debug failed")
	}
}

func TestWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "info"))
	ctx = logging.With(ctx, logging.FieldStage, "markdown")

	logging.FromContext(ctx).Info("start")
	assert.Contains(t, buf.String(), "stage=markdown")
}
