package cli

import (
	"errors"

	"github.com/yaklabco/mdstream/internal/configloader"
	"github.com/yaklabco/mdstream/pkg/runner"
)

// Exit codes for mdstream.
const (
	// ExitSuccess indicates every document decoded.
	ExitSuccess = 0

	// ExitDecodeErrors indicates the run completed but some documents failed.
	ExitDecodeErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrDecodeFailures is returned when at least one document failed to decode.
var ErrDecodeFailures = errors.New("some documents failed to decode")

// ErrInvalidUsage wraps flag and argument errors.
var ErrInvalidUsage = errors.New("invalid usage")

// ExitCodeFromResult determines the exit code of a completed run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasErrors() {
		return ExitDecodeErrors
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDecodeFailures):
		return ExitDecodeErrors
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.As(err, &validationErr), errors.Is(err, errConfigLoad):
		return ExitConfigError
	case errors.Is(err, errInputRead), errors.Is(err, errOutputFile):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
