package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	Format Format
	View   View

	// Color controls colorized output: "auto" (default), "always" or "never".
	Color string

	// ShowSummary appends aggregate statistics.
	ShowSummary bool

	// Tree prints the children of composite tokens, indented (tokens view).
	Tree bool

	// Compact uses minified JSON.
	Compact bool

	// WorkingDir is the directory paths are shown relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		View:        ViewTokens,
		Color:       "auto",
		ShowSummary: true,
	}
}
