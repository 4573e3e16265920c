package runner

import (
	"time"

	"github.com/yaklabco/mdstream/pkg/refs"
	"github.com/yaklabco/mdstream/pkg/token"
)

// FileResult is the decoded content of one document.
type FileResult struct {
	// Name is the path or display name of the document ("-" for stdin).
	Name string

	Tokens     []token.Token
	References []refs.Reference

	// FrontMatter is the leading header, if the stage recognizes one.
	FrontMatter *token.FrontMatterHeader

	// Language is the detected document language.
	Language string

	Bytes    int64
	Duration time.Duration
}

// FileOutcome pairs a discovered path with its result or error.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *FileResult
	Error  error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesDecoded    int
	FilesErrored    int

	Bytes      int64
	Tokens     int
	References int

	// TokensByKind counts top-level tokens by kind name.
	TokensByKind map[string]int
}

// Result is the overall runner result. Files are ordered by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any file failed to decode.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Errors returns the per-file errors in path order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = append(errs, outcome.Error)
		}
	}
	return errs
}

// NewResult builds a Result from outcomes decoded outside Run, such as stdin.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes)), Stats: newStats()}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

func newStats() Stats {
	return Stats{TokensByKind: make(map[string]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesDecoded++
	r.Stats.Bytes += outcome.Result.Bytes
	r.Stats.Tokens += len(outcome.Result.Tokens)
	r.Stats.References += len(outcome.Result.References)
	for _, tok := range outcome.Result.Tokens {
		r.Stats.TokensByKind[tok.Kind().String()]++
	}
}
