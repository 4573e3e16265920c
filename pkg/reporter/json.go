package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdstream/pkg/refs"
	"github.com/yaklabco/mdstream/pkg/runner"
	"github.com/yaklabco/mdstream/pkg/token"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results. Only the fields of the
// selected view are populated.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Language    string           `json:"language,omitempty"`
	Bytes       int64            `json:"bytes"`
	Tokens      []JSONToken      `json:"tokens,omitempty"`
	References  []refs.Reference `json:"references,omitempty"`
	FrontMatter map[string]any   `json:"frontMatter,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONToken is a token with its children, if any.
type JSONToken struct {
	Kind     string      `json:"kind"`
	Text     string      `json:"text"`
	Range    token.Range `json:"range"`
	Children []JSONToken `json:"children,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDecoded int            `json:"filesDecoded"`
	FilesErrored int            `json:"filesErrored"`
	Bytes        int64          `json:"bytes"`
	Tokens       int            `json:"tokens"`
	References   int            `json:"references"`
	TokensByKind map[string]int `json:"tokensByKind"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, count := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return count, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) (*JSONOutput, int) {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{TokensByKind: make(map[string]int)},
	}
	if result == nil {
		return output, 0
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDecoded: stats.FilesDecoded,
		FilesErrored: stats.FilesErrored,
		Bytes:        stats.Bytes,
		Tokens:       stats.Tokens,
		References:   stats.References,
		TokensByKind: stats.TokensByKind,
	}
	if output.Summary.TokensByKind == nil {
		output.Summary.TokensByKind = make(map[string]int)
	}

	count := 0
	for _, file := range result.Files {
		fileResult := JSONFileResult{Path: displayPath(file.Path, r.opts.WorkingDir)}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Files = append(output.Files, fileResult)
			continue
		}
		if file.Result == nil {
			continue
		}

		fileResult.Language = file.Result.Language
		fileResult.Bytes = file.Result.Bytes

		switch r.opts.View {
		case ViewRefs:
			fileResult.References = file.Result.References
			count += len(file.Result.References)
		case ViewFrontMatter:
			meta, err := metadata(file.Result)
			if err != nil {
				fileResult.Error = err.Error()
			} else if meta != nil {
				fileResult.FrontMatter = meta
				count++
			}
		default:
			fileResult.Tokens = toJSONTokens(file.Result.Tokens, r.opts.Tree)
			count += len(fileResult.Tokens)
		}

		output.Files = append(output.Files, fileResult)
	}
	return output, count
}

func toJSONTokens(tokens []token.Token, deep bool) []JSONToken {
	out := make([]JSONToken, 0, len(tokens))
	for _, tok := range tokens {
		jt := JSONToken{Kind: tok.Kind().String(), Text: tok.Text(), Range: tok.Range()}
		if parent, ok := tok.(token.Parent); ok && deep {
			jt.Children = toJSONTokens(parent.Children(), deep)
		}
		out = append(out, jt)
	}
	return out
}
