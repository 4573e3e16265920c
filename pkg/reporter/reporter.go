// Package reporter writes decoded documents as text, tables or JSON.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/yaklabco/mdstream/internal/ui/pretty"
	"github.com/yaklabco/mdstream/pkg/decoder/frontmatter"
	"github.com/yaklabco/mdstream/pkg/runner"
	"github.com/yaklabco/mdstream/pkg/token"
)

// Reporter formats and writes decode results.
type Reporter interface {
	// Report writes formatted output for result. It returns the number of
	// items (tokens, references or headers) written.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.View == "" {
		opts.View = ViewTokens
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath makes path relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func quote(text string) string {
	return strconv.Quote(text)
}

func formatRange(r token.Range) string {
	return pretty.FormatRange(r.StartLine, r.StartColumn, r.EndLine, r.EndColumn)
}

// metadata decodes the front matter of a result; nil when there is none.
func metadata(res *runner.FileResult) (map[string]any, error) {
	if res == nil || res.FrontMatter == nil {
		return nil, nil
	}
	meta, err := frontmatter.Metadata(res.FrontMatter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", res.Name, err)
	}
	return meta, nil
}

// walk calls fn for each token and, when deep is set, every descendant.
func walk(tokens []token.Token, depth int, deep bool, fn func(tok token.Token, depth int)) {
	for _, tok := range tokens {
		fn(tok, depth)
		if parent, ok := tok.(token.Parent); ok && deep {
			walk(parent.Children(), depth+1, deep, fn)
		}
	}
}
