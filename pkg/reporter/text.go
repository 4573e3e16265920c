package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdstream/internal/ui/pretty"
	"github.com/yaklabco/mdstream/pkg/runner"
	"github.com/yaklabco/mdstream/pkg/token"
)

// Text layout widths.
const (
	textLocWidth  = 12
	textKindWidth = 26
	textIndent    = "  "
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to decode."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil {
			continue
		}

		switch r.opts.View {
		case ViewRefs:
			total += r.writeRefs(path, file.Result)
		case ViewFrontMatter:
			total += r.writeFrontMatter(path, file.Result)
		default:
			total += r.writeTokens(path, file.Result)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return total, nil
}

func (r *TextReporter) writeTokens(path string, res *runner.FileResult) int {
	header := fmt.Sprintf("%s %s", r.styles.FilePath.Render(path),
		r.styles.Dim.Render(fmt.Sprintf("(%d tokens, %s)", len(res.Tokens), res.Language)))
	fmt.Fprintln(r.bw, header)

	count := 0
	walk(res.Tokens, 0, r.opts.Tree, func(tok token.Token, depth int) {
		count++
		indent := strings.Repeat(textIndent, depth+1)
		fmt.Fprintf(r.bw, "%s%s %s %s\n",
			indent,
			r.styles.Location.Render(fmt.Sprintf("%-*s", textLocWidth, formatRange(tok.Range()))),
			r.styles.Kind.Render(fmt.Sprintf("%-*s", textKindWidth-len(indent)+len(textIndent), tok.Kind())),
			r.styles.ForKind(tok.Kind()).Render(quote(tok.Text())),
		)
	})
	fmt.Fprintln(r.bw)
	return count
}

func (r *TextReporter) writeRefs(path string, res *runner.FileResult) int {
	for _, ref := range res.References {
		target := ""
		if ref.Target != "" {
			style := r.styles.Text
			if ref.IsURL {
				style = r.styles.URL
			}
			target = " -> " + style.Render(ref.Target)
		}
		lang := ""
		if ref.Language != "" {
			lang = " " + r.styles.Dim.Render("("+ref.Language+")")
		}
		fmt.Fprintf(r.bw, "%s %s %s%s%s\n",
			r.styles.Location.Render(fmt.Sprintf("%s:%d:%d", path, ref.Range.StartLine, ref.Range.StartColumn)),
			r.styles.Kind.Render(fmt.Sprintf("%-8s", ref.Kind)),
			r.styles.Bold.Render(ref.Name),
			target,
			lang,
		)
	}
	return len(res.References)
}

func (r *TextReporter) writeFrontMatter(path string, res *runner.FileResult) int {
	fmt.Fprintln(r.bw, r.styles.FilePath.Render(path))

	meta, err := metadata(res)
	switch {
	case err != nil:
		fmt.Fprintln(r.bw, textIndent+r.styles.Error.Render(fmt.Sprintf("error: %v", err)))
		return 0
	case meta == nil:
		fmt.Fprintln(r.bw, textIndent+r.styles.Dim.Render("(no front matter)"))
		return 0
	}

	out, err := yaml.Marshal(meta)
	if err != nil {
		fmt.Fprintln(r.bw, textIndent+r.styles.Error.Render(fmt.Sprintf("error: %v", err)))
		return 0
	}
	for _, line := range strings.Split(strings.TrimSuffix(string(out), "\n"), "\n") {
		fmt.Fprintln(r.bw, textIndent+line)
	}
	return 1
}
