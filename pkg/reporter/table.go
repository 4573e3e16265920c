package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/mdstream/internal/ui/pretty"
	"github.com/yaklabco/mdstream/pkg/runner"
	"github.com/yaklabco/mdstream/pkg/token"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats results as one aligned table across all files.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	var rows []pretty.TableRow
	title := "TEXT"
	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			rows = append(rows, pretty.TableRow{
				File:  path,
				Kind:  "error",
				Text:  file.Error.Error(),
				Style: r.styles.Error,
			})
			continue
		}
		if file.Result == nil {
			continue
		}

		switch r.opts.View {
		case ViewRefs:
			title = "NAME -> TARGET"
			rows = append(rows, r.refRows(path, file.Result)...)
		case ViewFrontMatter:
			title = "KEY = VALUE"
			rows = append(rows, r.frontMatterRows(path, file.Result)...)
		default:
			rows = append(rows, r.tokenRows(path, file.Result)...)
		}
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(rows, true, title))

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	count := 0
	for _, row := range rows {
		if row.Kind != "error" {
			count++
		}
	}
	return count, nil
}

func (r *TableReporter) tokenRows(path string, res *runner.FileResult) []pretty.TableRow {
	var rows []pretty.TableRow
	walk(res.Tokens, 0, r.opts.Tree, func(tok token.Token, depth int) {
		rows = append(rows, pretty.TableRow{
			File:     path,
			Location: formatRange(tok.Range()),
			Kind:     strings.Repeat(" ", depth) + tok.Kind().String(),
			Text:     quote(tok.Text()),
			Style:    r.styles.ForKind(tok.Kind()),
		})
	})
	return rows
}

func (r *TableReporter) refRows(path string, res *runner.FileResult) []pretty.TableRow {
	rows := make([]pretty.TableRow, 0, len(res.References))
	for _, ref := range res.References {
		text := ref.Name
		if ref.Target != "" {
			text += " -> " + ref.Target
		}
		style := r.styles.Text
		if ref.IsURL {
			style = r.styles.URL
		}
		rows = append(rows, pretty.TableRow{
			File:     path,
			Location: formatRange(ref.Range),
			Kind:     string(ref.Kind),
			Text:     text,
			Style:    style,
		})
	}
	return rows
}

func (r *TableReporter) frontMatterRows(path string, res *runner.FileResult) []pretty.TableRow {
	meta, err := metadata(res)
	if err != nil {
		return []pretty.TableRow{{File: path, Kind: "error", Text: err.Error(), Style: r.styles.Error}}
	}
	if meta == nil {
		return nil
	}

	location := formatRange(res.FrontMatter.Range())
	keys := make([]string, 0, len(meta))
	for key := range meta {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	rows := make([]pretty.TableRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, pretty.TableRow{
			File:     path,
			Location: location,
			Kind:     fmt.Sprintf("%T", meta[key]),
			Text:     fmt.Sprintf("%s = %v", key, meta[key]),
			Style:    r.styles.Header,
		})
	}
	return rows
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
