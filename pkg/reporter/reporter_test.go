package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstream/pkg/pipeline"
	"github.com/yaklabco/mdstream/pkg/reporter"
	"github.com/yaklabco/mdstream/pkg/runner"
)

const document = "---\ntitle: Guide\ntags: [a, b]\n---\nSee [docs](./a.md) and ![logo](https://example.com/l.png)\n"

// decoded builds a result with one decoded document and one failed file.
func decoded(t *testing.T) *runner.Result {
	t.Helper()

	res, err := runner.DecodeReader(context.Background(), "/work/docs/guide.md",
		strings.NewReader(document), runner.Options{Stage: pipeline.StageMarkdown})
	require.NoError(t, err)

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/docs/guide.md", Result: res},
			{Path: "/work/docs/broken.md", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 2,
			FilesDecoded:    1,
			FilesErrored:    1,
			Tokens:          len(res.Tokens),
			References:      len(res.References),
			TokensByKind:    map[string]int{"Word": 3},
		},
	}
}

func report(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"
	opts.WorkingDir = filepath.FromSlash("/work")

	rep, err := reporter.New(opts)
	require.NoError(t, err)
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), count
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}

	assert.False(t, reporter.Format("").IsValid())
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestTextReporter_Tokens(t *testing.T) {
	out, count := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, decoded(t))

	assert.Contains(t, out, filepath.FromSlash("docs/guide.md")+" (")
	assert.Contains(t, out, "markdown)")
	assert.Contains(t, out, "FrontMatterHeader")
	assert.Contains(t, out, `"[docs](./a.md)"`)
	assert.Contains(t, out, "1 file decoded")
	assert.Contains(t, out, "error: permission denied")
	assert.Positive(t, count)
	assert.NotContains(t, out, "\x1b[", "no ANSI codes with color never")
}

func TestTextReporter_Tree(t *testing.T) {
	flat, flatCount := report(t, reporter.Options{Format: reporter.FormatText}, decoded(t))
	tree, treeCount := report(t, reporter.Options{Format: reporter.FormatText, Tree: true}, decoded(t))

	assert.Greater(t, treeCount, flatCount)
	assert.NotContains(t, flat, "FrontMatterMarker")
	assert.Contains(t, tree, "FrontMatterMarker")
}

func TestTextReporter_Refs(t *testing.T) {
	out, count := report(t, reporter.Options{Format: reporter.FormatText, View: reporter.ViewRefs}, decoded(t))

	assert.Equal(t, 2, count)
	assert.Contains(t, out, filepath.FromSlash("docs/guide.md")+":5:5")
	assert.Contains(t, out, "docs -> ./a.md (markdown)")
	assert.Contains(t, out, "logo -> https://example.com/l.png")
}

func TestTextReporter_FrontMatter(t *testing.T) {
	out, count := report(t, reporter.Options{Format: reporter.FormatText, View: reporter.ViewFrontMatter}, decoded(t))

	assert.Equal(t, 1, count)
	assert.Contains(t, out, "  title: Guide")
	assert.Contains(t, out, "  tags:")
}

func TestTextReporter_NoFiles(t *testing.T) {
	out, count := report(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, &runner.Result{})
	assert.Equal(t, 0, count)
	assert.Equal(t, "No files to decode.\n", out)
}

func TestTableReporter(t *testing.T) {
	out, count := report(t, reporter.Options{Format: reporter.FormatTable, View: reporter.ViewRefs}, decoded(t))

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[0], "FILE")
	assert.Contains(t, lines[0], "NAME -> TARGET")
	assert.Equal(t, 2, count)
	assert.Contains(t, out, "permission denied")
}

func TestTableReporter_FrontMatter(t *testing.T) {
	out, count := report(t, reporter.Options{Format: reporter.FormatTable, View: reporter.ViewFrontMatter}, decoded(t))

	assert.Equal(t, 2, count)
	assert.Contains(t, out, "title = Guide")
	assert.Less(t, strings.Index(out, "tags ="), strings.Index(out, "title ="), "keys are sorted")
}

func TestJSONReporter(t *testing.T) {
	out, count := report(t, reporter.Options{Format: reporter.FormatJSON, Tree: true}, decoded(t))

	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	require.Len(t, parsed.Files, 2)
	doc := parsed.Files[0]
	assert.Equal(t, filepath.FromSlash("docs/guide.md"), doc.Path)
	assert.Equal(t, "markdown", doc.Language)
	assert.Equal(t, int64(len(document)), doc.Bytes)
	require.NotEmpty(t, doc.Tokens)
	assert.Equal(t, "FrontMatterHeader", doc.Tokens[0].Kind)
	assert.Len(t, doc.Tokens[0].Children, 3)
	assert.Equal(t, len(doc.Tokens), count)

	assert.Equal(t, "permission denied", parsed.Files[1].Error)
	assert.Equal(t, 1, parsed.Summary.FilesErrored)
}

func TestJSONReporter_FrontMatterView(t *testing.T) {
	out, count := report(t, reporter.Options{Format: reporter.FormatJSON, View: reporter.ViewFrontMatter, Compact: true}, decoded(t))

	assert.Equal(t, 1, count)
	assert.Equal(t, 1, strings.Count(out, "\n"), "compact output is one line")

	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "Guide", parsed.Files[0].FrontMatter["title"])
	assert.Empty(t, parsed.Files[0].Tokens)
}

func TestJSONReporter_NilResult(t *testing.T) {
	out, count := report(t, reporter.Options{Format: reporter.FormatJSON}, nil)

	assert.Equal(t, 0, count)
	var parsed reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Empty(t, parsed.Files)
}
