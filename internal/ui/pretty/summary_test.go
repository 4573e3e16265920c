package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdstream/internal/ui/pretty"
	"github.com/yaklabco/mdstream/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no files",
			stats: runner.Stats{},
			want:  "No files to decode.\n",
		},
		{
			name:  "singular",
			stats: runner.Stats{FilesDiscovered: 1, FilesDecoded: 1, Tokens: 1, References: 1},
			want:  "1 file decoded, 1 token, 1 reference\n",
		},
		{
			name:  "failures",
			stats: runner.Stats{FilesDiscovered: 3, FilesDecoded: 2, FilesErrored: 1, Tokens: 40, References: 0},
			want:  "2 files decoded, 40 tokens, 0 references (1 failed)\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, styles.FormatSummaryOneLine(testCase.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{
		FilesDecoded: 2,
		FilesErrored: 1,
		Bytes:        1024,
		Tokens:       7,
		References:   2,
		TokensByKind: map[string]int{"Word": 5, "MarkdownLink": 2},
	})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files decoded:  2")
	assert.Contains(t, result, "Files failed:   1")
	assert.Contains(t, result, "Bytes read:     1024")
	assert.Contains(t, result, "References:     2")
	assert.Less(t, indexOf(result, "MarkdownLink:"), indexOf(result, "Word:"), "kinds are sorted")
}

func TestFormatSummary_NoFailures(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesDecoded: 1})
	assert.NotContains(t, result, "Files failed")
}

func indexOf(s, sub string) int {
	for i := range len(s) - len(sub) + 1 {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
