package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/mdstream/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files decoded, 412 tokens, 9 references (1 failed)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to decode.") + "\n"
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s decoded", stats.FilesDecoded, plural(stats.FilesDecoded, wordFile, wordFiles))),
		fmt.Sprintf("%d %s", stats.Tokens, plural(stats.Tokens, "token", "tokens")),
		fmt.Sprintf("%d %s", stats.References, plural(stats.References, "reference", "references")),
	}
	line := strings.Join(parts, ", ")
	if stats.FilesErrored > 0 {
		line += " " + s.Error.Render(fmt.Sprintf("(%d failed)", stats.FilesErrored))
	}
	return line + "\n"
}

// FormatSummary formats run statistics as a block, listing token counts by kind.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.Bold.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files decoded:  " + strconv.Itoa(stats.FilesDecoded) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:   " + s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	builder.WriteString("  Bytes read:     " + strconv.FormatInt(stats.Bytes, 10) + "\n")
	builder.WriteString("  Tokens:         " + strconv.Itoa(stats.Tokens) + "\n")
	builder.WriteString("  References:     " + strconv.Itoa(stats.References) + "\n")

	kinds := make([]string, 0, len(stats.TokensByKind))
	for kind := range stats.TokensByKind {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(&builder, "    %-24s %s\n", kind+":", s.Dim.Render(strconv.Itoa(stats.TokensByKind[kind])))
	}

	return builder.String()
}
