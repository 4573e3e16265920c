package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minFileWidth     = 12
	minLocWidth      = 9
	minKindWidth     = 6
	minTextWidth     = 16
	heavySeparator   = "="
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableRow is one row of a token or reference table.
type TableRow struct {
	File     string
	Location string
	Kind     string
	Text     string

	// Style colors the row; the zero style leaves it plain.
	Style lipgloss.Style
}

// TableFormatter lays rows out in fixed-width columns that fit the terminal.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

type columnWidths struct {
	file, loc, kind, text int
}

// FormatTable renders rows under a FILE, LOC, KIND, TEXT header. When
// showFile is false the FILE column is omitted.
func (t *TableFormatter) FormatTable(rows []TableRow, showFile bool, textTitle string) string {
	if len(rows) == 0 {
		return ""
	}
	if textTitle == "" {
		textTitle = "TEXT"
	}

	widths := t.widths(rows, showFile, textTitle)

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(t.line(widths, showFile, "FILE", "LOC", "KIND", textTitle)))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.total(widths, showFile))))
	builder.WriteString("\n")

	for _, row := range rows {
		content := t.line(widths, showFile,
			truncateFilePath(row.File, widths.file),
			truncateString(row.Location, widths.loc),
			truncateString(row.Kind, widths.kind),
			truncateString(row.Text, widths.text),
		)
		builder.WriteString(row.Style.Render(content))
		builder.WriteString("\n")
	}
	return builder.String()
}

func (t *TableFormatter) line(widths columnWidths, showFile bool, file, loc, kind, text string) string {
	pad := strings.Repeat(" ", tablePadding)
	var cells []string
	if showFile {
		cells = append(cells, padRight(file, widths.file))
	}
	cells = append(cells, padRight(loc, widths.loc), padRight(kind, widths.kind), text)
	return " " + strings.Join(cells, pad)
}

func (t *TableFormatter) total(widths columnWidths, showFile bool) int {
	total := 1 + widths.loc + widths.kind + widths.text + 2*tablePadding
	if showFile {
		total += widths.file + tablePadding
	}
	return total
}

// widths sizes columns to their content, then shrinks TEXT and FILE (in that
// order) to fit the terminal width.
func (t *TableFormatter) widths(rows []TableRow, showFile bool, textTitle string) columnWidths {
	widths := columnWidths{
		file: max(minFileWidth, len("FILE")),
		loc:  minLocWidth,
		kind: max(minKindWidth, len("KIND")),
		text: max(minTextWidth, runeLen(textTitle)),
	}
	for _, row := range rows {
		widths.file = max(widths.file, runeLen(row.File))
		widths.loc = max(widths.loc, runeLen(row.Location))
		widths.kind = max(widths.kind, runeLen(row.Kind))
		widths.text = max(widths.text, runeLen(row.Text))
	}
	if !showFile {
		widths.file = 0
	}

	overflow := t.total(widths, showFile) - t.termWidth
	if overflow > 0 {
		shrink := min(overflow, widths.text-minTextWidth)
		widths.text -= shrink
		overflow -= shrink
	}
	if overflow > 0 && showFile {
		widths.file -= min(overflow, widths.file-minFileWidth)
	}
	return widths
}

// FormatRange renders a range as "l:c-l:c", or "l:c-c" on a single line.
func FormatRange(startLine, startColumn, endLine, endColumn int) string {
	if startLine == endLine {
		return fmt.Sprintf("%d:%d-%d", startLine, startColumn, endColumn)
	}
	return fmt.Sprintf("%d:%d-%d:%d", startLine, startColumn, endLine, endColumn)
}

// runeLen is the display width of s in terminal cells.
func runeLen(s string) int {
	return runewidth.StringWidth(s)
}

func padRight(s string, width int) string {
	if n := runeLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// truncateString cuts str to maxLen cells, ending in "..." when cut.
func truncateString(str string, maxLen int) string {
	if runeLen(str) <= maxLen {
		return str
	}
	return truncate.StringWithTail(str, uint(max(maxLen, 0)), ellipsis)
}

// truncateFilePath truncates a path, keeping its end (the file name).
func truncateFilePath(path string, maxLen int) string {
	if runeLen(path) <= maxLen {
		return path
	}
	prefix := ellipsis
	if maxLen <= len(ellipsis) {
		prefix = ""
	}
	runes := []rune(path)
	for start := range runes {
		if tail := string(runes[start:]); runeLen(tail) <= maxLen-len(prefix) {
			return prefix + tail
		}
	}
	return prefix
}
