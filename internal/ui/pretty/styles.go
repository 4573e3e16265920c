// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/mdstream/pkg/token"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Token classes
	Symbol     lipgloss.Style
	Word       lipgloss.Style
	Whitespace lipgloss.Style
	Link       lipgloss.Style
	Comment    lipgloss.Style
	Header     lipgloss.Style
	Prompt     lipgloss.Style

	// Token line components
	FilePath lipgloss.Style
	Location lipgloss.Style
	Kind     lipgloss.Style
	Text     lipgloss.Style
	URL      lipgloss.Style

	// Status
	Error   lipgloss.Style
	Success lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Symbol:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Word:       lipgloss.NewStyle(),
		Whitespace: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Link:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		Comment:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Header:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Kind:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Text:     lipgloss.NewStyle(),
		URL:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),

		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Symbol:         plain,
		Word:           plain,
		Whitespace:     plain,
		Link:           plain,
		Comment:        plain,
		Header:         plain,
		Prompt:         plain,
		FilePath:       plain,
		Location:       plain,
		Kind:           plain,
		Text:           plain,
		URL:            plain,
		Error:          plain,
		Success:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// ForKind returns the style used for tokens of kind.
func (s *Styles) ForKind(kind token.Kind) lipgloss.Style {
	switch kind {
	case token.KindMarkdownLink, token.KindMarkdownImage:
		return s.Link
	case token.KindMarkdownComment:
		return s.Comment
	case token.KindFrontMatterHeader, token.KindFrontMatterMarker:
		return s.Header
	case token.KindPromptVariable, token.KindPromptVariableWithData, token.KindPromptSlashCommand:
		return s.Prompt
	}
	switch {
	case kind.IsWhitespace() || kind.IsLineBreak():
		return s.Whitespace
	case kind.IsSymbol():
		return s.Symbol
	}
	return s.Word
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
