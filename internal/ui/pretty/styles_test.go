package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdstream/internal/ui/pretty"
	"github.com/yaklabco/mdstream/pkg/token"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, kind := range []token.Kind{token.KindWord, token.KindSpace, token.KindMarkdownLink, token.KindPromptVariable} {
		assert.Equal(t, "x", styles.ForKind(kind).Render("x"), kind.String())
	}
	assert.Equal(t, "test", styles.Bold.Render("test"))
}

func TestStyles_ForKind(t *testing.T) {
	styles := pretty.NewStyles(true)

	tests := []struct {
		kind token.Kind
		want func(*pretty.Styles) any
	}{
		{token.KindMarkdownLink, func(s *pretty.Styles) any { return s.Link }},
		{token.KindMarkdownImage, func(s *pretty.Styles) any { return s.Link }},
		{token.KindMarkdownComment, func(s *pretty.Styles) any { return s.Comment }},
		{token.KindFrontMatterHeader, func(s *pretty.Styles) any { return s.Header }},
		{token.KindPromptSlashCommand, func(s *pretty.Styles) any { return s.Prompt }},
		{token.KindNewLine, func(s *pretty.Styles) any { return s.Whitespace }},
		{token.KindTab, func(s *pretty.Styles) any { return s.Whitespace }},
		{token.KindHash, func(s *pretty.Styles) any { return s.Symbol }},
		{token.KindWord, func(s *pretty.Styles) any { return s.Word }},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want(styles), styles.ForKind(testCase.kind), testCase.kind.String())
	}
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf), "always mode should return true")
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout), "never mode should return false")
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "auto mode with non-TTY should return false")
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout), "NO_COLOR should disable colors")
}

func TestIsColorEnabled_DefaultsToAuto(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled("", &buf))
	assert.False(t, pretty.IsColorEnabled("unknown", &buf))
}
