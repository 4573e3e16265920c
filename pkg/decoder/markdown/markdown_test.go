package markdown_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"pgregory.net/rapid"

	"github.com/yaklabco/mdstream/pkg/decoder/frontmatter"
	"github.com/yaklabco/mdstream/pkg/decoder/lines"
	"github.com/yaklabco/mdstream/pkg/decoder/markdown"
	"github.com/yaklabco/mdstream/pkg/decoder/simple"
	"github.com/yaklabco/mdstream/pkg/stream"
	"github.com/yaklabco/mdstream/pkg/token"
)

func decode(t require.TestingT, input string) []token.Token {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dec := markdown.New(frontmatter.New(simple.New(lines.New(stream.FromString(input)))))
	tokens, err := dec.ConsumeAll(ctx)
	require.NoError(t, err)
	return tokens
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind()
	}
	return out
}

func TestLink(t *testing.T) {
	t.Parallel()

	got := decode(t, "[a](b)")
	require.Len(t, got, 1)

	link, ok := got[0].(*token.MarkdownLink)
	require.True(t, ok, "got %s", got[0])
	assert.Equal(t, "[a]", link.Caption())
	assert.Equal(t, "(b)", link.Reference())
	assert.Equal(t, "b", link.Path())
	assert.False(t, link.IsURL())
	assert.Equal(t, token.SingleLine(1, 1, 6), link.Range())
}

func TestImage(t *testing.T) {
	t.Parallel()

	got := decode(t, "see ![logo](https://example.com/a.png)!")
	require.Len(t, got, 4)

	image, ok := got[2].(*token.MarkdownImage)
	require.True(t, ok, "got %s", got[2])
	assert.Equal(t, "[logo]", image.Caption())
	assert.Equal(t, "https://example.com/a.png", image.Path())
	assert.True(t, image.IsURL())
	assert.Equal(t, token.KindExclamationMark, got[3].Kind())
}

func TestMarkdownCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "nested caption brackets",
			input: "[a [b] c](d)",
			want:  []token.Kind{token.KindMarkdownLink},
		},
		{
			name:  "nested reference parentheses",
			input: "[a](b(c)d)",
			want:  []token.Kind{token.KindMarkdownLink},
		},
		{
			name:  "space between caption and reference",
			input: "[a] (b)",
			want: []token.Kind{
				token.KindLeftBracket, token.KindWord, token.KindRightBracket, token.KindSpace,
				token.KindLeftParenthesis, token.KindWord, token.KindRightParenthesis,
			},
		},
		{
			name:  "newline inside caption",
			input: "[a\nb](c)",
			want: []token.Kind{
				token.KindLeftBracket, token.KindWord, token.KindNewLine, token.KindWord,
				token.KindRightBracket, token.KindLeftParenthesis, token.KindWord, token.KindRightParenthesis,
			},
		},
		{
			name:  "newline after failed caption starts a new link",
			input: "[a\n[b](c)",
			want:  []token.Kind{token.KindLeftBracket, token.KindWord, token.KindNewLine, token.KindMarkdownLink},
		},
		{
			name:  "vertical tab and form feed are allowed",
			input: "[a\vb](c\fd)",
			want:  []token.Kind{token.KindMarkdownLink},
		},
		{
			name:  "unterminated link",
			input: "[unterminated",
			want:  []token.Kind{token.KindLeftBracket, token.KindWord},
		},
		{
			name:  "unterminated reference",
			input: "[a](b",
			want: []token.Kind{
				token.KindLeftBracket, token.KindWord, token.KindRightBracket,
				token.KindLeftParenthesis, token.KindWord,
			},
		},
		{
			name:  "exclamation without caption",
			input: "hi!",
			want:  []token.Kind{token.KindWord, token.KindExclamationMark},
		},
		{
			name:  "double exclamation image",
			input: "!![a](b)",
			want:  []token.Kind{token.KindExclamationMark, token.KindMarkdownImage},
		},
		{
			name:  "comment",
			input: "<!-- note -->x",
			want:  []token.Kind{token.KindMarkdownComment, token.KindWord},
		},
		{
			name:  "multi-line comment",
			input: "<!--\n[a](b)\n-->",
			want:  []token.Kind{token.KindMarkdownComment},
		},
		{
			name:  "unterminated comment",
			input: "<!--a",
			want:  []token.Kind{token.KindMarkdownComment},
		},
		{
			name:  "angle bracket that is not a comment",
			input: "<a>",
			want:  []token.Kind{token.KindLeftAngleBracket, token.KindWord, token.KindRightAngleBracket},
		},
		{
			name:  "failed comment followed by link",
			input: "<![a](b)",
			want:  []token.Kind{token.KindLeftAngleBracket, token.KindExclamationMark, token.KindMarkdownLink},
		},
		{
			name:  "opener dashes do not close the comment",
			input: "<!-->",
			want:  []token.Kind{token.KindMarkdownComment},
		},
		{
			name:  "front matter before link",
			input: "---\nt: x\n---\n[a](b)",
			want:  []token.Kind{token.KindFrontMatterHeader, token.KindMarkdownLink},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := decode(t, testCase.input)
			assert.Equal(t, testCase.want, kinds(got))
			assert.Equal(t, testCase.input, token.Render(got))
		})
	}
}

func TestComment(t *testing.T) {
	t.Parallel()

	got := decode(t, "<!--a")
	require.Len(t, got, 1)
	comment, ok := got[0].(*token.MarkdownComment)
	require.True(t, ok)
	assert.Equal(t, "<!--a", comment.Text())
	assert.False(t, comment.IsTerminated())

	got = decode(t, "<!-- a -- b -->")
	require.Len(t, got, 1)
	comment, ok = got[0].(*token.MarkdownComment)
	require.True(t, ok)
	assert.True(t, comment.IsTerminated())
	assert.Equal(t, " a -- b ", comment.Content())
}

// goldmarkDestinations returns the link and image destinations goldmark finds.
func goldmarkDestinations(t *testing.T, source string) []string {
	t.Helper()

	src := []byte(source)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var out []string
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Link:
			out = append(out, string(n.Destination))
		case *ast.Image:
			out = append(out, string(n.Destination))
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return out
}

func TestDestinationsAgreeWithGoldmark(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"[docs](./docs/a.md)",
		"see [site](https://example.com/x) and ![logo](img/logo.png).",
		"[nested [caption]](b)",
		"[a](b(c)d)",
		"text without links",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			var ours []string
			for _, tok := range decode(t, input) {
				switch link := tok.(type) {
				case *token.MarkdownLink:
					ours = append(ours, link.Path())
				case *token.MarkdownImage:
					ours = append(ours, link.Path())
				}
			}
			assert.Equal(t, goldmarkDestinations(t, input), ours)
		})
	}
}

func TestIdempotentRescan(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		input := rapid.StringOf(rapid.SampledFrom([]rune("ab -![]()<>!\n"))).Draw(rt, "input")

		first := decode(rt, input)
		rendered := token.Render(first)
		if rendered != input {
			rt.Fatalf("round trip mismatch: got %q, want %q", rendered, input)
		}
		if second := decode(rt, rendered); !token.EqualSlices(first, second) {
			rt.Fatalf("re-scan differs for %q", input)
		}
	})
}
