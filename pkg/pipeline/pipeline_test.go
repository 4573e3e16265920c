package pipeline_test

import (
	"context"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/yaklabco/mdstream/pkg/pipeline"
	"github.com/yaklabco/mdstream/pkg/stream"
	"github.com/yaklabco/mdstream/pkg/token"
)

func testContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func TestParseStage(t *testing.T) {
	t.Parallel()

	for _, stage := range pipeline.Stages() {
		got, err := pipeline.ParseStage(strings.ToUpper(string(stage)))
		require.NoError(t, err)
		assert.Equal(t, stage, got)
	}

	_, err := pipeline.ParseStage("html")
	require.ErrorIs(t, err, pipeline.ErrUnknownStage)

	_, err = pipeline.Build("html", stream.FromString(""), pipeline.Options{})
	require.ErrorIs(t, err, pipeline.ErrUnknownStage)
}

func TestScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stage pipeline.Stage
		input string
		want  []string
	}{
		{
			name:  "crlf words",
			stage: pipeline.StageSimple,
			input: "hello\r\nworld",
			want:  []string{`Word("hello")`, `CarriageReturn("\r")`, `NewLine("\n")`, `Word("world")`},
		},
		{
			name:  "link",
			stage: pipeline.StageMarkdown,
			input: "[a](b)",
			want:  []string{`MarkdownLink("[a](b)")`},
		},
		{
			name:  "front matter",
			stage: pipeline.StageMarkdown,
			input: "---\nx: 1\n---\nbody",
			want:  []string{`FrontMatterHeader("---\nx: 1\n---\n")`, `Word("body")`},
		},
		{
			name:  "variable with data",
			stage: pipeline.StagePrompt,
			input: "#file:./a.md",
			want:  []string{`PromptVariableWithData("#file:./a.md")`},
		},
		{
			name:  "lone hash",
			stage: pipeline.StagePrompt,
			input: "#",
			want:  []string{`Hash("#")`},
		},
		{
			name:  "unterminated comment",
			stage: pipeline.StageMarkdown,
			input: "<!--a",
			want:  []string{`MarkdownComment("<!--a")`},
		},
		{
			name:  "lines",
			stage: pipeline.StageLines,
			input: "a\nb",
			want:  []string{`Line("a")`, `NewLine("\n")`, `Line("b")`},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := testContext()
			defer cancel()

			got, err := pipeline.DecodeString(ctx, testCase.stage, testCase.input, pipeline.Options{})
			require.NoError(t, err)

			described := make([]string, len(got))
			for i, tok := range got {
				described[i] = tok.String()[:strings.LastIndex(tok.String(), "(")]
			}
			assert.Equal(t, testCase.want, described)
		})
	}
}

func TestReaderInput(t *testing.T) {
	t.Parallel()

	input := "---\ntitle: x\n---\nSee [docs](./a.md) <!-- c -->\r\n"
	ctx, cancel := testContext()
	defer cancel()

	dec, err := pipeline.Build(pipeline.StageMarkdown,
		stream.FromReader(ctx, iotest.HalfReader(strings.NewReader(input)), 3), pipeline.Options{})
	require.NoError(t, err)

	var got []token.Token
	for tok, err := range dec.Tokens(ctx) {
		require.NoError(t, err)
		got = append(got, tok)
	}
	assert.Equal(t, input, token.Render(got))

	want, err := pipeline.DecodeString(ctx, pipeline.StageMarkdown, input, pipeline.Options{})
	require.NoError(t, err)
	assert.True(t, token.EqualSlices(want, got))
}

func TestSymbolsOption(t *testing.T) {
	t.Parallel()

	ctx, cancel := testContext()
	defer cancel()

	got, err := pipeline.DecodeString(ctx, pipeline.StageSimple, "a-b c", pipeline.Options{
		Symbols: []token.Kind{token.KindSpace},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a-b", got[0].Text())
}

// decodeAllModes decodes input with a fresh chain per consumption mode.
func decodeAllModes(t require.TestingT, stage pipeline.Stage, input string) [3][]token.Token {
	ctx, cancel := testContext()
	defer cancel()

	build := func() pipeline.Decoder {
		dec, err := pipeline.Build(stage, stream.FromString(input), pipeline.Options{})
		require.NoError(t, err)
		return dec
	}

	var out [3][]token.Token

	bulk, err := build().ConsumeAll(ctx)
	require.NoError(t, err)
	out[0] = bulk

	for tok, err := range build().Tokens(ctx) {
		require.NoError(t, err)
		out[1] = append(out[1], tok)
	}

	dec := build()
	dec.Subscribe(stream.HandlerFuncs[token.Token]{
		Data: func(tok token.Token) { out[2] = append(out[2], tok) },
	})
	require.NoError(t, dec.Settled(ctx))

	return out
}

func TestRoundTripEveryStageEveryMode(t *testing.T) {
	t.Parallel()

	alphabet := []rune("ab -#/:@![]()<>\r\n\t\vé")
	rapid.Check(t, func(rt *rapid.T) {
		input := rapid.StringOf(rapid.SampledFrom(alphabet)).Draw(rt, "input")
		stage := rapid.SampledFrom(pipeline.Stages()).Draw(rt, "stage")

		modes := decodeAllModes(rt, stage, input)
		for i, tokens := range modes {
			if rendered := token.Render(tokens); rendered != input {
				rt.Fatalf("mode %d: got %q, want %q", i, rendered, input)
			}
			if !token.EqualSlices(modes[0], tokens) {
				rt.Fatalf("mode %d disagrees with bulk consumption", i)
			}
		}
	})
}

func FuzzRoundTrip(f *testing.F) {
	seeds := []string{
		"",
		"hello\r\nworld",
		"[a](b)",
		"---\nx: 1\n---\nbody",
		"#file:./a.md /cmd",
		"<!--a",
		"![img](https://example.com/i.png)\n",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		for _, stage := range pipeline.Stages() {
			ctx, cancel := testContext()
			got, err := pipeline.DecodeString(ctx, stage, input, pipeline.Options{})
			cancel()
			if err != nil {
				t.Fatalf("%s: %v", stage, err)
			}
			if rendered := token.Render(got); rendered != input {
				t.Fatalf("%s: got %q, want %q", stage, rendered, input)
			}
		}
	})
}
