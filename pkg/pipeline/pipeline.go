// Package pipeline assembles decoder chains from raw input.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/yaklabco/mdstream/pkg/decoder"
	"github.com/yaklabco/mdstream/pkg/decoder/frontmatter"
	"github.com/yaklabco/mdstream/pkg/decoder/lines"
	"github.com/yaklabco/mdstream/pkg/decoder/markdown"
	"github.com/yaklabco/mdstream/pkg/decoder/simple"
	"github.com/yaklabco/mdstream/pkg/prompt"
	"github.com/yaklabco/mdstream/pkg/stream"
	"github.com/yaklabco/mdstream/pkg/token"
)

// ErrUnknownStage is returned for a stage name that does not exist.
var ErrUnknownStage = errors.New("unknown stage")

// Stage names the outermost decoder of a chain.
type Stage string

// Stages, from the lowest layer up. Prompt sits on top of Simple.
const (
	StageLines       Stage = "lines"
	StageSimple      Stage = "simple"
	StageFrontMatter Stage = "frontmatter"
	StageMarkdown    Stage = "markdown"
	StagePrompt      Stage = "prompt"
)

// Stages returns every stage in chain order.
func Stages() []Stage {
	return []Stage{StageLines, StageSimple, StageFrontMatter, StageMarkdown, StagePrompt}
}

// ParseStage resolves a stage name, case-insensitively.
func ParseStage(name string) (Stage, error) {
	candidate := Stage(strings.ToLower(strings.TrimSpace(name)))
	for _, stage := range Stages() {
		if stage == candidate {
			return stage, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, name)
}

// Decoder is the outermost decoder of a chain.
type Decoder interface {
	stream.Source[token.Token]
	Start() error
	Dispose()
	State() decoder.State
	Tokens(ctx context.Context) iter.Seq2[token.Token, error]
	ConsumeAll(ctx context.Context) ([]token.Token, error)
	Settled(ctx context.Context) error
}

// Options configures Build.
type Options struct {
	// Symbols narrows the simple decoder's stop characters. Empty means all.
	Symbols []token.Kind
}

// Build chains every decoder up to stage on top of input.
func Build(stage Stage, input stream.Source[[]byte], opts Options) (Decoder, error) {
	lineDecoder := lines.New(input)
	if stage == StageLines {
		return lineDecoder, nil
	}

	var simpleOpts []simple.Option
	if len(opts.Symbols) > 0 {
		simpleOpts = append(simpleOpts, simple.WithSymbols(opts.Symbols...))
	}
	simpleDecoder := simple.New(lineDecoder, simpleOpts...)

	switch stage {
	case StageSimple:
		return simpleDecoder, nil
	case StagePrompt:
		return prompt.New(simpleDecoder), nil
	case StageFrontMatter:
		return frontmatter.New(simpleDecoder), nil
	case StageMarkdown:
		return markdown.New(frontmatter.New(simpleDecoder)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
}

// DecodeString runs text through the chain up to stage and returns every token.
func DecodeString(ctx context.Context, stage Stage, text string, opts Options) ([]token.Token, error) {
	dec, err := Build(stage, stream.FromString(text), opts)
	if err != nil {
		return nil, err
	}
	return dec.ConsumeAll(ctx)
}
