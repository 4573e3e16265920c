package markdown

import (
	"github.com/yaklabco/mdstream/pkg/decoder"
	"github.com/yaklabco/mdstream/pkg/token"
)

type linkPhase uint8

const (
	phaseImageMarker linkPhase = iota
	phaseCaption
	phaseAfterCaption
	phaseReference
)

// linkParser accumulates `[caption](reference)`, optionally preceded by the
// image marker '!'. Caption brackets and reference parentheses nest.
type linkParser struct {
	decoder.Partial
	image      bool
	phase      linkPhase
	depth      int
	captionAt  int
	captionEnd int
}

func newLinkParser(open token.Token) *linkParser {
	return &linkParser{Partial: decoder.NewPartial(open), phase: phaseCaption, depth: 1}
}

func newImageParser(marker token.Token) *linkParser {
	return &linkParser{Partial: decoder.NewPartial(marker), image: true, phase: phaseImageMarker, captionAt: 1}
}

func (p *linkParser) Accept(tok token.Token) decoder.Result {
	p.AssertNotConsumed()

	switch p.phase {
	case phaseImageMarker:
		if tok.Kind() != token.KindLeftBracket {
			return decoder.Fail(false)
		}
		p.Add(tok)
		p.phase = phaseCaption
		p.depth = 1
		return decoder.Continue(p)

	case phaseCaption:
		if tok.Kind().IsLineBreak() {
			return decoder.Fail(false)
		}
		p.Add(tok)
		p.depth += nesting(tok, token.KindLeftBracket, token.KindRightBracket)
		if p.depth == 0 {
			p.phase = phaseAfterCaption
			p.captionEnd = p.Len()
		}
		return decoder.Continue(p)

	case phaseAfterCaption:
		if tok.Kind() != token.KindLeftParenthesis {
			return decoder.Fail(false)
		}
		p.Add(tok)
		p.phase = phaseReference
		p.depth = 1
		return decoder.Continue(p)

	case phaseReference:
		if tok.Kind().IsLineBreak() {
			return decoder.Fail(false)
		}
		p.Add(tok)
		p.depth += nesting(tok, token.KindLeftParenthesis, token.KindRightParenthesis)
		if p.depth == 0 {
			return decoder.Resolve(p.resolve(), true)
		}
		return decoder.Continue(p)
	}

	return decoder.Fail(false)
}

// Close implements decoder.Parser. Links and images must be complete.
func (p *linkParser) Close() (token.Token, bool) {
	return nil, false
}

func (p *linkParser) resolve() token.Token {
	captionAt, captionEnd := p.captionAt, p.captionEnd
	raw := p.Take()
	caption, reference := raw[captionAt:captionEnd], raw[captionEnd:]

	if p.image {
		return token.Must(token.NewMarkdownImage(raw[0], caption, reference))
	}
	return token.Must(token.NewMarkdownLink(caption, reference))
}

func nesting(tok token.Token, open, closing token.Kind) int {
	switch tok.Kind() {
	case open:
		return 1
	case closing:
		return -1
	default:
		return 0
	}
}
