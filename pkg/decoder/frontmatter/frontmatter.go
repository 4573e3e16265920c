// Package frontmatter recognizes a dash-delimited front-matter header at the
// start of a document.
//
// The header opens with a run of at least three dashes on line 1, column 1,
// followed by a line ending. It closes at the first line that consists of a
// dash run of the same length followed by a line ending or the end of the
// stream. Anything else, including an unclosed header, is passed through as
// the original tokens.
package frontmatter

import (
	"github.com/yaklabco/mdstream/pkg/decoder"
	"github.com/yaklabco/mdstream/pkg/stream"
	"github.com/yaklabco/mdstream/pkg/token"
)

// MinMarkerDashes is the shortest dash run accepted as a marker.
const MinMarkerDashes = 3

// Decoder emits a FrontMatterHeader followed by the remaining tokens unchanged.
type Decoder struct {
	*decoder.Decoder[token.Token]
}

// New returns a front-matter decoder reading from source, usually a simple decoder.
func New(source stream.Source[token.Token]) *Decoder {
	return &Decoder{Decoder: decoder.New[token.Token](source, decoder.NewSpeculative(firstTokenTrigger()))}
}

// firstTokenTrigger opens a marker only for the very first token of the stream.
func firstTokenTrigger() decoder.Trigger {
	first := true
	return func(tok token.Token) decoder.Parser {
		if !first {
			return nil
		}
		first = false

		rng := tok.Range()
		if tok.Kind() != token.KindDash || rng.StartLine != 1 || rng.StartColumn != 1 {
			return nil
		}
		return &startParser{Partial: decoder.NewPartial(tok)}
	}
}

// startParser accumulates the opening marker.
type startParser struct {
	decoder.Partial
	cr bool
}

func (p *startParser) Accept(tok token.Token) decoder.Result {
	p.AssertNotConsumed()

	switch tok.Kind() {
	case token.KindDash:
		if p.cr {
			return decoder.Fail(false)
		}
		p.Add(tok)
		return decoder.Continue(p)
	case token.KindCarriageReturn:
		if p.cr {
			return decoder.Fail(false)
		}
		p.cr = true
		p.Add(tok)
		return decoder.Continue(p)
	case token.KindNewLine:
		dashes := p.Len()
		if p.cr {
			dashes--
		}
		if dashes < MinMarkerDashes {
			return decoder.Fail(false)
		}
		p.Add(tok)
		children := p.Take()
		marker := token.Must(token.NewFrontMatterMarker(children))
		return decoder.Upgrade(newHeaderParser(marker, children), true)
	default:
		return decoder.Fail(false)
	}
}

// Close implements decoder.Parser. A lone marker is not a header.
func (p *startParser) Close() (token.Token, bool) {
	return nil, false
}

// headerParser accumulates contents after the opening marker and watches for
// the closing marker.
type headerParser struct {
	decoder.Partial
	start        *token.FrontMatterMarker
	contentStart int

	lineStart bool

	// candidate closing marker; runStart is -1 when there is none.
	runStart int
	runLen   int
	runCR    bool
}

func newHeaderParser(start *token.FrontMatterMarker, raw []token.Token) *headerParser {
	return &headerParser{
		Partial:      decoder.NewPartial(raw...),
		start:        start,
		contentStart: len(raw),
		lineStart:    true,
		runStart:     -1,
	}
}

func (p *headerParser) Accept(tok token.Token) decoder.Result {
	p.AssertNotConsumed()

	if p.runStart >= 0 {
		return p.acceptCandidate(tok)
	}

	if p.lineStart && tok.Kind() == token.KindDash && tok.Range().StartColumn == 1 {
		p.runStart = p.Len()
		p.runLen = 1
		p.runCR = false
		p.Add(tok)
		return decoder.Continue(p)
	}

	p.Add(tok)
	p.lineStart = tok.Kind() == token.KindNewLine
	return decoder.Continue(p)
}

func (p *headerParser) acceptCandidate(tok token.Token) decoder.Result {
	switch {
	case tok.Kind() == token.KindDash && !p.runCR:
		p.runLen++
		p.Add(tok)
		return decoder.Continue(p)
	case tok.Kind() == token.KindCarriageReturn && !p.runCR:
		p.runCR = true
		p.Add(tok)
		return decoder.Continue(p)
	case tok.Kind() == token.KindNewLine:
		p.Add(tok)
		if p.runLen == p.start.DashCount() {
			return decoder.Resolve(p.resolve(), true)
		}
		p.runStart = -1
		p.lineStart = true
		return decoder.Continue(p)
	default:
		p.runStart = -1
		p.Add(tok)
		p.lineStart = false
		return decoder.Continue(p)
	}
}

// Close implements decoder.Parser. The closing marker may end the stream
// without a line ending.
func (p *headerParser) Close() (token.Token, bool) {
	if p.IsConsumed() || p.runStart < 0 || p.runCR || p.runLen != p.start.DashCount() {
		return nil, false
	}
	return p.resolve(), true
}

func (p *headerParser) resolve() *token.FrontMatterHeader {
	runStart := p.runStart
	raw := p.Take()

	var contents *token.Text
	if body := raw[p.contentStart:runStart]; len(body) > 0 {
		contents = token.Must(token.NewText(body))
	}
	end := token.Must(token.NewFrontMatterMarker(raw[runStart:]))
	return token.Must(token.NewFrontMatterHeader(p.start, contents, end))
}
