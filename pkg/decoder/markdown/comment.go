package markdown

import (
	"github.com/yaklabco/mdstream/pkg/decoder"
	"github.com/yaklabco/mdstream/pkg/token"
)

// commentOpener is the token sequence of "<!--".
var commentOpener = []token.Kind{ //nolint:gochecknoglobals // read-only table
	token.KindLeftAngleBracket,
	token.KindExclamationMark,
	token.KindDash,
	token.KindDash,
}

// commentParser accumulates `<!-- ... -->`. The body may span lines. The
// dashes of the opener do not count towards the closing "-->".
type commentParser struct {
	decoder.Partial
	dashRun int
}

func newCommentParser(open token.Token) *commentParser {
	return &commentParser{Partial: decoder.NewPartial(open)}
}

func (p *commentParser) opened() bool {
	return p.Len() >= len(commentOpener)
}

func (p *commentParser) Accept(tok token.Token) decoder.Result {
	p.AssertNotConsumed()

	if !p.opened() {
		if tok.Kind() != commentOpener[p.Len()] {
			return decoder.Fail(false)
		}
		p.Add(tok)
		return decoder.Continue(p)
	}

	p.Add(tok)
	switch tok.Kind() {
	case token.KindDash:
		p.dashRun++
	case token.KindRightAngleBracket:
		if p.dashRun >= 2 {
			return decoder.Resolve(token.Must(token.NewMarkdownComment(p.Take())), true)
		}
		p.dashRun = 0
	default:
		p.dashRun = 0
	}
	return decoder.Continue(p)
}

// Close implements decoder.Parser. An open comment extends to the end of input.
func (p *commentParser) Close() (token.Token, bool) {
	if p.IsConsumed() || !p.opened() {
		return nil, false
	}
	return token.Must(token.NewMarkdownComment(p.Take())), true
}
