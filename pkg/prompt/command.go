package prompt

import (
	"github.com/yaklabco/mdstream/pkg/decoder"
	"github.com/yaklabco/mdstream/pkg/token"
)

// slashParser accumulates `/command`. Command names are made of words and
// dashes; any other symbol invalidates the command.
type slashParser struct {
	decoder.Partial
}

func newSlashParser(slash token.Token) *slashParser {
	return &slashParser{Partial: decoder.NewPartial(slash)}
}

func (p *slashParser) hasName() bool {
	return p.Len() > 1
}

func (p *slashParser) Accept(tok token.Token) decoder.Result {
	p.AssertNotConsumed()

	switch {
	case isStop(tok):
		if !p.hasName() {
			return decoder.Fail(false)
		}
		return decoder.Resolve(p.resolve(), false)
	case tok.Kind() == token.KindWord, tok.Kind() == token.KindDash:
		p.Add(tok)
		return decoder.Continue(p)
	default:
		return decoder.Fail(false)
	}
}

// Close implements decoder.Parser.
func (p *slashParser) Close() (token.Token, bool) {
	if p.IsConsumed() || !p.hasName() {
		return nil, false
	}
	return p.resolve(), true
}

func (p *slashParser) resolve() token.Token {
	return token.Must(token.NewPromptSlashCommand(p.Take()))
}
