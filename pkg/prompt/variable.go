package prompt

import (
	"github.com/yaklabco/mdstream/pkg/decoder"
	"github.com/yaklabco/mdstream/pkg/token"
)

// variableParser accumulates the name of `#name`. A ':' hands the name over
// to a variableDataParser.
type variableParser struct {
	decoder.Partial
}

func newVariableParser(hash token.Token) *variableParser {
	return &variableParser{Partial: decoder.NewPartial(hash)}
}

func (p *variableParser) hasName() bool {
	return p.Len() > 1
}

func (p *variableParser) Accept(tok token.Token) decoder.Result {
	p.AssertNotConsumed()

	switch {
	case endsName(tok):
		if !p.hasName() {
			return decoder.Fail(false)
		}
		return decoder.Resolve(p.resolve(), false)
	case tok.Kind() == token.KindColon:
		if !p.hasName() {
			return decoder.Fail(false)
		}
		return decoder.Upgrade(newVariableDataParser(p.Take(), tok), true)
	default:
		p.Add(tok)
		return decoder.Continue(p)
	}
}

// Close implements decoder.Parser.
func (p *variableParser) Close() (token.Token, bool) {
	if p.IsConsumed() || !p.hasName() {
		return nil, false
	}
	return p.resolve(), true
}

func (p *variableParser) resolve() token.Token {
	return token.Must(token.NewPromptVariable(p.Take()))
}

func endsName(tok token.Token) bool {
	if isStop(tok) {
		return true
	}
	switch tok.Kind() {
	case token.KindHash, token.KindAt:
		return true
	default:
		return false
	}
}

// variableDataParser accumulates the data of `#name:data`. Data may contain
// any token but whitespace and line breaks.
type variableDataParser struct {
	decoder.Partial
	name int
}

func newVariableDataParser(name []token.Token, colon token.Token) *variableDataParser {
	p := &variableDataParser{Partial: decoder.NewPartial(name...), name: len(name)}
	p.Add(colon)
	return p
}

func (p *variableDataParser) Accept(tok token.Token) decoder.Result {
	p.AssertNotConsumed()

	if isStop(tok) {
		return decoder.Resolve(p.resolve(), false)
	}
	p.Add(tok)
	return decoder.Continue(p)
}

// Close implements decoder.Parser.
func (p *variableDataParser) Close() (token.Token, bool) {
	if p.IsConsumed() {
		return nil, false
	}
	return p.resolve(), true
}

func (p *variableDataParser) resolve() token.Token {
	name := p.name
	raw := p.Take()
	return token.Must(token.NewPromptVariableWithData(raw[:name], raw[name:]))
}
