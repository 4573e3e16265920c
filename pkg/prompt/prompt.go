// Package prompt recognizes chat-prompt references in a token stream:
// variables such as `#file` or `#file:./a.md`, and slash commands such as
// `/explain`.
package prompt

import (
	"github.com/yaklabco/mdstream/pkg/decoder"
	"github.com/yaklabco/mdstream/pkg/stream"
	"github.com/yaklabco/mdstream/pkg/token"
)

// Decoder emits prompt reference tokens in place of the tokens they are built
// from.
type Decoder struct {
	*decoder.Decoder[token.Token]
}

// New returns a prompt decoder reading from source, usually a simple decoder.
func New(source stream.Source[token.Token]) *Decoder {
	return &Decoder{Decoder: decoder.New[token.Token](source, newHandler())}
}

// Scan recognizes prompt references in an already decoded token slice.
func Scan(tokens []token.Token) []token.Token {
	h := newHandler()
	out := &collector{tokens: make([]token.Token, 0, len(tokens))}
	for _, tok := range tokens {
		h.Data(tok, out)
	}
	h.End(out)
	return out.tokens
}

// handler remembers the previous input token so that slash commands only
// open at the start of the input or after whitespace.
type handler struct {
	*decoder.Speculative
	prev token.Token
}

func newHandler() *handler {
	h := &handler{}
	h.Speculative = decoder.NewSpeculative(h.trigger)
	return h
}

func (h *handler) Data(tok token.Token, out decoder.Emitter) {
	h.Speculative.Data(tok, out)
	h.prev = tok
}

func (h *handler) trigger(tok token.Token) decoder.Parser {
	switch tok.Kind() {
	case token.KindHash:
		return newVariableParser(tok)
	case token.KindSlash:
		if h.prev == nil || isStop(h.prev) {
			return newSlashParser(tok)
		}
	}
	return nil
}

// isStop reports whether tok ends every prompt reference.
func isStop(tok token.Token) bool {
	return tok.Kind().IsWhitespace() || tok.Kind().IsLineBreak()
}

type collector struct {
	tokens []token.Token
}

func (c *collector) Emit(tok token.Token) {
	c.tokens = append(c.tokens, tok)
}
