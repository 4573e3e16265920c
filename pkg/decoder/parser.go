package decoder

import (
	"errors"
	"slices"

	"github.com/yaklabco/mdstream/pkg/token"
)

// ErrParserConsumed is the panic value raised when a finalized parser is used again.
var ErrParserConsumed = errors.New("partial parser already consumed")

// Parser is an in-flight speculative construct owned by one decoder.
type Parser interface {
	// Accept offers the next token to the parser.
	Accept(tok token.Token) Result

	// Tokens returns the raw tokens held so far, in source order.
	Tokens() []token.Token

	// Close is called at end of stream. It returns the resolved token if the
	// construct tolerates ending here.
	Close() (token.Token, bool)
}

// Outcome tags a Result.
type Outcome uint8

const (
	// Success means the construct is still valid.
	Success Outcome = iota + 1
	// Failure means the construct is invalid; its tokens are re-emitted raw.
	Failure
)

// String returns "success" or "failure".
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is returned by Parser.Accept.
//
// On Success exactly one of Token (the resolved construct) and Next (the
// parser to keep accumulating with) is set. Consumed reports whether the
// offered token was absorbed; if not, the decoder offers it again.
type Result struct {
	Outcome  Outcome
	Token    token.Token
	Next     Parser
	Consumed bool
}

// Continue keeps accumulating with next after consuming the token.
func Continue(next Parser) Result {
	return Result{Outcome: Success, Next: next, Consumed: true}
}

// Upgrade switches to next, which took over the current parser's tokens.
func Upgrade(next Parser, consumed bool) Result {
	return Result{Outcome: Success, Next: next, Consumed: consumed}
}

// Resolve reports a fully recognized construct.
func Resolve(tok token.Token, consumed bool) Result {
	return Result{Outcome: Success, Token: tok, Consumed: consumed}
}

// Fail reports an invalid construct.
func Fail(consumed bool) Result {
	return Result{Outcome: Failure, Consumed: consumed}
}

// Partial is the token accumulator embedded by parsers. Once its tokens are
// taken the parser is finalized and any further use panics.
type Partial struct {
	tokens   []token.Token
	consumed bool
}

// NewPartial returns an accumulator holding tokens.
func NewPartial(tokens ...token.Token) Partial {
	return Partial{tokens: slices.Clone(tokens)}
}

// Add appends tok.
func (p *Partial) Add(tok token.Token) {
	p.AssertNotConsumed()
	p.tokens = append(p.tokens, tok)
}

// Len returns the number of tokens held.
func (p *Partial) Len() int { return len(p.tokens) }

// At returns the i-th token held.
func (p *Partial) At(i int) token.Token { return p.tokens[i] }

// Last returns the most recent token, or nil.
func (p *Partial) Last() token.Token {
	if len(p.tokens) == 0 {
		return nil
	}
	return p.tokens[len(p.tokens)-1]
}

// Tokens implements Parser.
func (p *Partial) Tokens() []token.Token {
	return slices.Clone(p.tokens)
}

// Take finalizes the accumulator and hands its tokens to the caller.
func (p *Partial) Take() []token.Token {
	p.AssertNotConsumed()
	p.consumed = true
	tokens := p.tokens
	p.tokens = nil
	return tokens
}

// IsConsumed reports whether Take was called.
func (p *Partial) IsConsumed() bool { return p.consumed }

// AssertNotConsumed panics with ErrParserConsumed on a finalized accumulator.
func (p *Partial) AssertNotConsumed() {
	if p.consumed {
		panic(ErrParserConsumed)
	}
}
