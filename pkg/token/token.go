// Package token defines the immutable, range-annotated tokens produced by the
// decoders in this module.
//
// Tokens are either leaves (a single symbol, a word or a line) or composites
// built from an ordered, non-empty list of child tokens. Every token renders
// back to the exact source text it covers, so concatenating the text of a
// decoder's full output reproduces its input.
package token

import (
	"fmt"
	"strings"
)

// Token is a contiguous span of source text.
type Token interface {
	// Kind reports the token variant.
	Kind() Kind

	// Range reports the source span covered by the token.
	Range() Range

	// Text returns the exact source text covered by the token.
	Text() string

	// Equal reports structural equality: same kind, same range, same text
	// and, for composites, pairwise equal children.
	Equal(other Token) bool

	// String returns a debug rendering such as `Word("hello")(1:1 -> 1:6)`.
	String() string
}

// Render concatenates the text of tokens in order.
func Render(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text())
	}
	return sb.String()
}

// EqualSlices reports whether two token slices are pairwise equal.
func EqualSlices(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Must panics if err is not nil. Decoders use it when building tokens from
// children they already validated.
func Must[T any](tok T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("token: %v", err))
	}
	return tok
}

func describe(kind Kind, text string, rng Range) string {
	return fmt.Sprintf("%s(%q)%s", kind, text, rng)
}
