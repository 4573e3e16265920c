package token

import (
	"fmt"

	"github.com/rivo/uniseg"
)

// Leaf is a token without children: a symbol, a Word or a Line.
type Leaf struct {
	kind Kind
	rng  Range
	text string
}

// NewSymbol returns the symbol token of kind at line and column.
func NewSymbol(kind Kind, line, column int) (*Leaf, error) {
	char, ok := kind.Char()
	if !ok {
		return nil, fmt.Errorf("%s is not a symbol kind", kind)
	}
	rng, err := NewRange(line, column, line, column+1)
	if err != nil {
		return nil, err
	}
	return &Leaf{kind: kind, rng: rng, text: string(char)}, nil
}

// NewWord returns a Word token for text starting at line and column.
func NewWord(text string, line, column int) (*Leaf, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty word", ErrInvalidRange)
	}
	return newSpan(KindWord, text, line, column)
}

// NewLine returns a Line token for text, which must not contain "\n".
// An empty text yields an empty range at the start of the line.
func NewLine(text string, line int) (*Leaf, error) {
	return newSpan(KindLine, text, line, 1)
}

func newSpan(kind Kind, text string, line, column int) (*Leaf, error) {
	rng, err := NewRange(line, column, line, column+Width(text))
	if err != nil {
		return nil, err
	}
	return &Leaf{kind: kind, rng: rng, text: text}, nil
}

// Width returns the number of columns text occupies.
func Width(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// Kind implements Token.
func (l *Leaf) Kind() Kind { return l.kind }

// Range implements Token.
func (l *Leaf) Range() Range { return l.rng }

// Text implements Token.
func (l *Leaf) Text() string { return l.text }

// Equal implements Token.
func (l *Leaf) Equal(other Token) bool {
	o, ok := other.(*Leaf)
	if !ok || o == nil {
		return false
	}
	return l.kind == o.kind && l.rng == o.rng && l.text == o.text
}

// String implements Token.
func (l *Leaf) String() string {
	return describe(l.kind, l.text, l.rng)
}
