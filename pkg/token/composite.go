package token

import (
	"errors"
	"fmt"
	"slices"
)

// ErrEmptyChildren is returned when a composite token is built from no children.
var ErrEmptyChildren = errors.New("composite token requires at least one child")

// Parent is implemented by every composite token.
type Parent interface {
	Token
	Children() []Token
}

// Composite is the shared implementation of tokens built from children.
// Variants embed it and add derived accessors.
type Composite struct {
	kind     Kind
	rng      Range
	text     string
	children []Token
}

// NewComposite builds a composite of kind from children. The range is the
// union of the children's ranges and the text their concatenation.
func NewComposite(kind Kind, children []Token) (Composite, error) {
	if !kind.IsComposite() {
		return Composite{}, fmt.Errorf("%s is not a composite kind", kind)
	}
	if len(children) == 0 {
		return Composite{}, fmt.Errorf("%s: %w", kind, ErrEmptyChildren)
	}
	rng, err := FullRange(children)
	if err != nil {
		return Composite{}, fmt.Errorf("%s: %w", kind, err)
	}
	return Composite{
		kind:     kind,
		rng:      rng,
		text:     Render(children),
		children: slices.Clone(children),
	}, nil
}

// Kind implements Token.
func (c *Composite) Kind() Kind { return c.kind }

// Range implements Token.
func (c *Composite) Range() Range { return c.rng }

// Text implements Token.
func (c *Composite) Text() string { return c.text }

// Children returns a copy of the child list.
func (c *Composite) Children() []Token {
	return slices.Clone(c.children)
}

// Equal implements Token.
func (c *Composite) Equal(other Token) bool {
	if other == nil || other.Kind() != c.kind || other.Range() != c.rng {
		return false
	}
	parent, ok := other.(Parent)
	if !ok {
		return false
	}
	return EqualSlices(c.children, parent.Children())
}

// String implements Token.
func (c *Composite) String() string {
	return describe(c.kind, c.text, c.rng)
}

// Text wraps an arbitrary run of tokens, such as the contents between two markers.
type Text struct {
	Composite
}

// NewText builds a Text token.
func NewText(children []Token) (*Text, error) {
	base, err := NewComposite(KindText, children)
	if err != nil {
		return nil, err
	}
	return &Text{Composite: base}, nil
}

func kindsOf(tokens []Token) []Kind {
	kinds := make([]Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind()
	}
	return kinds
}
