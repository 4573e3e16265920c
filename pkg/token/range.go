package token

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when a range ends before it starts.
	ErrInvalidRange = errors.New("invalid range")

	// ErrEmptyTokens is returned when an operation needs at least one token.
	ErrEmptyTokens = errors.New("empty token list")
)

// Range is a 1-based span of source text. The end position is exclusive.
// Columns count grapheme clusters.
type Range struct {
	StartLine   int `json:"start_line"`
	StartColumn int `json:"start_column"`
	EndLine     int `json:"end_line"`
	EndColumn   int `json:"end_column"`
}

// NewRange validates and returns a range.
func NewRange(startLine, startColumn, endLine, endColumn int) (Range, error) {
	r := Range{
		StartLine:   startLine,
		StartColumn: startColumn,
		EndLine:     endLine,
		EndColumn:   endColumn,
	}
	if !r.IsValid() {
		return Range{}, fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	return r, nil
}

// SingleLine returns a range on one line covering width columns from column.
func SingleLine(line, column, width int) Range {
	return Range{StartLine: line, StartColumn: column, EndLine: line, EndColumn: column + width}
}

// IsValid reports whether the range is 1-based and does not end before it starts.
func (r Range) IsValid() bool {
	if r.StartLine < 1 || r.StartColumn < 1 || r.EndLine < 1 || r.EndColumn < 1 {
		return false
	}
	if r.StartLine > r.EndLine {
		return false
	}
	return r.StartLine != r.EndLine || r.StartColumn <= r.EndColumn
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.StartLine == r.EndLine && r.StartColumn == r.EndColumn
}

// Union returns the smallest range starting where r starts and ending where other ends.
func (r Range) Union(other Range) (Range, error) {
	return NewRange(r.StartLine, r.StartColumn, other.EndLine, other.EndColumn)
}

// String formats the range as "(1:1 -> 1:6)".
func (r Range) String() string {
	return fmt.Sprintf("(%d:%d -> %d:%d)", r.StartLine, r.StartColumn, r.EndLine, r.EndColumn)
}

// FullRange returns the range spanning from the first token to the last.
func FullRange(tokens []Token) (Range, error) {
	if len(tokens) == 0 {
		return Range{}, ErrEmptyTokens
	}
	first := tokens[0].Range()
	last := tokens[len(tokens)-1].Range()
	return first.Union(last)
}
