package token

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMarker is returned when a front-matter marker is not a dash run
// optionally followed by a line ending.
var ErrInvalidMarker = errors.New("invalid front-matter marker")

// FrontMatterMarker is a run of dashes, followed by its line ending unless the
// marker closes the stream.
type FrontMatterMarker struct {
	Composite
	dashes int
}

// NewFrontMatterMarker builds a marker from Dash tokens optionally followed by
// NewLine or CarriageReturn NewLine.
func NewFrontMatterMarker(children []Token) (*FrontMatterMarker, error) {
	dashes := 0
	for dashes < len(children) && children[dashes].Kind() == KindDash {
		dashes++
	}
	rest := kindsOf(children[dashes:])
	valid := dashes > 0 && (len(rest) == 0 ||
		(len(rest) == 1 && rest[0] == KindNewLine) ||
		(len(rest) == 2 && rest[0] == KindCarriageReturn && rest[1] == KindNewLine))
	if !valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMarker, rest)
	}
	base, err := NewComposite(KindFrontMatterMarker, children)
	if err != nil {
		return nil, err
	}
	return &FrontMatterMarker{Composite: base, dashes: dashes}, nil
}

// DashCount returns the length of the dash run.
func (m *FrontMatterMarker) DashCount() int { return m.dashes }

// Dashes returns the dash run without the line ending, e.g. "---".
func (m *FrontMatterMarker) Dashes() string {
	return strings.Repeat("-", m.dashes)
}

// LineEnding returns the marker's line ending, or "" at end of stream.
func (m *FrontMatterMarker) LineEnding() string {
	return m.Text()[m.dashes:]
}

// FrontMatterHeader is a front-matter block at the very start of a document.
type FrontMatterHeader struct {
	Composite
	start    *FrontMatterMarker
	contents *Text
	end      *FrontMatterMarker
}

// NewFrontMatterHeader builds a header. contents may be nil for an empty block.
func NewFrontMatterHeader(start *FrontMatterMarker, contents *Text, end *FrontMatterMarker) (*FrontMatterHeader, error) {
	if start == nil || end == nil {
		return nil, fmt.Errorf("%w: header needs start and end markers", ErrInvalidMarker)
	}
	if start.DashCount() != end.DashCount() {
		return nil, fmt.Errorf("%w: start has %d dashes, end has %d",
			ErrInvalidMarker, start.DashCount(), end.DashCount())
	}
	children := []Token{start}
	if contents != nil {
		children = append(children, contents)
	}
	children = append(children, end)

	base, err := NewComposite(KindFrontMatterHeader, children)
	if err != nil {
		return nil, err
	}
	return &FrontMatterHeader{Composite: base, start: start, contents: contents, end: end}, nil
}

// StartMarker returns the opening marker.
func (h *FrontMatterHeader) StartMarker() *FrontMatterMarker { return h.start }

// Contents returns the tokens between the markers, or nil if there are none.
// The contents include the line ending that precedes the end marker.
func (h *FrontMatterHeader) Contents() *Text { return h.contents }

// EndMarker returns the closing marker.
func (h *FrontMatterHeader) EndMarker() *FrontMatterMarker { return h.end }

// Body returns the text between the markers without its final line ending.
func (h *FrontMatterHeader) Body() string {
	if h.contents == nil {
		return ""
	}
	body := strings.TrimSuffix(h.contents.Text(), "\n")
	return strings.TrimSuffix(body, "\r")
}
