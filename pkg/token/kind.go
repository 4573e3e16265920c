package token

import "strings"

// Kind classifies a token. The set is closed: every token produced by this
// module reports one of the kinds below.
type Kind uint16

// Leaf kinds. Single-character symbols come first so that Symbol can index them.
const (
	KindSpace Kind = iota
	KindTab
	KindVerticalTab
	KindFormFeed
	KindNewLine
	KindCarriageReturn
	KindHash
	KindSlash
	KindColon
	KindDash
	KindAt
	KindExclamationMark
	KindLeftBracket
	KindRightBracket
	KindLeftParenthesis
	KindRightParenthesis
	KindLeftAngleBracket
	KindRightAngleBracket
	KindLeftCurlyBrace
	KindRightCurlyBrace
	KindDoubleQuote
	KindQuote
	KindComma
	KindDollar

	KindWord // run of non-stop characters
	KindLine // one line, terminator excluded

	// Composite kinds.
	KindText
	KindMarkdownLink
	KindMarkdownImage
	KindMarkdownComment
	KindFrontMatterMarker
	KindFrontMatterHeader
	KindPromptVariable
	KindPromptVariableWithData
	KindPromptSlashCommand

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	kindNames = [kindCount]string{
		KindSpace:                  "Space",
		KindTab:                    "Tab",
		KindVerticalTab:            "VerticalTab",
		KindFormFeed:               "FormFeed",
		KindNewLine:                "NewLine",
		KindCarriageReturn:         "CarriageReturn",
		KindHash:                   "Hash",
		KindSlash:                  "Slash",
		KindColon:                  "Colon",
		KindDash:                   "Dash",
		KindAt:                     "At",
		KindExclamationMark:        "ExclamationMark",
		KindLeftBracket:            "LeftBracket",
		KindRightBracket:           "RightBracket",
		KindLeftParenthesis:        "LeftParenthesis",
		KindRightParenthesis:       "RightParenthesis",
		KindLeftAngleBracket:       "LeftAngleBracket",
		KindRightAngleBracket:      "RightAngleBracket",
		KindLeftCurlyBrace:         "LeftCurlyBrace",
		KindRightCurlyBrace:        "RightCurlyBrace",
		KindDoubleQuote:            "DoubleQuote",
		KindQuote:                  "Quote",
		KindComma:                  "Comma",
		KindDollar:                 "Dollar",
		KindWord:                   "Word",
		KindLine:                   "Line",
		KindText:                   "Text",
		KindMarkdownLink:           "MarkdownLink",
		KindMarkdownImage:          "MarkdownImage",
		KindMarkdownComment:        "MarkdownComment",
		KindFrontMatterMarker:      "FrontMatterMarker",
		KindFrontMatterHeader:      "FrontMatterHeader",
		KindPromptVariable:         "PromptVariable",
		KindPromptVariableWithData: "PromptVariableWithData",
		KindPromptSlashCommand:     "PromptSlashCommand",
	}

	symbolChars = [...]rune{
		KindSpace:             ' ',
		KindTab:               '\t',
		KindVerticalTab:       '\v',
		KindFormFeed:          '\f',
		KindNewLine:           '\n',
		KindCarriageReturn:    '\r',
		KindHash:              '#',
		KindSlash:             '/',
		KindColon:             ':',
		KindDash:              '-',
		KindAt:                '@',
		KindExclamationMark:   '!',
		KindLeftBracket:       '[',
		KindRightBracket:      ']',
		KindLeftParenthesis:   '(',
		KindRightParenthesis:  ')',
		KindLeftAngleBracket:  '<',
		KindRightAngleBracket: '>',
		KindLeftCurlyBrace:    '{',
		KindRightCurlyBrace:   '}',
		KindDoubleQuote:       '"',
		KindQuote:             '\'',
		KindComma:             ',',
		KindDollar:            '$',
	}
)

// String returns the kind name, e.g. "LeftBracket".
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsSymbol reports whether k is a single-character symbol kind.
func (k Kind) IsSymbol() bool {
	return int(k) < len(symbolChars)
}

// IsComposite reports whether tokens of kind k are built from children.
func (k Kind) IsComposite() bool {
	return k >= KindText && k < kindCount
}

// IsWhitespace reports whether k is horizontal whitespace.
func (k Kind) IsWhitespace() bool {
	switch k {
	case KindSpace, KindTab, KindVerticalTab, KindFormFeed:
		return true
	default:
		return false
	}
}

// IsLineBreak reports whether k is part of a line terminator.
func (k Kind) IsLineBreak() bool {
	return k == KindNewLine || k == KindCarriageReturn
}

// Char returns the character of a symbol kind. ok is false for other kinds.
func (k Kind) Char() (rune, bool) {
	if !k.IsSymbol() {
		return 0, false
	}
	return symbolChars[k], true
}

// SymbolKinds returns every single-character symbol kind in declaration order.
func SymbolKinds() []Kind {
	kinds := make([]Kind, 0, len(symbolChars))
	for i := range symbolChars {
		kinds = append(kinds, Kind(i))
	}
	return kinds
}

// SymbolKind returns the symbol kind for char. ok is false if char has none.
func SymbolKind(char rune) (Kind, bool) {
	for i, c := range symbolChars {
		if c == char {
			return Kind(i), true
		}
	}
	return 0, false
}

// ParseKind returns the kind named name, ignoring case.
func ParseKind(name string) (Kind, bool) {
	for i, candidate := range kindNames {
		if strings.EqualFold(candidate, name) {
			return Kind(i), true
		}
	}
	return 0, false
}
