// Package markdown recognizes inline links, images and HTML comments.
package markdown

import (
	"github.com/yaklabco/mdstream/pkg/decoder"
	"github.com/yaklabco/mdstream/pkg/stream"
	"github.com/yaklabco/mdstream/pkg/token"
)

// Decoder emits MarkdownLink, MarkdownImage and MarkdownComment tokens in
// place of the tokens they are built from. Everything else passes through.
type Decoder struct {
	*decoder.Decoder[token.Token]
}

// New returns a markdown decoder reading from source, usually a front-matter
// decoder.
func New(source stream.Source[token.Token]) *Decoder {
	return &Decoder{Decoder: decoder.New[token.Token](source, decoder.NewSpeculative(trigger))}
}

func trigger(tok token.Token) decoder.Parser {
	switch tok.Kind() {
	case token.KindLeftBracket:
		return newLinkParser(tok)
	case token.KindExclamationMark:
		return newImageParser(tok)
	case token.KindLeftAngleBracket:
		return newCommentParser(tok)
	default:
		return nil
	}
}
