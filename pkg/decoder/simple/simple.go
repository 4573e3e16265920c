// Package simple splits lines into symbol tokens and Word runs.
package simple

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/mdstream/pkg/decoder"
	"github.com/yaklabco/mdstream/pkg/stream"
	"github.com/yaklabco/mdstream/pkg/token"
)

// Decoder turns Line tokens into words and symbols. Line terminators pass
// through unchanged.
type Decoder struct {
	*decoder.Decoder[token.Token]
}

// Option configures a Decoder.
type Option func(*handler)

// WithSymbols limits the stop characters to the given symbol kinds. Other
// characters, including excluded symbols, become part of words.
func WithSymbols(kinds ...token.Kind) Option {
	return func(h *handler) {
		h.stops = make(map[rune]token.Kind, len(kinds))
		for _, kind := range kinds {
			if char, ok := kind.Char(); ok {
				h.stops[char] = kind
			}
		}
	}
}

// New returns a simple decoder reading from source, usually a lines decoder.
func New(source stream.Source[token.Token], opts ...Option) *Decoder {
	h := &handler{}
	WithSymbols(token.SymbolKinds()...)(h)
	for _, opt := range opts {
		opt(h)
	}
	return &Decoder{Decoder: decoder.New[token.Token](source, h)}
}

type handler struct {
	stops map[rune]token.Kind
}

func (h *handler) Data(tok token.Token, out decoder.Emitter) {
	if tok.Kind() != token.KindLine {
		out.Emit(tok)
		return
	}

	rng := tok.Range()
	line, column := rng.StartLine, rng.StartColumn
	text := tok.Text()

	var word []byte
	wordColumn := column
	flush := func() {
		if len(word) == 0 {
			return
		}
		out.Emit(token.Must(token.NewWord(string(word), line, wordColumn)))
		word = word[:0]
	}

	state := -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.StepString(text, state)

		if kind, ok := h.stopKind(cluster); ok {
			flush()
			out.Emit(token.Must(token.NewSymbol(kind, line, column)))
		} else {
			if len(word) == 0 {
				wordColumn = column
			}
			word = append(word, cluster...)
		}
		column++
	}
	flush()
}

func (h *handler) End(decoder.Emitter) {}

// stopKind reports the symbol kind of a cluster made of one stop character.
func (h *handler) stopKind(cluster string) (token.Kind, bool) {
	char, size := utf8.DecodeRuneInString(cluster)
	if size != len(cluster) {
		return 0, false
	}
	kind, ok := h.stops[char]
	return kind, ok
}
