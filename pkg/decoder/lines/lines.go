// Package lines decodes raw text chunks into Line, CarriageReturn and NewLine tokens.
package lines

import (
	"bytes"

	"github.com/yaklabco/mdstream/pkg/decoder"
	"github.com/yaklabco/mdstream/pkg/stream"
	"github.com/yaklabco/mdstream/pkg/token"
)

// Decoder is the leaf stage of every pipeline.
type Decoder struct {
	*decoder.Decoder[[]byte]
}

// New returns a lines decoder reading chunks from source.
func New(source stream.Source[[]byte]) *Decoder {
	return &Decoder{Decoder: decoder.New[[]byte](source, &handler{line: 1})}
}

// handler buffers bytes until a '\n' completes a line. Only the "\r" of a
// "\r\n" pair is a terminator; a lone '\r' stays in the line text.
type handler struct {
	buf  []byte
	line int
}

func (h *handler) Data(chunk []byte, out decoder.Emitter) {
	h.buf = append(h.buf, chunk...)

	off := 0
	for {
		idx := bytes.IndexByte(h.buf[off:], '\n')
		if idx < 0 {
			break
		}
		content := h.buf[off : off+idx]
		crlf := len(content) > 0 && content[len(content)-1] == '\r'
		if crlf {
			content = content[:len(content)-1]
		}
		h.emitLine(string(content), crlf, true, out)
		off += idx + 1
	}
	if off > 0 {
		h.buf = append(h.buf[:0], h.buf[off:]...)
	}
}

func (h *handler) End(out decoder.Emitter) {
	if len(h.buf) == 0 {
		return
	}
	h.emitLine(string(h.buf), false, false, out)
	h.buf = nil
}

func (h *handler) emitLine(text string, crlf, terminated bool, out decoder.Emitter) {
	line := token.Must(token.NewLine(text, h.line))
	out.Emit(line)
	if !terminated {
		return
	}

	column := line.Range().EndColumn
	if crlf {
		out.Emit(token.Must(token.NewSymbol(token.KindCarriageReturn, h.line, column)))
		column++
	}
	out.Emit(token.Must(token.NewSymbol(token.KindNewLine, h.line, column)))
	h.line++
}
