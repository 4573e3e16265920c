package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// DefaultChunkSize is the read size used by FromReader when none is given.
const DefaultChunkSize = 32 * 1024

// FromChunks returns an ended stream that replays chunks to its first subscriber.
func FromChunks(chunks ...[]byte) *Stream[[]byte] {
	s := New[[]byte]()
	for _, chunk := range chunks {
		_ = s.Write(chunk)
	}
	_ = s.End()
	return s
}

// FromString returns an ended stream holding text as a single chunk.
func FromString(text string) *Stream[[]byte] {
	return FromChunks([]byte(text))
}

// FromSlice returns an ended stream that replays items to its first subscriber.
func FromSlice[T any](items []T) *Stream[T] {
	s := New[T]()
	for _, item := range items {
		_ = s.Write(item)
	}
	_ = s.End()
	return s
}

// FromReader starts a goroutine that copies r into the returned stream in
// chunks of at most chunkSize bytes. Read errors and context cancellation
// are published with Error; io.EOF ends the stream.
func FromReader(ctx context.Context, r io.Reader, chunkSize int) *Stream[[]byte] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	s := New[[]byte]()

	go func() {
		for {
			if err := ctx.Err(); err != nil {
				_ = s.Error(fmt.Errorf("read cancelled: %w", err))
				return
			}

			buf := make([]byte, chunkSize)
			n, err := r.Read(buf)
			if n > 0 {
				_ = s.Write(buf[:n])
			}
			if errors.Is(err, io.EOF) {
				_ = s.End()
				return
			}
			if err != nil {
				_ = s.Error(fmt.Errorf("read input: %w", err))
				return
			}
		}
	}()

	return s
}
