package decoder

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/yaklabco/mdstream/pkg/token"
)

// Tokens returns a pull-based sequence over the decoder output. Iteration
// ends when the decoder ends; an upstream error or a cancelled context is
// yielded once as the final element. Breaking out of the loop or cancelling
// ctx disposes the decoder. A decoder can be iterated once.
func (d *Decoder[From]) Tokens(ctx context.Context) iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		q := newQueue()
		cancel := d.Subscribe(q)
		defer cancel()

		for {
			tok, more, err := q.next(ctx)
			if err != nil {
				if ctx.Err() != nil {
					d.Dispose()
				}
				yield(nil, err)
				return
			}
			if !more {
				return
			}
			if !yield(tok, nil) {
				d.Dispose()
				return
			}
		}
	}
}

// ConsumeAll collects every remaining token and returns once the decoder ends.
func (d *Decoder[From]) ConsumeAll(ctx context.Context) ([]token.Token, error) {
	var tokens []token.Token
	for tok, err := range d.Tokens(ctx) {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Settled blocks until the decoder has ended or been disposed and returns
// the upstream error, if any. Pair it with Subscribe for push-based use.
func (d *Decoder[From]) Settled(ctx context.Context) error {
	select {
	case <-d.done:
		return d.err
	case <-ctx.Done():
		return fmt.Errorf("wait for decoder: %w", ctx.Err())
	}
}

// queue buffers pushed tokens for a pulling consumer.
type queue struct {
	mu     sync.Mutex
	items  []token.Token
	ended  bool
	err    error
	signal chan struct{}
}

func newQueue() *queue {
	return &queue{signal: make(chan struct{}, 1)}
}

func (q *queue) OnData(tok token.Token) {
	q.mu.Lock()
	q.items = append(q.items, tok)
	q.mu.Unlock()
	q.notify()
}

func (q *queue) OnEnd() {
	q.mu.Lock()
	q.ended = true
	q.mu.Unlock()
	q.notify()
}

func (q *queue) OnError(err error) {
	q.mu.Lock()
	q.ended = true
	q.err = err
	q.mu.Unlock()
	q.notify()
}

func (q *queue) notify() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// next returns the next token. more is false once the queue is drained and ended.
func (q *queue) next(ctx context.Context) (tok token.Token, more bool, err error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			tok = q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			return tok, true, nil
		}
		if q.ended {
			err = q.err
			q.mu.Unlock()
			return nil, false, err
		}
		q.mu.Unlock()

		select {
		case <-q.signal:
		case <-ctx.Done():
			return nil, false, fmt.Errorf("consume tokens: %w", ctx.Err())
		}
	}
}
