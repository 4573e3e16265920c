// Package decoder provides the stream transformer shared by every decoding stage.
//
// A Decoder subscribes to an upstream Source, hands each item to a Handler,
// and publishes the tokens the handler emits on its own output stream.
// Decoders are themselves Sources, so stages compose by passing one decoder
// as the source of the next. Subscribing to a decoder starts it, and starting
// the outermost decoder of a chain starts every stage below it.
package decoder

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/yaklabco/mdstream/pkg/stream"
	"github.com/yaklabco/mdstream/pkg/token"
)

// Lifecycle errors returned by Start.
var (
	ErrAlreadyStarted  = errors.New("decoder already started")
	ErrAlreadyEnded    = errors.New("decoder already ended")
	ErrAlreadyDisposed = errors.New("decoder already disposed")
)

// State is the lifecycle state of a decoder.
type State int32

const (
	NotStarted State = iota
	Running
	Ended
	Disposed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Ended:
		return "ended"
	case Disposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Emitter receives the tokens a handler produces.
type Emitter interface {
	Emit(tok token.Token)
}

// Handler implements one decoding stage.
type Handler[From any] interface {
	// Data is called for every upstream item, in order.
	Data(item From, out Emitter)

	// End is called once when the upstream ends, before the decoder's own
	// output ends. Held tokens must be flushed here.
	End(out Emitter)
}

// Decoder drives a Handler from an upstream Source.
type Decoder[From any] struct {
	source  stream.Source[From]
	handler Handler[From]
	out     *stream.Stream[token.Token]

	state atomic.Int32

	mu     sync.Mutex
	cancel func()

	done     chan struct{}
	doneOnce sync.Once
	err      error
}

// New returns a decoder that is not started yet.
func New[From any](source stream.Source[From], handler Handler[From]) *Decoder[From] {
	return &Decoder[From]{
		source:  source,
		handler: handler,
		out:     stream.New[token.Token](),
		done:    make(chan struct{}),
	}
}

// State reports the current lifecycle state.
func (d *Decoder[From]) State() State {
	return State(d.state.Load())
}

// Start subscribes to the upstream source. It may be called once.
func (d *Decoder[From]) Start() error {
	if !d.state.CompareAndSwap(int32(NotStarted), int32(Running)) {
		switch d.State() {
		case Ended:
			return ErrAlreadyEnded
		case Disposed:
			return ErrAlreadyDisposed
		default:
			return ErrAlreadyStarted
		}
	}

	cancel := d.source.Subscribe(stream.HandlerFuncs[From]{
		Data:  d.onData,
		End:   d.onEnd,
		Error: d.onError,
	})

	d.mu.Lock()
	d.cancel = cancel
	d.mu.Unlock()

	if d.State() == Disposed {
		cancel()
	}
	return nil
}

// Subscribe implements stream.Source. It starts the decoder if needed.
func (d *Decoder[From]) Subscribe(h stream.Handler[token.Token]) func() {
	cancel := d.out.Subscribe(h)
	if d.State() == NotStarted {
		_ = d.Start()
	}
	return cancel
}

// Dispose stops the decoder: the upstream subscription is released, the
// upstream is disposed if it supports it, held tokens are dropped and no
// token is emitted afterwards. Dispose is idempotent.
func (d *Decoder[From]) Dispose() {
	if State(d.state.Swap(int32(Disposed))) == Disposed {
		return
	}

	d.mu.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if disposer, ok := d.source.(interface{ Dispose() }); ok {
		disposer.Dispose()
	}

	_ = d.out.End()
	d.markDone(nil)
}

func (d *Decoder[From]) onData(item From) {
	if d.State() != Running {
		return
	}
	d.handler.Data(item, emitter[From]{d})
}

func (d *Decoder[From]) onEnd() {
	if d.State() != Running {
		return
	}
	d.handler.End(emitter[From]{d})
	d.finish(nil)
}

func (d *Decoder[From]) onError(err error) {
	if d.State() != Running {
		return
	}
	d.finish(err)
}

func (d *Decoder[From]) finish(err error) {
	if !d.state.CompareAndSwap(int32(Running), int32(Ended)) {
		return
	}
	if err != nil {
		_ = d.out.Error(err)
	} else {
		_ = d.out.End()
	}
	d.markDone(err)
}

func (d *Decoder[From]) markDone(err error) {
	d.doneOnce.Do(func() {
		d.err = err
		close(d.done)
	})
}

type emitter[From any] struct {
	d *Decoder[From]
}

func (e emitter[From]) Emit(tok token.Token) {
	if e.d.State() != Running {
		return
	}
	_ = e.d.out.Write(tok)
}
