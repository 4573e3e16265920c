// Package stream provides the push-based event streams that connect decoder
// stages.
//
// A Stream delivers data, end and error events to its subscribers in the
// order they were written. Delivery is serialized: a write made while events
// are being delivered (from a handler, or from another goroutine) is queued
// and delivered after the current event, never recursively. Events written
// before the first subscriber arrives are buffered and replayed to it.
package stream

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrEnded is returned when writing to a stream that has already ended.
var ErrEnded = errors.New("stream already ended")

// Handler receives stream events.
type Handler[T any] interface {
	OnData(item T)
	OnEnd()
	OnError(err error)
}

// Source is anything that can be subscribed to.
type Source[T any] interface {
	// Subscribe registers h and returns a function that cancels the
	// subscription. No event is delivered to h after cancel returns.
	Subscribe(h Handler[T]) (cancel func())
}

// HandlerFuncs adapts plain functions to Handler. Nil functions are skipped.
type HandlerFuncs[T any] struct {
	Data  func(item T)
	End   func()
	Error func(err error)
}

// OnData implements Handler.
func (f HandlerFuncs[T]) OnData(item T) {
	if f.Data != nil {
		f.Data(item)
	}
}

// OnEnd implements Handler.
func (f HandlerFuncs[T]) OnEnd() {
	if f.End != nil {
		f.End()
	}
}

// OnError implements Handler.
func (f HandlerFuncs[T]) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}

type eventKind uint8

const (
	eventData eventKind = iota
	eventEnd
	eventError
)

type event[T any] struct {
	kind eventKind
	item T
	err  error
}

type subscription[T any] struct {
	handler   Handler[T]
	cancelled atomic.Bool
}

type delivery[T any] struct {
	sub *subscription[T]
	ev  event[T]
}

// Stream is a Source that can be written to. The zero value is not usable;
// create streams with New.
type Stream[T any] struct {
	mu       sync.Mutex
	subs     []*subscription[T]
	buffered []event[T]
	queue    []delivery[T]
	terminal *event[T]
	draining bool
}

// New returns an empty, open stream.
func New[T any]() *Stream[T] {
	return &Stream[T]{}
}

// Write publishes item. It returns ErrEnded after End or Error.
func (s *Stream[T]) Write(item T) error {
	return s.publish(event[T]{kind: eventData, item: item})
}

// End publishes the end of the stream.
func (s *Stream[T]) End() error {
	return s.publish(event[T]{kind: eventEnd})
}

// Error publishes err and ends the stream.
func (s *Stream[T]) Error(err error) error {
	return s.publish(event[T]{kind: eventError, err: err})
}

// Ended reports whether End or Error has been called.
func (s *Stream[T]) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminal != nil
}

// Subscribe implements Source. The first subscriber receives every event
// buffered so far; a subscriber arriving after the end receives only the
// terminal event.
func (s *Stream[T]) Subscribe(h Handler[T]) func() {
	sub := &subscription[T]{handler: h}

	s.mu.Lock()
	first := len(s.subs) == 0 && s.buffered != nil
	s.subs = append(s.subs, sub)
	switch {
	case first:
		for _, ev := range s.buffered {
			s.queue = append(s.queue, delivery[T]{sub: sub, ev: ev})
		}
		s.buffered = nil
	case s.terminal != nil:
		s.queue = append(s.queue, delivery[T]{sub: sub, ev: *s.terminal})
	}
	s.mu.Unlock()

	s.drain()

	return func() { s.unsubscribe(sub) }
}

func (s *Stream[T]) unsubscribe(sub *subscription[T]) {
	sub.cancelled.Store(true)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, candidate := range s.subs {
		if candidate == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *Stream[T]) publish(ev event[T]) error {
	s.mu.Lock()
	if s.terminal != nil {
		s.mu.Unlock()
		return ErrEnded
	}
	if ev.kind != eventData {
		s.terminal = &ev
	}
	if len(s.subs) == 0 {
		s.buffered = append(s.buffered, ev)
		s.mu.Unlock()
		return nil
	}
	for _, sub := range s.subs {
		s.queue = append(s.queue, delivery[T]{sub: sub, ev: ev})
	}
	s.mu.Unlock()

	s.drain()
	return nil
}

// drain delivers queued events unless another call is already doing so.
func (s *Stream[T]) drain() {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue[0] = delivery[T]{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		next.deliver()

		s.mu.Lock()
	}
	s.queue = nil
	s.draining = false
	s.mu.Unlock()
}

func (d delivery[T]) deliver() {
	if d.sub.cancelled.Load() {
		return
	}
	switch d.ev.kind {
	case eventData:
		d.sub.handler.OnData(d.ev.item)
	case eventEnd:
		d.sub.handler.OnEnd()
	case eventError:
		d.sub.handler.OnError(d.ev.err)
	}
}
