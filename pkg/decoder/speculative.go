package decoder

import "github.com/yaklabco/mdstream/pkg/token"

// Trigger returns the parser that tok opens, or nil if tok opens nothing.
type Trigger func(tok token.Token) Parser

// Speculative is a Handler for token-to-token stages that recognize
// multi-token constructs. At most one parser is in flight at a time.
type Speculative struct {
	trigger Trigger
	current Parser
}

// NewSpeculative returns a handler that opens constructs with trigger.
func NewSpeculative(trigger Trigger) *Speculative {
	return &Speculative{trigger: trigger}
}

// Active reports whether a construct is in flight.
func (s *Speculative) Active() bool {
	return s.current != nil
}

// Data implements Handler. A token the active parser does not consume is
// offered again, first to the upgraded parser if there is one, then to the
// trigger, and finally passed through.
func (s *Speculative) Data(tok token.Token, out Emitter) {
	for {
		if s.current == nil {
			if parser := s.trigger(tok); parser != nil {
				s.current = parser
				return
			}
			out.Emit(tok)
			return
		}

		result := s.current.Accept(tok)
		switch result.Outcome {
		case Success:
			if result.Token != nil {
				out.Emit(result.Token)
				s.current = nil
			} else {
				s.current = result.Next
			}
		case Failure:
			s.reemit(out)
		default:
			panic("decoder: parser returned a result without outcome")
		}

		if result.Consumed {
			return
		}
	}
}

// End implements Handler.
func (s *Speculative) End(out Emitter) {
	if s.current == nil {
		return
	}
	if tok, ok := s.current.Close(); ok {
		out.Emit(tok)
		s.current = nil
		return
	}
	s.reemit(out)
}

func (s *Speculative) reemit(out Emitter) {
	for _, tok := range s.current.Tokens() {
		out.Emit(tok)
	}
	s.current = nil
}
