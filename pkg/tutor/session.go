package tutor

import (
	"context"
	"sync"
)

// DefaultFallback is shown in place of an answer when a request fails
const DefaultFallback = "Sorry, the tutor could not answer right now. Please try again in a moment."

// Phase is what the session currently displays
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseAnswered Phase = "answered"
	PhaseFailed   Phase = "failed"
)

// State is a snapshot of the session display
type State struct {
	Phase    Phase  `json:"phase"`
	Loading  bool   `json:"loading"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Error    string `json:"error,omitempty"`
	Seq      uint64 `json:"seq"`
}

// Session tracks the one answer a UI shows. Requests may overlap; each
// resolution replaces the displayed state whole, so the last one to resolve
// wins and no reply is ever mixed with another.
type Session struct {
	asker    Asker
	fallback string

	mu       sync.Mutex
	seq      uint64
	inFlight int
	state    State
}

// NewSession creates a session. An empty fallback uses DefaultFallback.
func NewSession(asker Asker, fallback string) *Session {
	if fallback == "" {
		fallback = DefaultFallback
	}
	return &Session{
		asker:    asker,
		fallback: fallback,
		state:    State{Phase: PhaseIdle},
	}
}

// Submit starts a request in the background. The returned channel receives
// the state produced by this request once it resolves, then closes.
func (s *Session) Submit(ctx context.Context, question, analysisContext string) <-chan State {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.inFlight++
	s.mu.Unlock()

	done := make(chan State, 1)
	go func() {
		defer close(done)

		answer, err := s.asker.Ask(ctx, question, analysisContext)

		resolved := State{Phase: PhaseAnswered, Question: question, Answer: answer, Seq: seq}
		if err != nil {
			resolved = State{Phase: PhaseFailed, Question: question, Answer: s.fallback, Error: err.Error(), Seq: seq}
		}

		s.mu.Lock()
		s.inFlight--
		s.state = resolved
		s.mu.Unlock()

		done <- resolved
	}()

	return done
}

// Snapshot returns the current display state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Loading = s.inFlight > 0
	return st
}
