// README: Per-session generation state machine.
package planner

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"tripzy/internal/trip"
)

type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// FailureKind enumerates the terminal failure classes of a generation
// attempt. Timeout stays distinct from the rest; callers offer "try again"
// specifically on it.
type FailureKind string

const (
	FailureTimeout          FailureKind = "timeout"
	FailureTransport        FailureKind = "transport_error"
	FailureEmptyResponse    FailureKind = "empty_response"
	FailureMalformedPayload FailureKind = "malformed_payload"
	FailureInvalidJSON      FailureKind = "invalid_json"
	FailureSchemaViolation  FailureKind = "schema_violation"
)

// Failure is the terminal error of a failed generation attempt.
type Failure struct {
	Kind FailureKind
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Session holds the single generation-state slot for one planning session.
// State is owned by the session, guarded by its mutex; no ambient globals.
// The submission counter makes late results from superseded attempts
// detectable: only the attempt holding the current token may settle.
type Session struct {
	ID string

	mu        sync.Mutex
	state     State
	itinerary *trip.Itinerary
	failure   *Failure
	seq       uint64
	cancel    context.CancelFunc
}

func NewSession() *Session {
	return &Session{ID: uuid.NewString(), state: StateIdle}
}

// begin transitions the session to Generating and returns the token for the
// new attempt. Any in-flight attempt is cancelled and loses its token; the
// prior outcome (including the prior failure) is cleared.
func (s *Session) begin(cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.seq++
	s.state = StateGenerating
	s.itinerary = nil
	s.failure = nil
	return s.seq
}

// settle records the terminal state for the attempt holding token. A stale
// token means a newer submission superseded this attempt; its result is
// discarded and settle reports false.
func (s *Session) settle(token uint64, result *trip.Itinerary, failure *Failure) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		return false
	}
	s.cancel = nil
	if failure != nil {
		s.state = StateFailed
		s.failure = failure
		s.itinerary = nil
		return true
	}
	s.state = StateSucceeded
	s.itinerary = result
	return true
}

// Reset returns the session to Idle, cancelling any in-flight attempt.
// The counter bump orphans that attempt so its late settle is discarded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.seq++
	s.state = StateIdle
	s.itinerary = nil
	s.failure = nil
}

// Snapshot is a read-only view of the session for callers and handlers.
type Snapshot struct {
	ID          string          `json:"id"`
	State       State           `json:"state"`
	Itinerary   *trip.Itinerary `json:"itinerary,omitempty"`
	FailureKind FailureKind     `json:"failure_kind,omitempty"`
	Error       string          `json:"error,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{ID: s.ID, State: s.state, Itinerary: s.itinerary}
	if s.failure != nil {
		snap.FailureKind = s.failure.Kind
		snap.Error = s.failure.Error()
	}
	return snap
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
