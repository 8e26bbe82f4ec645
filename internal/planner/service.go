// README: Generation orchestrator; coordinates prompt, completion call, and parsing.
package planner

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"tripzy/internal/ai"
	"tripzy/internal/itinerary"
	"tripzy/internal/trip"
)

// ErrSuperseded reports that a newer submission took over the session while
// this one was in flight; the newer submission's outcome stands.
var ErrSuperseded = errors.New("generation superseded by a newer submission")

// ErrUnknownSession reports a session ID with no live session behind it.
var ErrUnknownSession = errors.New("unknown session")

// Service orchestrates itinerary generation and owns the session registry.
type Service struct {
	provider ai.Provider
	timeout  time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewService builds an orchestrator. timeout bounds every completion call;
// on expiry the in-flight request is cancelled.
func NewService(provider ai.Provider, timeout time.Duration) *Service {
	return &Service{
		provider: provider,
		timeout:  timeout,
		sessions: make(map[string]*Session),
	}
}

func (s *Service) CreateSession() *Session {
	sess := NewSession()
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *Service) Session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	return sess, nil
}

// Generate runs one submission: Generating transition, prompt build,
// bounded completion call, parse, terminal transition. Preferences are
// validated before any state moves. Exactly one terminal transition leaves
// Generating per authoritative submission; a submission superseded mid-
// flight settles nothing and returns ErrSuperseded.
func (s *Service) Generate(ctx context.Context, sess *Session, prefs trip.Preferences) (*trip.Itinerary, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	token := sess.begin(cancel)
	prompt := trip.BuildItineraryPrompt(prefs)

	text, err := s.provider.Complete(genCtx, prompt)

	var result *trip.Itinerary
	var failure *Failure
	switch {
	case err != nil:
		failure = classifyCallError(genCtx, err, s.timeout)
	case strings.TrimSpace(text) == "":
		failure = &Failure{Kind: FailureEmptyResponse, Err: errors.New("completion endpoint returned no usable payload")}
	default:
		parsed, parseErr := itinerary.Parse(text)
		if parseErr != nil {
			failure = classifyParseError(parseErr)
		} else {
			result = parsed
		}
	}

	if !sess.settle(token, result, failure) {
		return nil, ErrSuperseded
	}
	if failure != nil {
		log.Printf("planner: session %s failed: %v", sess.ID, failure)
		return nil, failure
	}
	return result, nil
}

// classifyCallError separates timeout expiry from other transport failures.
// The deadline check looks at the generation context, not the wrapped error
// chain alone, because HTTP clients wrap cancellation causes inconsistently.
func classifyCallError(genCtx context.Context, err error, timeout time.Duration) *Failure {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(genCtx.Err(), context.DeadlineExceeded) {
		return &Failure{
			Kind: FailureTimeout,
			Err:  errors.New("completion endpoint did not respond within " + timeout.String()),
		}
	}
	return &Failure{Kind: FailureTransport, Err: err}
}

func classifyParseError(err error) *Failure {
	var parseErr *itinerary.ParseError
	if errors.As(err, &parseErr) {
		switch parseErr.Kind {
		case itinerary.KindMalformedPayload:
			return &Failure{Kind: FailureMalformedPayload, Err: err}
		case itinerary.KindInvalidJSON:
			return &Failure{Kind: FailureInvalidJSON, Err: err}
		}
	}
	return &Failure{Kind: FailureSchemaViolation, Err: err}
}
