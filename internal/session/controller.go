// Package session runs one analysis round trip at a time: validate the
// listing, ask the backend for a strategy, remember the result and feed
// outcome reports back.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/recent"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// State is the controller's position in the submission state machine:
// Idle → Validating → Submitting → {Succeeded, Failed} → Idle.
type State int

const (
	Idle State = iota
	Validating
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Session is the most recent successful analysis.
type Session struct {
	ID            uuid.UUID
	OriginalInput backend.ListingInput
	Result        *backend.AnalysisResult
	CreatedAt     time.Time
}

// Controller owns the current session. It allows at most one submission in
// flight.
type Controller struct {
	service backend.Service
	recent  *recent.Cache

	mu      sync.Mutex
	state   State
	session *Session
	lastErr error
}

// NewController creates a controller. recent may be nil, in which case
// successful analyses are not remembered.
func NewController(service backend.Service, recent *recent.Cache) *Controller {
	return &Controller{
		service: service,
		recent:  recent,
	}
}

// Submit validates raw and sends it for analysis. Invalid input fails with a
// *ValidationError without contacting the backend; a backend failure is a
// *NetworkError. A call made while another is still submitting returns
// ErrConcurrentSubmission.
func (c *Controller) Submit(ctx context.Context, raw backend.ListingInput) (*backend.AnalysisResult, error) {
	c.mu.Lock()
	if c.state == Submitting {
		c.mu.Unlock()
		log.Debug().Str("item", raw.ItemName).Msg("dropping submission, one already in flight")
		return nil, ErrConcurrentSubmission
	}

	// Succeeded and Failed settle back to Idle before a new round starts
	c.state = Validating
	input, err := Validate(raw)
	if err != nil {
		c.fail(err)
		c.mu.Unlock()
		return nil, err
	}
	c.state = Submitting
	c.lastErr = nil
	c.mu.Unlock()

	log.Info().Str("item", input.ItemName).Float64("price", input.Price).Msg("submitting listing for analysis")

	result, err := c.service.Analyze(ctx, input)

	c.mu.Lock()
	if err != nil {
		netErr := newNetworkError(err)
		c.fail(netErr)
		c.mu.Unlock()
		log.Error().Err(err).Str("item", input.ItemName).Msg("analysis failed")
		return nil, netErr
	}

	session := &Session{
		ID:            uuid.New(),
		OriginalInput: input,
		Result:        result,
		CreatedAt:     time.Now(),
	}
	c.session = session
	c.state = Succeeded
	c.mu.Unlock()

	if c.recent != nil {
		c.recent.Add(input)
	}

	log.Info().
		Str("session", session.ID.String()).
		Str("item", input.ItemName).
		Str("method", string(result.Strategy.Method)).
		Float64("offer", result.Strategy.OfferPrice).
		Msg("analysis complete")

	return result, nil
}

// fail must be called with c.mu held.
func (c *Controller) fail(err error) {
	c.state = Failed
	c.lastErr = err
}

// ReportOutcome sends the negotiation outcome for the current session to the
// backend's learning endpoint.
func (c *Controller) ReportOutcome(ctx context.Context, outcome backend.Outcome) error {
	session := c.Session()
	if session == nil {
		return ErrNoActiveSession
	}

	feedback := backend.LearningFeedback{
		ItemName:      session.OriginalInput.ItemName,
		OriginalPrice: session.OriginalInput.Price,
		OfferedPrice:  session.Result.Strategy.OfferPrice,
		StrategyUsed:  session.Result.Strategy.Method,
		Outcome:       outcome,
	}

	if err := c.service.Learn(ctx, feedback); err != nil {
		log.Error().Err(err).Str("session", session.ID.String()).Msg("failed to report outcome")
		return newNetworkError(err)
	}

	log.Info().
		Str("session", session.ID.String()).
		Str("outcome", string(outcome)).
		Msg("outcome reported")
	return nil
}

// Retry returns a copy of the current session's input for editing and
// resubmitting.
func (c *Controller) Retry() (backend.ListingInput, error) {
	session := c.Session()
	if session == nil {
		return backend.ListingInput{}, ErrNoActiveSession
	}
	return session.OriginalInput.Clone(), nil
}

// Reset settles a finished round back to Idle. It has no effect while a
// submission is in flight.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Succeeded || c.state == Failed {
		c.state = Idle
		c.lastErr = nil
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error that moved the controller to Failed, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Session returns the current session, or nil if no analysis has succeeded.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// View composes the display model for the current session.
func (c *Controller) View() (View, error) {
	session := c.Session()
	if session == nil {
		return View{}, ErrNoActiveSession
	}
	view := BuildView(session.OriginalInput, session.Result)
	view.SessionID = session.ID.String()
	return view, nil
}
