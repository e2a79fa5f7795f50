package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/parceltrack/internal/domain"
	"github.com/bnema/parceltrack/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	MessageNoData      = "no data"
	MessageUnavailable = "tracking service unavailable"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Session owns the selection state of one tracking lookup and the last
// result. At most one query is in flight at a time.
type Session struct {
	tracking ports.TrackingSource
	defaults domain.ScopeDefaults
	logger   zerolog.Logger

	mu          sync.Mutex
	directory   []domain.Carrier
	selectable  []domain.Carrier
	scope       domain.Scope
	carrier     domain.Carrier
	invoice     string
	lastResult  *domain.TrackingResult
	errMessage  string
	state       State
	inFlight    string
	cancelQuery context.CancelFunc
	closed      bool
}

type SessionOption func(*Session)

func WithLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession loads the carrier directory once. A directory that cannot be
// fetched is fatal: the session cannot offer a carrier without it.
func NewSession(ctx context.Context, carriers ports.CarrierSource, tracking ports.TrackingSource, defaults domain.ScopeDefaults, opts ...SessionOption) (*Session, error) {
	s := &Session{
		tracking: tracking,
		defaults: defaults,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	directory, err := carriers.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load carrier directory: %w", err)
	}
	if err := domain.ValidateDirectory(directory); err != nil {
		return nil, fmt.Errorf("load carrier directory: %w", err)
	}

	s.directory = directory
	s.selectable = domain.FilterByScope(directory, domain.ScopeUnselected)
	if initial, ok := defaults.For(domain.ScopeDomestic); ok {
		s.carrier = initial
	}

	s.logger.Debug().Int("carriers", len(directory)).Msg("carrier directory loaded")

	return s, nil
}

// SelectScope switches scope, preselects the scope's default carrier and
// clears a stale error message.
func (s *Session) SelectScope(scope domain.Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scope = scope
	s.selectable = domain.FilterByScope(s.directory, scope)
	if carrier, ok := s.defaults.For(scope); ok {
		s.carrier = carrier
	}
	s.clearErrorLocked()
}

// SelectCarrier picks a carrier from the currently selectable list. Unknown
// codes leave the selection untouched.
func (s *Session) SelectCarrier(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	carrier, ok := domain.FindByCode(s.selectable, code)
	if !ok {
		return false
	}

	s.carrier = carrier
	s.clearErrorLocked()
	return true
}

// UpdateInvoiceInput stores raw after filtering it for the selected carrier
// and returns the stored value.
func (s *Session) UpdateInvoiceInput(raw string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var selected *domain.Carrier
	if carrier, ok := domain.FindByCode(s.directory, s.carrier.Code); ok {
		selected = &carrier
	}

	s.invoice = domain.SanitizeInvoice(raw, selected)
	return s.invoice
}

// Submit runs one tracking query with the current selection. Failures of the
// query are recorded in the session state and never returned; the returned
// error only reports a rejected call.
func (s *Session) Submit(ctx context.Context) (State, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return StateIdle, domain.ErrSessionClosed
	}
	if s.inFlight != "" {
		state := s.state
		s.mu.Unlock()
		return state, domain.ErrQueryInFlight
	}

	queryID := uuid.NewString()
	queryCtx, cancel := context.WithCancel(ctx)
	s.inFlight = queryID
	s.cancelQuery = cancel
	s.state = StateLoading
	s.errMessage = ""
	carrier := s.carrier
	invoice := s.invoice
	s.mu.Unlock()

	logger := s.logger.With().
		Str("query_id", queryID).
		Str("carrier", carrier.Code).
		Logger()
	logger.Debug().Msg("tracking query started")

	result, err := s.tracking.Query(queryCtx, carrier.Code, invoice)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.inFlight != queryID {
		logger.Debug().Msg("tracking query discarded")
		return s.state, domain.ErrSessionClosed
	}
	s.inFlight = ""
	s.cancelQuery = nil

	if result.CarrierName == "" {
		result.CarrierName = carrier.Name
	}
	if result.InvoiceNo == "" {
		result.InvoiceNo = invoice
	}

	s.applyLocked(result, err)

	event := logger.Debug().Str("state", s.state.String())
	if s.errMessage != "" {
		event = event.Str("error_message", s.errMessage)
	}
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("tracking query settled")

	return s.state, nil
}

func (s *Session) applyLocked(result domain.TrackingResult, err error) {
	var requestErr *domain.RequestError

	switch {
	case err == nil && !result.HasData():
		s.fail(MessageNoData)
	case err == nil && domain.IsInvalidRequestCode(result.ErrorCode):
		s.fail(result.ErrorMessage)
	case err == nil:
		s.lastResult = &result
		s.state = StateReady
	case errors.Is(err, domain.ErrNoData):
		s.fail(MessageNoData)
	case errors.As(err, &requestErr):
		s.fail(requestErr.Message)
	default:
		s.fail(MessageUnavailable)
	}
}

func (s *Session) fail(message string) {
	if message == "" {
		message = MessageUnavailable
	}
	s.errMessage = message
	s.state = StateError
}

func (s *Session) clearErrorLocked() {
	s.errMessage = ""
	if s.state == StateError {
		s.state = StateIdle
		if s.lastResult != nil {
			s.state = StateReady
		}
	}
}

// Close tears the session down. A query still in flight is cancelled and its
// result discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.cancelQuery != nil {
		s.cancelQuery()
		s.cancelQuery = nil
	}
	s.inFlight = ""
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{
		State:        s.state,
		Scope:        s.scope,
		Carrier:      s.carrier,
		Carriers:     append([]domain.Carrier(nil), s.selectable...),
		Invoice:      s.invoice,
		ErrorMessage: s.errMessage,
		InFlight:     s.inFlight != "",
	}
	if s.lastResult != nil {
		result := *s.lastResult
		snapshot.Result = &result
		snapshot.Progress = domain.Progress(result.CurrentLevel)
		snapshot.Timeline = domain.Timeline(result.Events)
	}

	return snapshot
}
