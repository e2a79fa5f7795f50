package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/parceltrack/internal/domain"
	"github.com/bnema/parceltrack/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func scenarioDirectory() []domain.Carrier {
	return []domain.Carrier{
		{Code: "04", Name: "CJ", International: false},
		{Code: "12", Name: "EMS", International: true},
	}
}

func scenarioDefaults() domain.ScopeDefaults {
	return domain.ScopeDefaults{
		Domestic:      domain.Carrier{Code: "04", Name: "CJ"},
		International: domain.Carrier{Code: "12", Name: "EMS", International: true},
	}
}

func newTestSession(t *testing.T) (*Session, *mocks.MockTrackingSource) {
	t.Helper()

	carriers := mocks.NewMockCarrierSource(t)
	tracking := mocks.NewMockTrackingSource(t)
	carriers.On("FetchAll", mockAnyContext()).Return(scenarioDirectory(), nil).Once()

	session, err := NewSession(context.Background(), carriers, tracking, scenarioDefaults())
	require.NoError(t, err)

	return session, tracking
}

func resultWithEvents(level int, events ...domain.TrackingEvent) domain.TrackingResult {
	result := domain.TrackingResult{CurrentLevel: level, Events: events}
	if len(events) > 0 {
		first := events[0]
		last := events[len(events)-1]
		result.FirstEvent = &first
		result.LastEvent = &last
	}
	return result
}

func withErrorCode(result domain.TrackingResult, code, message string) domain.TrackingResult {
	result.ErrorCode = code
	result.ErrorMessage = message
	return result
}

func TestNewSessionFailsWhenDirectoryUnavailable(t *testing.T) {
	carriers := mocks.NewMockCarrierSource(t)
	tracking := mocks.NewMockTrackingSource(t)
	unavailable := &domain.UnavailableError{Op: "fetch carriers", Err: errors.New("connection refused")}
	carriers.On("FetchAll", mockAnyContext()).Return(nil, unavailable).Once()

	session, err := NewSession(context.Background(), carriers, tracking, scenarioDefaults())
	require.Error(t, err)
	assert.Nil(t, session)

	var target *domain.UnavailableError
	assert.ErrorAs(t, err, &target)
}

func TestNewSessionRejectsDuplicateCarrierCodes(t *testing.T) {
	carriers := mocks.NewMockCarrierSource(t)
	tracking := mocks.NewMockTrackingSource(t)
	carriers.On("FetchAll", mockAnyContext()).Return([]domain.Carrier{{Code: "04"}, {Code: "04"}}, nil).Once()

	_, err := NewSession(context.Background(), carriers, tracking, scenarioDefaults())
	assert.ErrorIs(t, err, domain.ErrDuplicateCarrierCode)
}

func TestNewSessionStartsIdleWithFullDirectory(t *testing.T) {
	session, _ := newTestSession(t)

	snapshot := session.Snapshot()
	assert.Equal(t, StateIdle, snapshot.State)
	assert.Equal(t, domain.ScopeUnselected, snapshot.Scope)
	assert.Equal(t, scenarioDirectory(), snapshot.Carriers)
	assert.Equal(t, "04", snapshot.Carrier.Code)
	assert.Nil(t, snapshot.Result)
}

func TestSessionEndToEndDomesticLookup(t *testing.T) {
	session, tracking := newTestSession(t)

	session.SelectScope(domain.ScopeDomestic)
	snapshot := session.Snapshot()
	assert.Equal(t, []domain.Carrier{{Code: "04", Name: "CJ"}}, snapshot.Carriers)

	assert.Equal(t, "1234", session.UpdateInvoiceInput("12-34"))

	evA := domain.TrackingEvent{StageLabel: "intake", Location: "Seoul", TimestampRaw: 1}
	evB := domain.TrackingEvent{StageLabel: "out for delivery", Location: "Busan", TimestampRaw: 2}
	tracking.On("Query", mockAnyContext(), "04", "1234").Return(resultWithEvents(5, evA, evB), nil).Once()

	state, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateReady, state)

	snapshot = session.Snapshot()
	require.NotNil(t, snapshot.Result)
	assert.Equal(t, "CJ", snapshot.Result.CarrierName)
	assert.Equal(t, "1234", snapshot.Result.InvoiceNo)
	assert.Empty(t, snapshot.ErrorMessage)

	active, ok := domain.ActiveStageIndex(snapshot.Result.CurrentLevel)
	require.True(t, ok)
	assert.Equal(t, 3, active)
	assert.True(t, snapshot.Progress[3].Active)

	require.Len(t, snapshot.Timeline, 2)
	assert.Equal(t, evB, snapshot.Timeline[0].Event)
	assert.True(t, snapshot.Timeline[0].Current)
	assert.Equal(t, evA, snapshot.Timeline[1].Event)
	assert.False(t, snapshot.Timeline[1].Current)
}

func TestSessionSubmitWithoutFirstEventReportsNoData(t *testing.T) {
	session, tracking := newTestSession(t)
	session.UpdateInvoiceInput("1111")

	previous := resultWithEvents(3, domain.TrackingEvent{Location: "first"})
	tracking.On("Query", mockAnyContext(), "04", "1111").Return(previous, nil).Once()
	_, err := session.Submit(context.Background())
	require.NoError(t, err)

	session.UpdateInvoiceInput("2222")
	tracking.On("Query", mockAnyContext(), "04", "2222").Return(domain.TrackingResult{CurrentLevel: 6, ErrorCode: "104"}, nil).Once()

	state, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateError, state)

	snapshot := session.Snapshot()
	assert.Equal(t, MessageNoData, snapshot.ErrorMessage)
	require.NotNil(t, snapshot.Result)
	assert.Equal(t, "1111", snapshot.Result.InvoiceNo)
	assert.Equal(t, 3, snapshot.Result.CurrentLevel)
}

func TestSessionSubmitErrorPaths(t *testing.T) {
	event := domain.TrackingEvent{Location: "hub"}

	tests := []struct {
		name        string
		result      domain.TrackingResult
		err         error
		wantMessage string
	}{
		{
			name:        "known invalid request code",
			result:      withErrorCode(resultWithEvents(2, event), "105", "invalid invoice"),
			wantMessage: "invalid invoice",
		},
		{
			name:        "request error",
			err:         &domain.RequestError{Code: "104", Message: "unknown carrier"},
			wantMessage: "unknown carrier",
		},
		{
			name:        "no data error",
			err:         domain.ErrNoData,
			wantMessage: MessageNoData,
		},
		{
			name:        "transport failure",
			err:         &domain.UnavailableError{Op: "query", Err: errors.New("timeout")},
			wantMessage: MessageUnavailable,
		},
		{
			name:        "unexpected failure",
			err:         errors.New("boom"),
			wantMessage: MessageUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			session, tracking := newTestSession(t)
			session.UpdateInvoiceInput("5555")
			tracking.On("Query", mockAnyContext(), "04", "5555").Return(tc.result, tc.err).Once()

			state, err := session.Submit(context.Background())
			require.NoError(t, err)
			assert.Equal(t, StateError, state)

			snapshot := session.Snapshot()
			assert.Equal(t, tc.wantMessage, snapshot.ErrorMessage)
			assert.Nil(t, snapshot.Result)
			assert.False(t, snapshot.InFlight)
		})
	}
}

func TestSessionUnknownErrorCodeWithDataIsReady(t *testing.T) {
	session, tracking := newTestSession(t)
	session.UpdateInvoiceInput("5555")

	result := resultWithEvents(4, domain.TrackingEvent{Location: "hub"})
	result.ErrorCode = "200"
	tracking.On("Query", mockAnyContext(), "04", "5555").Return(result, nil).Once()

	state, err := session.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateReady, state)
}

func TestSessionSelectScopeIsIdempotent(t *testing.T) {
	session, _ := newTestSession(t)

	session.SelectScope(domain.ScopeDomestic)
	once := session.Snapshot()
	session.SelectScope(domain.ScopeDomestic)
	twice := session.Snapshot()

	assert.Equal(t, once.Carriers, twice.Carriers)
	assert.Equal(t, once.Carrier, twice.Carrier)
}

func TestSessionSelectScopeUsesDefaultsTable(t *testing.T) {
	session, _ := newTestSession(t)

	session.SelectScope(domain.ScopeInternational)
	snapshot := session.Snapshot()
	assert.Equal(t, "12", snapshot.Carrier.Code)
	assert.Equal(t, "EMS", snapshot.Carrier.Name)
	assert.Equal(t, []domain.Carrier{{Code: "12", Name: "EMS", International: true}}, snapshot.Carriers)

	session.SelectScope(domain.ScopeUnselected)
	snapshot = session.Snapshot()
	assert.Equal(t, "12", snapshot.Carrier.Code, "unselected scope keeps the current carrier")
	assert.Len(t, snapshot.Carriers, 2)
}

func TestSessionSelectCarrier(t *testing.T) {
	session, _ := newTestSession(t)
	session.SelectScope(domain.ScopeDomestic)

	assert.False(t, session.SelectCarrier("12"), "international carrier is not selectable in domestic scope")
	assert.Equal(t, "04", session.Snapshot().Carrier.Code)

	session.SelectScope(domain.ScopeInternational)
	assert.True(t, session.SelectCarrier("12"))
	assert.Equal(t, "EMS", session.Snapshot().Carrier.Name)
}

func TestSessionInvoiceInputFollowsSelectedCarrier(t *testing.T) {
	session, _ := newTestSession(t)

	session.SelectScope(domain.ScopeInternational)
	assert.Equal(t, "AB-12", session.UpdateInvoiceInput("AB-12"))

	session.SelectScope(domain.ScopeDomestic)
	assert.Equal(t, "12", session.UpdateInvoiceInput("AB-12"))
	assert.Equal(t, "12", session.Snapshot().Invoice)
}

func TestSessionScopeChangeClearsError(t *testing.T) {
	session, tracking := newTestSession(t)
	tracking.On("Query", mockAnyContext(), "04", "").Return(domain.TrackingResult{}, nil).Once()

	state, err := session.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateError, state)

	session.SelectScope(domain.ScopeInternational)
	snapshot := session.Snapshot()
	assert.Empty(t, snapshot.ErrorMessage)
	assert.Equal(t, StateIdle, snapshot.State)
}

func TestSessionRejectsOverlappingSubmit(t *testing.T) {
	session, tracking := newTestSession(t)
	session.UpdateInvoiceInput("1234")

	started := make(chan struct{})
	release := make(chan struct{})
	tracking.On("Query", mockAnyContext(), "04", "1234").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(resultWithEvents(3, domain.TrackingEvent{Location: "hub"}), nil).
		Once()

	done := make(chan State, 1)
	go func() {
		state, err := session.Submit(context.Background())
		assert.NoError(t, err)
		done <- state
	}()

	<-started
	snapshot := session.Snapshot()
	assert.Equal(t, StateLoading, snapshot.State)
	assert.True(t, snapshot.InFlight)

	state, err := session.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrQueryInFlight)
	assert.Equal(t, StateLoading, state)

	close(release)
	select {
	case state := <-done:
		assert.Equal(t, StateReady, state)
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not settle")
	}
	assert.False(t, session.Snapshot().InFlight)
}

func TestSessionCloseDiscardsInFlightResult(t *testing.T) {
	session, tracking := newTestSession(t)
	session.UpdateInvoiceInput("1234")

	started := make(chan struct{})
	tracking.On("Query", mockAnyContext(), "04", "1234").
		Run(func(args mock.Arguments) {
			close(started)
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(resultWithEvents(3, domain.TrackingEvent{Location: "late"}), nil).
		Once()

	errs := make(chan error, 1)
	go func() {
		_, err := session.Submit(context.Background())
		errs <- err
	}()

	<-started
	session.Close()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, domain.ErrSessionClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not settle after close")
	}

	assert.Nil(t, session.Snapshot().Result)

	_, err := session.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}
