package application

import "github.com/bnema/parceltrack/internal/domain"

// Snapshot is a read-only copy of a session with the derived display views.
type Snapshot struct {
	State        State
	Scope        domain.Scope
	Carrier      domain.Carrier
	Carriers     []domain.Carrier
	Invoice      string
	ErrorMessage string
	InFlight     bool
	Result       *domain.TrackingResult
	Progress     []domain.StageView
	Timeline     []domain.TimelineEntry
}
