package ports

import (
	"context"

	"github.com/bnema/parceltrack/internal/domain"
)

// TrackingSource looks up a single shipment. Rejected requests are reported as
// *domain.RequestError, transport failures as *domain.UnavailableError.
type TrackingSource interface {
	Query(ctx context.Context, carrierCode, invoiceNo string) (domain.TrackingResult, error)
}
