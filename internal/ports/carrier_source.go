package ports

import (
	"context"

	"github.com/bnema/parceltrack/internal/domain"
)

// CarrierSource returns the full carrier directory. Transport failures are
// reported as *domain.UnavailableError.
type CarrierSource interface {
	FetchAll(ctx context.Context) ([]domain.Carrier, error)
}
