package ports

import (
	"context"

	"github.com/bnema/parceltrack/internal/domain"
)

type ScopeDefaultsRepository interface {
	Load(ctx context.Context) (domain.ScopeDefaults, error)
	Save(ctx context.Context, defaults domain.ScopeDefaults) error
}
