package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/parceltrack/internal/domain"
	"github.com/bnema/parceltrack/internal/ports"
)

// APIKeySecretRef is where the tracking service key lives in the secret store.
const APIKeySecretRef = "parceltrack/sweettracker/api_key"

var ErrEmptyAPIKey = errors.New("api key is empty")

// Service holds the settings operations that surround a tracking session.
type Service struct {
	defaults ports.ScopeDefaultsRepository
	store    ports.SecretStore
}

func NewService(defaults ports.ScopeDefaultsRepository, store ports.SecretStore) *Service {
	return &Service{
		defaults: defaults,
		store:    store,
	}
}

func (s *Service) ScopeDefaults(ctx context.Context) (domain.ScopeDefaults, error) {
	defaults, err := s.defaults.Load(ctx)
	if err != nil {
		return domain.ScopeDefaults{}, fmt.Errorf("load scope defaults: %w", err)
	}

	return defaults, nil
}

// SetScopeDefault changes the carrier preselected for scope. When name is
// empty it is looked up in the carrier directory.
func (s *Service) SetScopeDefault(ctx context.Context, carriers ports.CarrierSource, scope domain.Scope, code, name string) (domain.ScopeDefaults, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.ScopeDefaults{}, errors.New("carrier code is required")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		if carriers == nil {
			return domain.ScopeDefaults{}, errors.New("carrier name is required")
		}
		directory, err := carriers.FetchAll(ctx)
		if err != nil {
			return domain.ScopeDefaults{}, fmt.Errorf("resolve carrier name: %w", err)
		}
		carrier, ok := domain.FindByCode(domain.FilterByScope(directory, scope), code)
		if !ok {
			return domain.ScopeDefaults{}, fmt.Errorf("carrier %q is not a %s carrier", code, scope)
		}
		name = carrier.Name
	}

	current, err := s.ScopeDefaults(ctx)
	if err != nil {
		return domain.ScopeDefaults{}, err
	}

	updated, err := current.With(scope, domain.Carrier{Code: code, Name: name})
	if err != nil {
		return domain.ScopeDefaults{}, err
	}

	if err := s.defaults.Save(ctx, updated); err != nil {
		return domain.ScopeDefaults{}, fmt.Errorf("save scope defaults: %w", err)
	}

	return updated, nil
}

func (s *Service) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyAPIKey
	}

	if err := s.store.Put(ctx, APIKeySecretRef, key); err != nil {
		return fmt.Errorf("store api key: %w", err)
	}

	return nil
}

func (s *Service) RemoveAPIKey(ctx context.Context) error {
	if err := s.store.Delete(ctx, APIKeySecretRef); err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}

	return nil
}

// APIKey returns override when set, otherwise the stored key.
func (s *Service) APIKey(ctx context.Context, override string) (string, error) {
	if key := strings.TrimSpace(override); key != "" {
		return key, nil
	}

	key, err := s.store.Get(ctx, APIKeySecretRef)
	if err != nil {
		return "", fmt.Errorf("load api key: %w", err)
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyAPIKey
	}

	return key, nil
}
