package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/parceltrack/internal/adapters/secrets/file"
	passstore "github.com/bnema/parceltrack/internal/adapters/secrets/pass"
	"github.com/bnema/parceltrack/internal/ports"
	"github.com/rs/zerolog"
)

// Store tries primary first and falls back to the second backend on any
// failure other than cancellation.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	logger   zerolog.Logger
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, logger zerolog.Logger) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback, logger: logger}, nil
}

func NewPassFirstWithFileFallback(fileRoot string, logger zerolog.Logger) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot), logger)
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil || shouldSkipFallback(err) {
		return err
	}
	s.logFallback("put", key, err)

	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil || shouldSkipFallback(err) {
		return value, err
	}
	s.logFallback("get", key, err)

	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr != nil {
		return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
	}

	return fallbackValue, nil
}

// Delete removes the key from both backends so a stale copy cannot shadow a
// later Put.
func (s *Store) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	if shouldSkipFallback(primaryErr) {
		return primaryErr
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if primaryErr != nil && fallbackErr != nil {
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", primaryErr, fallbackErr)
	}

	return nil
}

func (s *Store) logFallback(op, key string, err error) {
	s.logger.Debug().Str("op", op).Str("key", key).Err(err).Msg("secret store falling back")
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
