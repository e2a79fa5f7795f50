package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	trackingrender "github.com/bnema/parceltrack/internal/adapters/render/tracking"
	tomlrepo "github.com/bnema/parceltrack/internal/adapters/repo/toml"
	chainstore "github.com/bnema/parceltrack/internal/adapters/secrets/chain"
	"github.com/bnema/parceltrack/internal/adapters/sweettracker"
	"github.com/bnema/parceltrack/internal/application"
	"github.com/bnema/parceltrack/internal/config"
	"github.com/bnema/parceltrack/internal/domain"
	"github.com/bnema/parceltrack/internal/logging"
	"github.com/rs/zerolog"
)

var errNoAPIKey = errors.New("no api key configured: run `pt key set --value <key>` or set PT_API_KEY")

type app struct {
	cfg             config.Config
	logger          zerolog.Logger
	service         *application.Service
	httpClient      *http.Client
	resultRenderer  func(application.Snapshot, trackingrender.RenderOptions) (string, error)
	carrierRenderer func([]domain.Carrier, domain.Scope) (string, error)
}

func wireApp() (*app, error) {
	cfg, v, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.Log.Format, cfg.Log.Level, os.Stderr)

	repo, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire scope defaults repository: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(cfg.Secrets, logger)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		cfg:             cfg,
		logger:          logger,
		service:         application.NewService(repo, secretStore),
		httpClient:      &http.Client{Timeout: cfg.API.Timeout},
		resultRenderer:  trackingrender.Render,
		carrierRenderer: trackingrender.RenderCarriers,
	}, nil
}

// trackingClient builds the API client on demand so commands that never hit
// the network work without a key.
func (a *app) trackingClient(ctx context.Context) (*sweettracker.Client, error) {
	key, err := a.service.APIKey(ctx, a.cfg.API.Key)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) || errors.Is(err, application.ErrEmptyAPIKey) {
			return nil, errNoAPIKey
		}
		return nil, err
	}

	return sweettracker.NewClient(a.cfg.API.BaseURL, key,
		sweettracker.WithHTTPClient(a.httpClient),
		sweettracker.WithLogger(a.logger),
	)
}

// newSession starts a tracking session with the stored scope defaults.
func (a *app) newSession(ctx context.Context) (*application.Session, error) {
	client, err := a.trackingClient(ctx)
	if err != nil {
		return nil, err
	}

	defaults, err := a.service.ScopeDefaults(ctx)
	if err != nil {
		return nil, err
	}

	return application.NewSession(ctx, client, client, defaults, application.WithLogger(a.logger))
}
