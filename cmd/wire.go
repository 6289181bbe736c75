package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/karu-dev/deckhand/internal/adapters/deckapi"
	handadapter "github.com/karu-dev/deckhand/internal/adapters/render/hand"
	tomlrepo "github.com/karu-dev/deckhand/internal/adapters/repo/toml"
	"github.com/karu-dev/deckhand/internal/application"
	"github.com/karu-dev/deckhand/internal/domain"
	"github.com/karu-dev/deckhand/internal/ports"
)

type app struct {
	sessions ports.SessionRepository
	client   deckapi.Client
	renderer func(domain.SessionState, handadapter.RenderOptions) (string, error)
	logger   *slog.Logger
	logLevel *slog.LevelVar
	now      func() time.Time
}

func wireApp() (*app, error) {
	sessions, err := tomlrepo.NewRepository(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	timeout, err := time.ParseDuration(envOrDefault("DECKHAND_API_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("parse api timeout: %w", err)
	}

	return &app{
		sessions: sessions,
		client: deckapi.Client{
			BaseURL:        envOrDefault("DECKHAND_API_BASE_URL", deckapi.DefaultBaseURL),
			RequestTimeout: timeout,
			Logger:         logger,
		},
		renderer: handadapter.Render,
		logger:   logger,
		logLevel: logLevel,
		now:      time.Now,
	}, nil
}

func (a *app) setVerbose(verbose bool) {
	if verbose {
		a.logLevel.Set(slog.LevelDebug)
	}
}

// manager builds a session manager seeded with the persisted snapshot,
// when one exists.
func (a *app) manager(ctx context.Context) (*application.SessionManager, error) {
	opts := []application.Option{application.WithLogger(a.logger)}

	state, err := a.sessions.Load(ctx)
	switch {
	case err == nil:
		opts = append(opts, application.WithInitialState(state))
	case errors.Is(err, domain.ErrSessionNotFound):
	default:
		return nil, fmt.Errorf("load saved session: %w", err)
	}

	return application.NewSessionManager(a.client, opts...)
}

// persist saves the manager's snapshot; state errors from a failed
// operation are not persisted, only descriptor and cards.
func (a *app) persist(ctx context.Context, manager *application.SessionManager) error {
	if err := a.sessions.Save(ctx, manager.Snapshot()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
