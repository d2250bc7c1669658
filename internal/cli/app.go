package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/club-fixtures/internal/calendar"
	"github.com/pfrederiksen/club-fixtures/internal/club"
	"github.com/pfrederiksen/club-fixtures/internal/config"
	"github.com/pfrederiksen/club-fixtures/internal/crypto"
	"github.com/pfrederiksen/club-fixtures/internal/logger"
	"github.com/pfrederiksen/club-fixtures/internal/metrics"
	"github.com/pfrederiksen/club-fixtures/internal/scraper"
	"github.com/pfrederiksen/club-fixtures/internal/storage"
	"github.com/pfrederiksen/club-fixtures/internal/storage/postgres"
)

// app holds what a command run needs.
type app struct {
	cfg     *config.Config
	files   *storage.Storage
	clubs   club.Store
	scraper *scraper.Scraper
	metrics *metrics.Recorder
	closers []func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagDataDir != "" {
		cfg.Storage.DataDir = flagDataDir
	}

	level := logger.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	files, err := storage.New(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	a := &app{
		cfg:     cfg,
		files:   files,
		metrics: metrics.NewRecorder(),
	}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		if cfg.Storage.DatabaseURL == "" {
			return nil, fmt.Errorf("storage.database_url (or DATABASE_URL) is required for the postgres driver")
		}
		db, err := postgres.Open(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.clubs = postgres.NewClubStore(db)
	default:
		a.clubs = files.ClubStore()
	}

	a.scraper = scraper.New(scraper.Config{
		BaseURL:     cfg.Source.BaseURL,
		Timeout:     cfg.Source.Timeout,
		Policy:      scraper.DefaultPolicy(cfg.Source.Delay),
		MaxAttempts: cfg.Source.Retry.MaxAttempts,
		Backoff:     cfg.Source.Retry.Backoff,
		Location:    cfg.Location(),
		Metrics:     a.metrics,
	})

	logger.Debug("configuration loaded", logger.Fields{
		"config":   flagConfig,
		"data_dir": files.Dir(),
		"driver":   cfg.Storage.Driver,
		"timezone": cfg.Source.Timezone,
	})
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			logger.Warn("closing resource", logger.Fields{"error": err.Error()})
		}
	}
	_ = logger.Default().Sync()
}

// dataPath resolves a relative path against the data directory.
func (a *app) dataPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return a.files.Path(name)
}

// authorizer builds the Google OAuth flow from the configured client secrets.
// Tokens are sealed with calendar.encryption_key.
func (a *app) authorizer() (*calendar.Authorizer, error) {
	if a.cfg.Calendar.CredentialsFile == "" {
		return nil, fmt.Errorf("calendar.credentials_file is not set")
	}
	path, err := storage.ExpandHome(a.cfg.Calendar.CredentialsFile)
	if err != nil {
		return nil, err
	}
	creds, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading client credentials: %w", err)
	}

	sealer, err := crypto.NewSealer(a.cfg.Calendar.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("calendar.encryption_key (or CLUB_FIXTURES_ENCRYPTION_KEY): %w", err)
	}
	return calendar.NewAuthorizer(creds, a.cfg.Calendar.RedirectURL, calendar.NewSealedTokenStore(a.files, sealer))
}

// run wraps a command body with app setup, teardown and, with --verbose, a
// metrics dump on stderr.
func run(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		err = fn(cmd, a, args)
		if flagVerbose {
			if werr := writeMetrics(cmd.ErrOrStderr(), a.metrics); werr != nil {
				logger.Warn("writing metrics", logger.Fields{"error": werr.Error()})
			}
		}
		return err
	}
}
