package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mmcdole/edtag/internal/adapter"
	"github.com/mmcdole/edtag/internal/catalog"
	"github.com/mmcdole/edtag/internal/domain"
	"github.com/mmcdole/edtag/internal/navigator"
	"github.com/mmcdole/edtag/internal/store"
)

// session is a loaded catalog bound to its annotation store
type session struct {
	cfg     *adapter.Config
	logger  *slog.Logger
	nav     *navigator.Navigator
	backing domain.AnnotationStore
	logFile io.Closer
}

// loadConfig reads configuration and fails if the catalog location is unset
func loadConfig(opts *rootOptions) (*adapter.Config, error) {
	cfg, err := adapter.LoadConfig(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openSession loads the catalog and the recorded EDs
func openSession(ctx context.Context, cfg *adapter.Config) (*session, error) {
	s := &session{cfg: cfg}

	logger, logFile, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	logger, sessionID := adapter.WithSession(logger)
	slog.SetDefault(logger)
	s.logger = logger
	s.logFile = logFile

	logger.Info("starting edtag", "version", Version, "session", sessionID)

	if !cfg.IsConfigured() {
		s.Close()
		return nil, errors.New("catalog.data_dir is not set; run `edtag setup` first")
	}

	loader := catalog.NewLoader(os.DirFS(cfg.Catalog.DataDir), cfg.Catalog.FilmsGlob, cfg.Catalog.RangesCSV, logger)
	images, err := loader.Load()
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	backing, err := store.Open(ctx, cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		s.Close()
		if errors.Is(err, domain.ErrLocked) {
			return nil, fmt.Errorf("%s is open in another edtag session", cfg.Storage.Path)
		}
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	s.backing = backing

	nav, err := navigator.New(ctx, backing, images, logger)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to load annotations: %w", err)
	}
	nav.SetSeedOrder(navigator.ParseSeedOrder(cfg.Annotate.SeedOrder))
	s.nav = nav

	return s, nil
}

// Close releases the store and the log file
func (s *session) Close() {
	if s.backing != nil {
		if err := s.backing.Close(); err != nil {
			s.logger.Error("failed to close store", "error", err)
		}
	}
	s.logger.Info("shutting down")
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}
