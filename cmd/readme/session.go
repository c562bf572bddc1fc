package main

import (
	"fmt"

	"github.com/nikbrunner/readme/internal/config"
	"github.com/nikbrunner/readme/internal/feed"
	"github.com/nikbrunner/readme/internal/logger"
	"github.com/nikbrunner/readme/internal/logic"
	"github.com/nikbrunner/readme/internal/reader"
	"github.com/nikbrunner/readme/internal/storage"
)

// session is everything a subcommand needs, wired from the config.
type session struct {
	cfg     config.Config
	log     logger.Logger
	backend *storage.Backend
	reader  *reader.Service
	logic   *logic.Logic
}

func openSession(configDir string) (*session, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(cfg.DataDir, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	log.Infof("readme starting with config from %s", cfg.Dir)
	log.Info("storage opened", logger.String("kind", backend.Kind), logger.String("dir", cfg.DataDir),
		logger.Duration("fetch_timeout", cfg.FetchTimeout))

	fetcher := feed.NewFetcher(feed.Options{
		Timeout: cfg.FetchTimeout,
		Retries: cfg.FetchRetries,
		Logger:  log,
	})
	articles := reader.New(reader.Options{
		Timeout:   cfg.FetchTimeout,
		CacheSize: cfg.ReaderCacheSize,
		Store:     storage.NewArticleStore(cfg.ArticlesDir()),
		Logger:    log,
	})

	return &session{
		cfg:     cfg,
		log:     log,
		backend: backend,
		reader:  articles,
		logic: logic.New(logic.Params{
			Backend:   backend,
			PrefsPath: cfg.PrefsPath(),
			Feeds:     fetcher,
			Articles:  articles,
			Logger:    log,
		}),
	}, nil
}

func (s *session) Close() {
	if err := s.backend.Close(); err != nil {
		s.log.Errorf("close storage: %v", err)
	}
	_ = s.log.Sync()
}
