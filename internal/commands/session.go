package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ruminaider/devlinks/internal/api"
	"github.com/ruminaider/devlinks/internal/avatar"
	"github.com/ruminaider/devlinks/internal/config"
	"github.com/ruminaider/devlinks/internal/platforms"
	"github.com/ruminaider/devlinks/internal/profile"
	dsync "github.com/ruminaider/devlinks/internal/sync"
)

// Session is one editing session: the document fetched at open time plus
// everything needed to change and save it.
type Session struct {
	Config   config.Config
	Client   *api.Client
	Registry *platforms.Registry
	Manager  *dsync.Manager
	Ingestor *avatar.Ingestor
	Doc      *profile.Document
	Logger   *slog.Logger
}

// Dependencies builds the client, catalog and ingestor for cfg without
// contacting the server.
func Dependencies(cfg config.Config, logger *slog.Logger) (*api.Client, *platforms.Registry, *avatar.Ingestor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	reg, err := platforms.LoadFile(cfg.PlatformsFile)
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []api.Option{api.WithTimeout(cfg.Timeout), api.WithLogger(logger)}
	if cfg.Token != "" {
		opts = append(opts, api.WithToken(cfg.Token))
	}
	client, err := api.NewClient(cfg.Server, opts...)
	if err != nil {
		return nil, nil, nil, err
	}

	return client, reg, avatar.NewIngestor(avatar.WithLogger(logger)), nil
}

// OpenSession validates cfg and loads the stored profile of cfg.Email.
func OpenSession(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, reg, ingestor, err := Dependencies(cfg, logger)
	if err != nil {
		return nil, err
	}

	mgr := dsync.NewManager(client, dsync.WithValidator(reg), dsync.WithLogger(logger))
	doc, err := mgr.Open(ctx, cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("opening session for %s: %w", cfg.Email, err)
	}
	logger.Debug("session opened", "email", cfg.Email, "links", doc.LinkCount())

	return &Session{
		Config:   cfg,
		Client:   client,
		Registry: reg,
		Manager:  mgr,
		Ingestor: ingestor,
		Doc:      doc,
		Logger:   logger,
	}, nil
}

// SaveProfile saves the profile scalars and avatar.
func (s *Session) SaveProfile(ctx context.Context) dsync.SaveResult {
	return s.Manager.SaveProfile(ctx, s.Doc)
}

// SaveLinks saves the full link collection.
func (s *Session) SaveLinks(ctx context.Context) dsync.SaveResult {
	return s.Manager.SaveLinks(ctx, s.Doc)
}
