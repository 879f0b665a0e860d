// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tejzpr/moodlog-mcp/internal/analysis"
	"github.com/tejzpr/moodlog-mcp/internal/config"
	"github.com/tejzpr/moodlog-mcp/internal/database"
	"github.com/tejzpr/moodlog-mcp/internal/logging"
	"github.com/tejzpr/moodlog-mcp/internal/records"
	"github.com/tejzpr/moodlog-mcp/internal/seed"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the wired dependencies shared by every command
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	journal *records.Journal

	defaultRange analysis.Range
}

// seedMode decides whether a journal gets a synthetic history generator
type seedMode int

const (
	seedFromConfig seedMode = iota // only when seed.enabled is set
	seedAlways
)

// loadConfig reads the config file and layers flag overrides on top.
// A missing default file falls back to built-in defaults.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	applyCLIOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyCLIOverrides applies command-line flag overrides to configuration
func applyCLIOverrides(cfg *config.Config) {
	if dbType != "" {
		cfg.Database.Type = dbType
	}
	if dbPath != "" {
		cfg.Database.SQLitePath = dbPath
	}
	if dbDSN != "" {
		cfg.Database.PostgresDSN = dbDSN
	}
	if timezone != "" {
		cfg.Journal.Timezone = timezone
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if port > 0 {
		cfg.Server.Port = port
	}
}

// newApp connects to the database and opens the journal.
// A journal with a generator backfills on open when its history is thin.
func newApp(ctx context.Context, mode seedMode) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, defaultRange: analysis.Range(cfg.Journal.DefaultRange)}
	if err := a.open(ctx, mode); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) open(ctx context.Context, mode seedMode) error {
	db, err := database.Connect(&database.Config{
		Type:        a.cfg.Database.Type,
		SQLitePath:  a.cfg.Database.SQLitePath,
		PostgresDSN: a.cfg.Database.PostgresDSN,
		LogLevel:    logging.GormLevel(a.cfg.Logging.Level),
	})
	if err != nil {
		return err
	}
	a.db = db
	a.logger.Debug("connected to database", zap.String("type", a.cfg.Database.Type))

	if err := database.Migrate(db); err != nil {
		return err
	}

	loc, err := a.cfg.Journal.Location()
	if err != nil {
		return err
	}

	opts := []records.Option{
		records.WithLogger(a.logger),
		records.WithLocation(loc),
	}
	if mode == seedAlways || (mode == seedFromConfig && a.cfg.Seed.Enabled) {
		gen, err := a.generator(loc)
		if err != nil {
			return err
		}
		opts = append(opts, records.WithBackfiller(gen))
	}

	a.journal = records.New(database.NewCollectionStore(db), opts...)
	if err := a.journal.Open(ctx); err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	return nil
}

func (a *app) generator(loc *time.Location) (*seed.Generator, error) {
	gen, err := seed.NewGenerator(seed.Options{
		Years:          a.cfg.Seed.Years,
		MinRecords:     a.cfg.Seed.MinRecords,
		MinHistoryDays: a.cfg.Seed.MinHistoryDays,
		RandomSeed:     a.cfg.Seed.RandomSeed,
		Location:       loc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create seed generator: %w", err)
	}
	return gen, nil
}

// Close releases the database and flushes the logger
func (a *app) Close() {
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
