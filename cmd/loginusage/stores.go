package main

import (
	"context"
	"fmt"
	"log/slog"

	corecfg "github.com/aevon-lab/login-usage/internal/core/config"
	"github.com/aevon-lab/login-usage/internal/core/storage"
	"github.com/aevon-lab/login-usage/internal/core/storage/mongodb"
	"github.com/aevon-lab/login-usage/internal/core/storage/postgres"
	"github.com/aevon-lab/login-usage/internal/core/storage/redis"
	"github.com/aevon-lab/login-usage/internal/migrations"
	"github.com/aevon-lab/login-usage/internal/server"
)

// stores holds the opened backends. close releases them in reverse order.
type stores struct {
	db          *postgres.Adapter
	source      storage.SourceLog
	checkpoints storage.CheckpointStore
	health      map[string]server.HealthChecker
	closers     []func() error
}

// openStores connects the bucket database, runs migrations when enabled and
// opens the configured source log and checkpoint store.
func openStores(ctx context.Context, cfg *corecfg.Config) (_ *stores, err error) {
	s := &stores{health: make(map[string]server.HealthChecker)}
	defer func() {
		if err != nil {
			s.close()
		}
	}()

	db, err := postgres.NewAdapter(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	s.db = db
	s.closers = append(s.closers, db.Close)
	s.health["postgres"] = db

	if _, err := migrations.RunMigrations(db.DB(), cfg.Database.AutoMigrate); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := db.Prepare(ctx); err != nil {
		return nil, err
	}

	switch cfg.Source.Type {
	case "mongodb":
		mongoCfg := cfg.Source.MongoDB
		src, err := mongodb.Connect(ctx, mongoCfg.URI, mongoCfg.Database, mongoCfg.Collection, mongoCfg.TimeoutDuration())
		if err != nil {
			return nil, err
		}
		s.source = src
		s.closers = append(s.closers, func() error { return src.Close(context.Background()) })
		s.health["mongodb"] = src
	default:
		src, err := postgres.NewSourceLogAdapter(db.DB(), cfg.Source.Table)
		if err != nil {
			return nil, err
		}
		s.source = src
	}

	switch cfg.Checkpoint.Type {
	case "redis":
		cp, err := redis.NewCheckpointStore(ctx, redis.Options{
			Address:   cfg.Redis.Address,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, err
		}
		s.checkpoints = cp
		s.closers = append(s.closers, cp.Close)
		s.health["redis"] = cp
	default:
		s.checkpoints = postgres.NewCheckpointAdapter(db.DB())
	}

	slog.Info("[Stores] Backends ready",
		"source", cfg.Source.Type,
		"checkpoint", cfg.Checkpoint.Type,
	)
	return s, nil
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			slog.Warn("[Stores] Close failed", "error", err)
		}
	}
	s.closers = nil
}
