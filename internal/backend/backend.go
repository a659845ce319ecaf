// Package backend opens the workflow.Store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meikuraledutech/workflow"
	"github.com/meikuraledutech/workflow/config"
	"github.com/meikuraledutech/workflow/kv"
	"github.com/meikuraledutech/workflow/mongo"
	"github.com/meikuraledutech/workflow/postgres"
	"github.com/meikuraledutech/workflow/redis"
)

// Open connects to the configured backend and scopes it to the workspace.
// The caller owns the returned Store and must Close it.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (workflow.Store, error) {
	s, err := open(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("store opened", "backend", cfg.Store.Backend, "workspace", cfg.Workspace)
	return kv.NewScoped(s, kv.WorkspacePrefix(cfg.Workspace)), nil
}

func open(ctx context.Context, cfg config.Store, logger *log.Logger) (workflow.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return kv.NewMemory(), nil
	case config.BackendFile:
		return kv.NewFile(cfg.Dir)
	case config.BackendBadger:
		return kv.NewBadger(kv.BadgerOptions{Dir: cfg.Dir, Logger: logger})
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("backend: connect postgres: %w", err)
		}
		s := postgres.New(pool)
		if err := s.CreateSchema(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("backend: postgres schema: %w", err)
		}
		return s, nil
	case config.BackendRedis:
		return redis.New(ctx, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case config.BackendMongo:
		return mongo.New(ctx, mongo.Config{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	default:
		return nil, fmt.Errorf("backend: unknown backend %q", cfg.Backend)
	}
}
