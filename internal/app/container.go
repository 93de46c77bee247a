package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/jisho-backend/internal/adapter/postgres"
	"github.com/heartmarshall/jisho-backend/internal/adapter/postgres/dictionary"
	"github.com/heartmarshall/jisho-backend/internal/adapter/postgres/entry"
	"github.com/heartmarshall/jisho-backend/internal/adapter/postgres/tag"
	"github.com/heartmarshall/jisho-backend/internal/app/importer"
	"github.com/heartmarshall/jisho-backend/internal/config"
	"github.com/heartmarshall/jisho-backend/internal/deinflect"
	"github.com/heartmarshall/jisho-backend/internal/service/dictionaries"
	"github.com/heartmarshall/jisho-backend/internal/service/lookup"
	"github.com/heartmarshall/jisho-backend/internal/service/tags"
)

// Container holds the wired services shared by the server and the CLIs.
type Container struct {
	Pool  *pgxpool.Pool
	Rules *deinflect.Table

	Lookup       *lookup.Service
	Tags         *tags.Service
	Dictionaries *dictionaries.Service
	Importer     *importer.Importer
}

// NewContainer connects to the database, optionally migrates it, and builds
// every service. Close releases the pool.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	rules, err := LoadRules(cfg.Deinflect)
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		n, err := postgres.Migrate(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.InfoContext(ctx, "database migrated", slog.Int("applied", n))
	}

	return newContainer(pool, rules, cfg, logger), nil
}

func newContainer(pool *pgxpool.Pool, rules *deinflect.Table, cfg *config.Config, logger *slog.Logger) *Container {
	entries := entry.New(pool)
	tagRepo := tag.New(pool)
	dictRepo := dictionary.New(pool)
	txm := postgres.NewTxManager(pool)

	return &Container{
		Pool:  pool,
		Rules: rules,
		Lookup: lookup.NewService(logger, entries, rules, lookup.Options{
			Normalizer: cfg.Kana.Normalizer(),
			MaxDepth:   cfg.Deinflect.MaxDepth,
		}),
		Tags:         tags.NewService(logger, tagRepo),
		Dictionaries: dictionaries.NewService(logger, dictRepo, entries),
		Importer:     importer.New(logger, txm, dictRepo, entries, tagRepo, cfg.Importer.BatchSize),
	}
}

// Close releases the database pool.
func (c *Container) Close() {
	c.Pool.Close()
}

// LoadRules returns the rule table named by cfg, or the built-in one when no
// path is configured.
func LoadRules(cfg config.DeinflectConfig) (*deinflect.Table, error) {
	if cfg.RulesPath == "" {
		return deinflect.Default(), nil
	}
	t, err := deinflect.LoadFile(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load deinflection rules: %w", err)
	}
	return t, nil
}
