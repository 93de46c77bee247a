// Package lookup resolves a typed word to dictionary entries. It expands the
// word into candidate dictionary forms, queries the store for each one by
// reading or by surface form, and orders the merged result.
package lookup

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/jisho-backend/internal/deinflect"
	"github.com/heartmarshall/jisho-backend/internal/domain"
	"github.com/heartmarshall/jisho-backend/internal/kana"
)

type entryStore interface {
	SearchByReading(ctx context.Context, reading string, disabled domain.DictionarySet) ([]domain.Entry, error)
	SearchBySurfaceForm(ctx context.Context, form string, disabled domain.DictionarySet) ([]domain.Entry, error)
}

// Options tune a Service. The zero value routes and converts exactly like the
// kana package functions and uses deinflect.MaxDepth.
type Options struct {
	Normalizer kana.Normalizer
	MaxDepth   int
}

// Service implements word lookup. It holds no per-call state and is safe for
// concurrent use.
type Service struct {
	log      *slog.Logger
	entries  entryStore
	rules    *deinflect.Table
	kana     kana.Normalizer
	maxDepth int
}

// NewService creates a lookup Service. rules is shared read-only between calls.
func NewService(
	logger *slog.Logger,
	entries entryStore,
	rules *deinflect.Table,
	opts Options,
) *Service {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = deinflect.MaxDepth
	}
	return &Service{
		log:      logger.With("service", "lookup"),
		entries:  entries,
		rules:    rules,
		kana:     opts.Normalizer,
		maxDepth: opts.MaxDepth,
	}
}
