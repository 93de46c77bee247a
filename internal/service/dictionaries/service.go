// Package dictionaries lists and removes imported dictionaries.
package dictionaries

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/jisho-backend/internal/domain"
)

type dictionaryStore interface {
	List(ctx context.Context) ([]domain.Dictionary, error)
	Delete(ctx context.Context, id string) error
}

type entryCounter interface {
	CountByDictionary(ctx context.Context, dictionaryID string) (int, error)
}

// Service manages the set of imported dictionaries.
type Service struct {
	log     *slog.Logger
	dicts   dictionaryStore
	entries entryCounter
}

// NewService creates a dictionaries Service.
func NewService(logger *slog.Logger, dicts dictionaryStore, entries entryCounter) *Service {
	return &Service{
		log:     logger.With("service", "dictionaries"),
		dicts:   dicts,
		entries: entries,
	}
}

// Summary is a dictionary together with its entry count.
type Summary struct {
	domain.Dictionary
	Entries int
}

// List returns every imported dictionary ordered by ID.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	dicts, err := s.dicts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dictionaries: %w", err)
	}

	out := make([]Summary, 0, len(dicts))
	for _, d := range dicts {
		n, err := s.entries.CountByDictionary(ctx, d.ID)
		if err != nil {
			return nil, fmt.Errorf("count entries of %q: %w", d.ID, err)
		}
		out = append(out, Summary{Dictionary: d, Entries: n})
	}
	return out, nil
}

// Delete removes a dictionary with its entries and tags. The ID is
// normalized first, so "JMdict-Extra" deletes "jmdict_extra".
func (s *Service) Delete(ctx context.Context, id string) error {
	norm := domain.NormalizeDictionaryID(id)
	if norm == "" {
		return domain.NewValidationError("id", "required")
	}

	if err := s.dicts.Delete(ctx, norm); err != nil {
		return fmt.Errorf("delete dictionary %q: %w", norm, err)
	}

	s.log.InfoContext(ctx, "dictionary deleted", slog.String("dictionary_id", norm))
	return nil
}
