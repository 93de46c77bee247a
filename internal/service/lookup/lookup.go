package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/heartmarshall/jisho-backend/internal/deinflect"
	"github.com/heartmarshall/jisho-backend/internal/domain"
	"github.com/heartmarshall/jisho-backend/internal/kana"
)

// Lookup returns the entries matching query or any of its dictionary forms.
//
// Variants are searched one after another. A kana variant is searched by its
// hiragana reading first and by its surface form only when that finds
// nothing; any other variant is searched by surface form. Results of all
// variants are concatenated without deduplication and sorted by
// domain.CompareEntries, reversed when settings.BilingualFirst is set.
//
// An empty result is not an error. Store errors are returned as is, wrapped.
func (s *Service) Lookup(ctx context.Context, query string, settings domain.LookupSettings) ([]domain.Entry, error) {
	return s.Search(ctx, s.Variants(query, settings), settings)
}

// Search runs the store queries and the final sort of Lookup for variants
// that were already computed with Variants.
func (s *Service) Search(ctx context.Context, variants []string, settings domain.LookupSettings) ([]domain.Entry, error) {
	var entries []domain.Entry
	for _, v := range variants {
		found, err := s.searchVariant(ctx, v, settings.DisabledDictionaries)
		if err != nil {
			return nil, err
		}
		entries = append(entries, found...)
	}

	slices.SortStableFunc(entries, entryOrder(settings.BilingualFirst))

	s.log.DebugContext(ctx, "lookup",
		slog.Any("variants", variants),
		slog.Int("entries", len(entries)),
	)

	return entries, nil
}

// Variants returns the terms Lookup searches for: every deinflection of the
// trimmed query when deconjugation is on, otherwise the query as given.
func (s *Service) Variants(query string, settings domain.LookupSettings) []string {
	var variants []string
	if settings.ShouldDeconjugate {
		variants = deinflect.Terms(s.Deinflect(query))
	} else {
		variants = []string{query}
	}

	if len(variants) == 0 {
		variants = []string{query}
	}
	return variants
}

// Deinflect returns the deinflections of the trimmed query.
func (s *Service) Deinflect(query string) []deinflect.Deinflection {
	return deinflect.DeinflectDepth(strings.TrimSpace(query), s.rules, s.maxDepth)
}

func (s *Service) searchVariant(ctx context.Context, variant string, disabled domain.DictionarySet) ([]domain.Entry, error) {
	if !s.kana.IsKana(variant) {
		found, err := s.entries.SearchBySurfaceForm(ctx, variant, disabled)
		if err != nil {
			return nil, fmt.Errorf("search surface form %q: %w", variant, err)
		}
		return found, nil
	}

	reading := variant
	if !kana.AllHiragana(variant) {
		reading = s.kana.ToHiragana(variant)
	}

	found, err := s.entries.SearchByReading(ctx, reading, disabled)
	if err != nil {
		return nil, fmt.Errorf("search reading %q: %w", reading, err)
	}
	if len(found) > 0 {
		return found, nil
	}

	found, err = s.entries.SearchBySurfaceForm(ctx, variant, disabled)
	if err != nil {
		return nil, fmt.Errorf("search surface form %q: %w", variant, err)
	}
	return found, nil
}

// entryOrder picks the comparator for the final sort.
func entryOrder(bilingualFirst bool) func(a, b domain.Entry) int {
	if bilingualFirst {
		return func(a, b domain.Entry) int { return domain.CompareEntries(b, a) }
	}
	return domain.CompareEntries
}
