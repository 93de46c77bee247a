// Package tags expands the whitespace-separated tag strings stored on entries
// into tag records.
package tags

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/jisho-backend/internal/domain"
)

type tagStore interface {
	GetByName(ctx context.Context, name string) (domain.Tag, error)
}

// Service resolves tag names.
type Service struct {
	log   *slog.Logger
	store tagStore
}

// NewService creates a tags Service.
func NewService(logger *slog.Logger, store tagStore) *Service {
	return &Service{
		log:   logger.With("service", "tags"),
		store: store,
	}
}

// Resolution is the outcome of resolving one token of a tag string.
type Resolution struct {
	Name  string
	Tag   domain.Tag
	Found bool
}

// Resolve splits tagString on runs of whitespace and looks every token up
// independently. Unknown names are reported with Found false; only store
// failures are errors.
func (s *Service) Resolve(ctx context.Context, tagString string) ([]Resolution, error) {
	names := strings.Fields(tagString)
	if len(names) == 0 {
		return nil, nil
	}

	out := make([]Resolution, 0, len(names))
	for _, name := range names {
		t, err := s.store.GetByName(ctx, name)
		switch {
		case err == nil:
			out = append(out, Resolution{Name: name, Tag: t, Found: true})
		case errors.Is(err, domain.ErrNotFound):
			s.log.DebugContext(ctx, "unknown tag", slog.String("name", name))
			out = append(out, Resolution{Name: name})
		default:
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
	}
	return out, nil
}

// Known returns the tags of the found resolutions, in order.
func Known(rs []Resolution) []domain.Tag {
	tags := make([]domain.Tag, 0, len(rs))
	for _, r := range rs {
		if r.Found {
			tags = append(tags, r.Tag)
		}
	}
	return tags
}

// ResolveKnown is Resolve followed by Known.
func (s *Service) ResolveKnown(ctx context.Context, tagString string) ([]domain.Tag, error) {
	rs, err := s.Resolve(ctx, tagString)
	if err != nil {
		return nil, err
	}
	return Known(rs), nil
}
