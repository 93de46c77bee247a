// Package entry implements the dictionary entry repository using PostgreSQL.
// Queries are built with squirrel.
package entry

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/jisho-backend/internal/adapter/postgres"
	"github.com/heartmarshall/jisho-backend/internal/domain"
)

const table = "entries"

var columns = []string{
	"id", "dictionary_id", "expression", "reading", "glossary",
	"score", "sequence", "definition_tags", "term_tags", "rules",
}

// naturalOrder mirrors domain.CompareEntries. Text columns use the C
// collation so they compare bytewise, as Go strings do.
var naturalOrder = []string{
	"score DESC",
	`dictionary_id COLLATE "C"`,
	`expression COLLATE "C"`,
	`reading COLLATE "C"`,
	"id",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides entry persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new entry repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// SearchByReading returns entries whose reading equals reading exactly,
// excluding dictionaries in disabled. No match yields an empty slice.
func (r *Repo) SearchByReading(ctx context.Context, reading string, disabled domain.DictionarySet) ([]domain.Entry, error) {
	entries, err := r.search(ctx, squirrel.Eq{"reading": reading}, disabled)
	if err != nil {
		return nil, fmt.Errorf("search entries by reading: %w", err)
	}
	return entries, nil
}

// SearchBySurfaceForm returns entries whose expression equals form exactly,
// excluding dictionaries in disabled. No match yields an empty slice.
func (r *Repo) SearchBySurfaceForm(ctx context.Context, form string, disabled domain.DictionarySet) ([]domain.Entry, error) {
	entries, err := r.search(ctx, squirrel.Eq{"expression": form}, disabled)
	if err != nil {
		return nil, fmt.Errorf("search entries by surface form: %w", err)
	}
	return entries, nil
}

// CountByDictionary returns the number of entries stored for dictionaryID.
func (r *Repo) CountByDictionary(ctx context.Context, dictionaryID string) (int, error) {
	query, args, err := psql.Select("count(*)").From(table).
		Where(squirrel.Eq{"dictionary_id": dictionaryID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "entries of dictionary", dictionaryID)
	}
	return n, nil
}

func (r *Repo) search(ctx context.Context, match squirrel.Eq, disabled domain.DictionarySet) ([]domain.Entry, error) {
	q := psql.Select(columns...).From(table).Where(match)
	if len(disabled) > 0 {
		q = q.Where(squirrel.NotEq{"dictionary_id": disabled.Slice()})
	}

	query, args, err := q.OrderBy(naturalOrder...).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanEntry)
}

func scanEntry(row pgx.CollectableRow) (domain.Entry, error) {
	var e domain.Entry
	err := row.Scan(
		&e.ID, &e.DictionaryID, &e.Expression, &e.Reading, &e.Glossary,
		&e.Score, &e.Sequence, &e.DefinitionTags, &e.TermTags, &e.Rules,
	)
	return e, err
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// BulkInsert inserts entries with one pgx.Batch round trip and returns the
// number of inserted rows. Entries with an existing ID are skipped.
func (r *Repo) BulkInsert(ctx context.Context, entries []domain.Entry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	query, _, err := psql.Insert(table).Columns(columns...).
		Values(make([]any, len(columns))...).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		glossary := e.Glossary
		if glossary == nil {
			glossary = []string{}
		}
		batch.Queue(query,
			e.ID, e.DictionaryID, e.Expression, e.Reading, glossary,
			e.Score, e.Sequence, e.DefinitionTags, e.TermTags, e.Rules,
		)
	}

	results := postgres.QuerierFromCtx(ctx, r.db).SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for i := range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(err, "entry", entries[i].ID.String())
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}
