// Package tag implements the tag repository using PostgreSQL.
package tag

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/jisho-backend/internal/adapter/postgres"
	"github.com/heartmarshall/jisho-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const upsertSQL = `
INSERT INTO tags (dictionary_id, name, category, sort_order, notes, score)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (dictionary_id, name) DO UPDATE
SET category = EXCLUDED.category,
    sort_order = EXCLUDED.sort_order,
    notes = EXCLUDED.notes,
    score = EXCLUDED.score`

// Repo provides tag persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new tag repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByName returns the tag called name. Tags are stored per dictionary; when
// several dictionaries define the same name the one with the lowest order
// wins, ties broken by dictionary ID. Returns domain.ErrNotFound if no
// dictionary defines it.
func (r *Repo) GetByName(ctx context.Context, name string) (domain.Tag, error) {
	query, args, err := psql.
		Select("name", "category", "sort_order", "notes", "score").
		From("tags").
		Where(squirrel.Eq{"name": name}).
		OrderBy("sort_order", "dictionary_id").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.Tag{}, fmt.Errorf("build query: %w", err)
	}

	var t domain.Tag
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).
		Scan(&t.Name, &t.Category, &t.Order, &t.Notes, &t.Score)
	if err != nil {
		return domain.Tag{}, postgres.MapError(err, "tag", name)
	}
	return t, nil
}

// BulkUpsert inserts or replaces the tags of dictionaryID and returns the
// number of affected rows.
func (r *Repo) BulkUpsert(ctx context.Context, dictionaryID string, tags []domain.Tag) (int, error) {
	if len(tags) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, t := range tags {
		batch.Queue(upsertSQL, dictionaryID, t.Name, t.Category, t.Order, t.Notes, t.Score)
	}

	results := postgres.QuerierFromCtx(ctx, r.db).SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for i := range batch.Len() {
		ct, err := results.Exec()
		if err != nil {
			return affected, postgres.MapError(err, "tag", tags[i].Name)
		}
		affected += int(ct.RowsAffected())
	}
	return affected, nil
}
