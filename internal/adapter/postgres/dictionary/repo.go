// Package dictionary implements the dictionary repository using PostgreSQL.
package dictionary

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/jisho-backend/internal/adapter/postgres"
	"github.com/heartmarshall/jisho-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{"id", "title", "revision", "bilingual", "imported_at"}

// Repo provides dictionary persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new dictionary repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Upsert inserts d or replaces the stored metadata of the dictionary with the
// same ID. ImportedAt is set by the database.
func (r *Repo) Upsert(ctx context.Context, d domain.Dictionary) (domain.Dictionary, error) {
	query, args, err := psql.Insert("dictionaries").
		Columns("id", "title", "revision", "bilingual").
		Values(d.ID, d.Title, d.Revision, d.Bilingual).
		Suffix(`ON CONFLICT (id) DO UPDATE
SET title = EXCLUDED.title, revision = EXCLUDED.revision,
    bilingual = EXCLUDED.bilingual, imported_at = now()`).
		Suffix("RETURNING id, title, revision, bilingual, imported_at").
		ToSql()
	if err != nil {
		return domain.Dictionary{}, fmt.Errorf("build upsert: %w", err)
	}

	out, err := scanDictionary(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Dictionary{}, postgres.MapError(err, "dictionary", d.ID)
	}
	return out, nil
}

// GetByID returns the dictionary with the given ID or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Dictionary, error) {
	query, args, err := psql.Select(columns...).From("dictionaries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Dictionary{}, fmt.Errorf("build query: %w", err)
	}

	d, err := scanDictionary(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return domain.Dictionary{}, postgres.MapError(err, "dictionary", id)
	}
	return d, nil
}

// List returns all dictionaries ordered by ID.
func (r *Repo) List(ctx context.Context) ([]domain.Dictionary, error) {
	query, args, err := psql.Select(columns...).From("dictionaries").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dictionaries: %w", err)
	}

	dicts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Dictionary, error) {
		return scanDictionary(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list dictionaries: %w", err)
	}
	return dicts, nil
}

// Delete removes the dictionary with its entries and tags. Returns
// domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("dictionaries").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "dictionary", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("dictionary %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanDictionary(row pgx.Row) (domain.Dictionary, error) {
	var d domain.Dictionary
	err := row.Scan(&d.ID, &d.Title, &d.Revision, &d.Bilingual, &d.ImportedAt)
	return d, err
}
