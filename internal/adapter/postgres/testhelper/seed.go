package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/jisho-backend/internal/domain"
)

// UniqueID returns prefix with a short random suffix, for data that must not
// collide between parallel tests sharing one database. The result is already
// in domain.NormalizeDictionaryID form when prefix is.
func UniqueID(prefix string) string {
	return prefix + "_" + uuid.New().String()[:8]
}

// SeedDictionary inserts a dictionary with a unique ID.
func SeedDictionary(t *testing.T, pool *pgxpool.Pool) domain.Dictionary {
	t.Helper()

	d := domain.Dictionary{
		ID:         UniqueID("dict"),
		Title:      "Test Dictionary",
		Revision:   "1",
		ImportedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO dictionaries (id, title, revision, bilingual, imported_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.Title, d.Revision, d.Bilingual, d.ImportedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDictionary: %v", err)
	}
	return d
}

// SeedEntry inserts one entry into dictionaryID.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, dictionaryID, expression, reading string, score int) domain.Entry {
	t.Helper()

	e := domain.Entry{
		ID:           uuid.New(),
		DictionaryID: dictionaryID,
		Expression:   expression,
		Reading:      reading,
		Glossary:     []string{"gloss of " + expression},
		Score:        score,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO entries (id, dictionary_id, expression, reading, glossary, score, sequence,
		                      definition_tags, term_tags, rules)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.DictionaryID, e.Expression, e.Reading, e.Glossary, e.Score, e.Sequence,
		e.DefinitionTags, e.TermTags, e.Rules,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry: %v", err)
	}
	return e
}
