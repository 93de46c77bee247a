package entry_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/jisho-backend/internal/adapter/postgres/entry"
	"github.com/heartmarshall/jisho-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/jisho-backend/internal/domain"
)

var entryColumns = []string{
	"id", "dictionary_id", "expression", "reading", "glossary",
	"score", "sequence", "definition_tags", "term_tags", "rules",
}

func newMockRepo(t *testing.T) (*entry.Repo, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return entry.New(mock), mock
}

// ---------------------------------------------------------------------------
// Unit (pgxmock)
// ---------------------------------------------------------------------------

func TestRepo_SearchByReading(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name     string
		disabled domain.DictionarySet
		setup    func(mock pgxmock.PgxPoolIface)
		wantLen  int
		wantErr  bool
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(entryColumns).
					AddRow(id, "jmdict", "学校", "がっこう", []string{"school"}, 5, 1206720, "n", "P", "")
				mock.ExpectQuery(`FROM entries WHERE reading = \$1 ORDER BY score DESC, dictionary_id COLLATE "C", expression COLLATE "C", reading COLLATE "C", id`).
					WithArgs("がっこう").
					WillReturnRows(rows)
			},
			wantLen: 1,
		},
		{
			name:     "disabled dictionaries become NOT IN arguments",
			disabled: domain.NewDictionarySet("kenkyusha", "daijirin"),
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`WHERE reading = \$1 AND dictionary_id NOT IN`).
					WithArgs("がっこう", "daijirin", "kenkyusha").
					WillReturnRows(pgxmock.NewRows(entryColumns))
			},
			wantLen: 0,
		},
		{
			name: "query error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM entries`).
					WithArgs("がっこう").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo, mock := newMockRepo(t)
			tt.setup(mock)

			got, err := repo.SearchByReading(context.Background(), "がっこう", tt.disabled)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got, "no match is an empty slice")
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestRepo_SearchByReading_ScansAllColumns(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	id := uuid.New()
	mock.ExpectQuery(`FROM entries WHERE reading = \$1`).
		WithArgs("たべる").
		WillReturnRows(pgxmock.NewRows(entryColumns).
			AddRow(id, "jmdict", "食べる", "たべる", []string{"to eat", "to live on"}, 12, 1358280, "v1 vt", "P", "v1"))

	got, err := repo.SearchByReading(context.Background(), "たべる", nil)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Entry{
		ID:             id,
		DictionaryID:   "jmdict",
		Expression:     "食べる",
		Reading:        "たべる",
		Glossary:       []string{"to eat", "to live on"},
		Score:          12,
		Sequence:       1358280,
		DefinitionTags: "v1 vt",
		TermTags:       "P",
		Rules:          "v1",
	}, got[0])
}

func TestRepo_SearchBySurfaceForm(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`FROM entries WHERE expression = \$1 AND dictionary_id NOT IN`).
		WithArgs("食べる", "kenkyusha").
		WillReturnRows(pgxmock.NewRows(entryColumns).
			AddRow(uuid.New(), "jmdict", "食べる", "たべる", []string{"to eat"}, 1, 0, "", "", ""))

	got, err := repo.SearchBySurfaceForm(context.Background(), "食べる", domain.NewDictionarySet("kenkyusha"))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "jmdict", got[0].DictionaryID)
}

func TestRepo_CountByDictionary(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM entries WHERE dictionary_id = \$1`).
		WithArgs("jmdict").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

	n, err := repo.CountByDictionary(context.Background(), "jmdict")

	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

func TestRepo_BulkInsert_Empty(t *testing.T) {
	t.Parallel()

	repo, _ := newMockRepo(t)
	n, err := repo.BulkInsert(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, n)
}

// ---------------------------------------------------------------------------
// Integration
// ---------------------------------------------------------------------------

func TestRepo_Integration(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := entry.New(pool)
	ctx := context.Background()

	enabled := testhelper.SeedDictionary(t, pool)
	blocked := testhelper.SeedDictionary(t, pool)
	reading := "よみ" + uuid.New().String()[:6]

	entries := []domain.Entry{
		{ID: uuid.New(), DictionaryID: enabled.ID, Expression: "読" + reading, Reading: reading, Glossary: []string{"a"}, Score: 1},
		{ID: uuid.New(), DictionaryID: enabled.ID, Expression: "詠" + reading, Reading: reading, Glossary: []string{"b"}, Score: 9},
		{ID: uuid.New(), DictionaryID: blocked.ID, Expression: "読" + reading, Reading: reading, Score: 100},
	}

	n, err := repo.BulkInsert(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = repo.BulkInsert(ctx, entries[:1])
	require.NoError(t, err)
	assert.Zero(t, n, "existing IDs are skipped")

	got, err := repo.SearchByReading(ctx, reading, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, blocked.ID, got[0].DictionaryID, "ordered by score descending")

	got, err = repo.SearchByReading(ctx, reading, domain.NewDictionarySet(blocked.ID))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"詠" + reading, "読" + reading}, []string{got[0].Expression, got[1].Expression})
	assert.Empty(t, got[0].Rules)

	got, err = repo.SearchBySurfaceForm(ctx, "読"+reading, domain.NewDictionarySet(blocked.ID))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entries[0].ID, got[0].ID)

	got, err = repo.SearchBySurfaceForm(ctx, "無"+reading, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	count, err := repo.CountByDictionary(ctx, enabled.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRepo_Integration_OrderMatchesCompareEntries(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := entry.New(pool)
	ctx := context.Background()

	dict := testhelper.SeedDictionary(t, pool)
	reading := "じゅん" + uuid.New().String()[:6]

	// Bytewise "B" < "a" < "b"; most linguistic collations put "a" first.
	var entries []domain.Entry
	for _, expr := range []string{"b", "a", "B", "がっこう", "学校"} {
		entries = append(entries, domain.Entry{
			ID: uuid.New(), DictionaryID: dict.ID, Expression: expr, Reading: reading, Score: 1,
		})
	}
	_, err := repo.BulkInsert(ctx, entries)
	require.NoError(t, err)

	got, err := repo.SearchByReading(ctx, reading, nil)
	require.NoError(t, err)
	require.Len(t, got, len(entries))
	assert.True(t, slices.IsSortedFunc(got, domain.CompareEntries), "store order must equal domain order")
	assert.Equal(t, "B", got[0].Expression)
}
