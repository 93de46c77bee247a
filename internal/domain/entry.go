package domain

import (
	"bytes"
	"cmp"
	"time"

	"github.com/google/uuid"
)

// Entry is a single term record of an imported dictionary.
// Expression is the surface form, Reading its kana pronunciation.
type Entry struct {
	ID             uuid.UUID
	DictionaryID   string
	Expression     string
	Reading        string
	Glossary       []string
	Score          int
	Sequence       int
	DefinitionTags string
	TermTags       string
	Rules          string
}

// CompareEntries defines the natural order of entries: higher score first,
// then dictionary, expression and reading, with the ID as the final tiebreak.
// The order is total as long as IDs are unique.
func CompareEntries(a, b Entry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(a.DictionaryID, b.DictionaryID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Expression, b.Expression); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Reading, b.Reading); c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}

// Dictionary describes an imported dictionary. Entries reference it by ID.
type Dictionary struct {
	ID         string
	Title      string
	Revision   string
	Bilingual  bool
	ImportedAt time.Time
}
