package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/jisho-backend/internal/domain"
)

// ErrInvalidArchive is returned for dictionary directories that do not follow
// the Yomichan layout.
var ErrInvalidArchive = errors.New("invalid dictionary archive")

const (
	indexFile       = "index.json"
	termBankGlob    = "term_bank_*.json"
	tagBankGlob     = "tag_bank_*.json"
	supportedFormat = 3
)

// Index is the content of index.json.
type Index struct {
	Title     string `json:"title"`
	Revision  string `json:"revision"`
	Format    int    `json:"format"`
	Version   int    `json:"version"`
	Bilingual bool   `json:"bilingual"`
}

// Dictionary converts the index to the stored dictionary record.
func (ix Index) Dictionary() domain.Dictionary {
	return domain.Dictionary{
		ID:        domain.NormalizeDictionaryID(ix.Title),
		Title:     strings.TrimSpace(ix.Title),
		Revision:  ix.Revision,
		Bilingual: ix.Bilingual,
	}
}

// ReadIndex reads and validates dir/index.json.
func ReadIndex(dir string) (Index, error) {
	data, err := os.ReadFile(filepath.Join(dir, indexFile))
	if err != nil {
		return Index{}, fmt.Errorf("read %s: %w", indexFile, err)
	}

	var ix Index
	if err := json.Unmarshal(data, &ix); err != nil {
		return Index{}, fmt.Errorf("%s: %w: %v", indexFile, ErrInvalidArchive, err)
	}

	format := ix.Format
	if format == 0 {
		format = ix.Version
	}
	switch {
	case strings.TrimSpace(ix.Title) == "":
		return Index{}, fmt.Errorf("%s: %w: missing title", indexFile, ErrInvalidArchive)
	case format != supportedFormat:
		return Index{}, fmt.Errorf("%s: %w: unsupported format %d", indexFile, ErrInvalidArchive, format)
	}
	ix.Format = format
	return ix, nil
}

// bankFiles returns the files matching pattern in dir, ordered by bank number.
func bankFiles(dir, pattern string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	slices.SortFunc(files, func(a, b string) int {
		return bankNumber(a) - bankNumber(b)
	})
	return files, nil
}

func bankNumber(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), ".json")
	n, _ := strconv.Atoi(base[strings.LastIndexByte(base, '_')+1:])
	return n
}

// ParseTermBank decodes a term bank into entries of dictionaryID. Every entry
// gets a fresh ID. An empty reading means the expression is written in kana
// and is its own reading.
func ParseTermBank(r io.Reader, dictionaryID string) ([]domain.Entry, error) {
	var rows [][]json.RawMessage
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	entries := make([]domain.Entry, 0, len(rows))
	for i, row := range rows {
		e, err := parseTermRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		e.ID = uuid.New()
		e.DictionaryID = dictionaryID
		entries = append(entries, e)
	}
	return entries, nil
}

// [expression, reading, definitionTags, rules, score, glossary, sequence, termTags]
func parseTermRow(row []json.RawMessage) (domain.Entry, error) {
	if len(row) < 6 {
		return domain.Entry{}, fmt.Errorf("%w: term row has %d fields, want at least 6", ErrInvalidArchive, len(row))
	}

	var (
		e   domain.Entry
		err error
	)
	if e.Expression, err = decodeString(row[0], "expression"); err != nil {
		return e, err
	}
	if e.Expression == "" {
		return e, fmt.Errorf("%w: empty expression", ErrInvalidArchive)
	}
	if e.Reading, err = decodeString(row[1], "reading"); err != nil {
		return e, err
	}
	if e.Reading == "" {
		e.Reading = e.Expression
	}
	if e.DefinitionTags, err = decodeString(row[2], "definition tags"); err != nil {
		return e, err
	}
	if e.Rules, err = decodeString(row[3], "rules"); err != nil {
		return e, err
	}
	if e.Score, err = decodeInt(row[4], "score"); err != nil {
		return e, err
	}
	if e.Glossary, err = decodeGlossary(row[5]); err != nil {
		return e, err
	}
	if len(row) > 6 {
		if e.Sequence, err = decodeInt(row[6], "sequence"); err != nil {
			return e, err
		}
	}
	if len(row) > 7 {
		if e.TermTags, err = decodeString(row[7], "term tags"); err != nil {
			return e, err
		}
	}
	return e, nil
}

// ParseTagBank decodes a tag bank.
func ParseTagBank(r io.Reader) ([]domain.Tag, error) {
	var rows [][]json.RawMessage
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	tags := make([]domain.Tag, 0, len(rows))
	for i, row := range rows {
		t, err := parseTagRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// [name, category, order, notes, score]
func parseTagRow(row []json.RawMessage) (domain.Tag, error) {
	if len(row) < 5 {
		return domain.Tag{}, fmt.Errorf("%w: tag row has %d fields, want 5", ErrInvalidArchive, len(row))
	}

	var (
		t   domain.Tag
		err error
	)
	if t.Name, err = decodeString(row[0], "name"); err != nil {
		return t, err
	}
	if t.Name == "" {
		return t, fmt.Errorf("%w: empty tag name", ErrInvalidArchive)
	}
	if t.Category, err = decodeString(row[1], "category"); err != nil {
		return t, err
	}
	if t.Order, err = decodeInt(row[2], "order"); err != nil {
		return t, err
	}
	if t.Notes, err = decodeString(row[3], "notes"); err != nil {
		return t, err
	}
	if t.Score, err = decodeInt(row[4], "score"); err != nil {
		return t, err
	}
	return t, nil
}

// decodeString accepts a JSON string or null.
func decodeString(raw json.RawMessage, field string) (string, error) {
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidArchive, field, err)
	}
	if s == nil {
		return "", nil
	}
	return *s, nil
}

// decodeInt accepts any JSON number or null; fractions are rounded.
func decodeInt(raw json.RawMessage, field string) (int, error) {
	var f *float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidArchive, field, err)
	}
	if f == nil {
		return 0, nil
	}
	return int(math.Round(*f)), nil
}

// decodeGlossary keeps string items as they are and other items (structured
// content, images) as compact JSON text.
func decodeGlossary(raw json.RawMessage) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: glossary: %v", ErrInvalidArchive, err)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, item); err != nil {
			return nil, fmt.Errorf("%w: glossary: %v", ErrInvalidArchive, err)
		}
		out = append(out, buf.String())
	}
	return out, nil
}
