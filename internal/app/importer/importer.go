// Package importer loads unpacked Yomichan dictionaries (index.json,
// term_bank_N.json, tag_bank_N.json) into the store. Parsing is done up front;
// the database is touched only when the whole archive parsed cleanly.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/jisho-backend/internal/domain"
)

type dictionaryStore interface {
	Upsert(ctx context.Context, d domain.Dictionary) (domain.Dictionary, error)
	Delete(ctx context.Context, id string) error
}

type entryWriter interface {
	BulkInsert(ctx context.Context, entries []domain.Entry) (int, error)
}

type tagWriter interface {
	BulkUpsert(ctx context.Context, dictionaryID string, tags []domain.Tag) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const defaultBatchSize = 1000

// Result holds import statistics for one dictionary.
type Result struct {
	Dictionary domain.Dictionary
	Replaced   bool
	Entries    int
	Tags       int
	Files      int
	Duration   time.Duration
}

// Importer writes dictionaries through the repositories in one transaction
// per dictionary.
type Importer struct {
	log       *slog.Logger
	tx        txManager
	dicts     dictionaryStore
	entries   entryWriter
	tags      tagWriter
	batchSize int
}

// New creates an Importer. batchSize <= 0 selects the default.
func New(
	logger *slog.Logger,
	tx txManager,
	dicts dictionaryStore,
	entries entryWriter,
	tags tagWriter,
	batchSize int,
) *Importer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Importer{
		log:       logger.With("service", "importer"),
		tx:        tx,
		dicts:     dicts,
		entries:   entries,
		tags:      tags,
		batchSize: batchSize,
	}
}

type archive struct {
	index   Index
	entries []domain.Entry
	tags    []domain.Tag
	files   int
}

// Import loads the dictionary unpacked in dir. A dictionary that is already
// stored under the same ID is replaced together with its entries and tags.
func (im *Importer) Import(ctx context.Context, dir string) (Result, error) {
	start := time.Now()

	a, err := readArchive(dir)
	if err != nil {
		return Result{}, fmt.Errorf("import %s: %w", dir, err)
	}

	res := Result{Files: a.files}
	dict := a.index.Dictionary()

	err = im.tx.RunInTx(ctx, func(ctx context.Context) error {
		switch err := im.dicts.Delete(ctx, dict.ID); {
		case err == nil:
			res.Replaced = true
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("delete previous revision: %w", err)
		}

		stored, err := im.dicts.Upsert(ctx, dict)
		if err != nil {
			return fmt.Errorf("store dictionary: %w", err)
		}
		res.Dictionary = stored

		if res.Tags, err = im.tags.BulkUpsert(ctx, dict.ID, a.tags); err != nil {
			return fmt.Errorf("store tags: %w", err)
		}

		res.Entries, err = batchProcess(a.entries, im.batchSize, func(batch []domain.Entry) (int, error) {
			return im.entries.BulkInsert(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("store entries: %w", err)
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("import %s: %w", dict.ID, err)
	}

	res.Duration = time.Since(start)
	im.log.InfoContext(ctx, "dictionary imported",
		slog.String("dictionary", dict.ID),
		slog.String("revision", dict.Revision),
		slog.Bool("replaced", res.Replaced),
		slog.Int("entries", res.Entries),
		slog.Int("tags", res.Tags),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

func readArchive(dir string) (archive, error) {
	var a archive

	index, err := ReadIndex(dir)
	if err != nil {
		return a, err
	}
	a.index = index
	dictID := index.Dictionary().ID

	tagFiles, err := bankFiles(dir, tagBankGlob)
	if err != nil {
		return a, err
	}
	for _, path := range tagFiles {
		tags, err := parseFile(path, ParseTagBank)
		if err != nil {
			return a, err
		}
		a.tags = append(a.tags, tags...)
	}

	termFiles, err := bankFiles(dir, termBankGlob)
	if err != nil {
		return a, err
	}
	if len(termFiles) == 0 {
		return a, fmt.Errorf("%w: no %s files", ErrInvalidArchive, termBankGlob)
	}
	for _, path := range termFiles {
		entries, err := parseFile(path, func(r io.Reader) ([]domain.Entry, error) {
			return ParseTermBank(r, dictID)
		})
		if err != nil {
			return a, err
		}
		a.entries = append(a.entries, entries...)
	}

	a.files = 1 + len(tagFiles) + len(termFiles)
	return a, nil
}

func parseFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return items, nil
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
