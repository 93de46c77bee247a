// Command importer loads unpacked Yomichan dictionaries into the database.
// Each directory must contain index.json and term_bank_N.json files; a
// dictionary that already exists is replaced.
//
// Flags:
//
//	-dir         dictionary directory (repeatable)
//	-batch-size  entries per insert batch (default: importer.batch_size)
//	-timeout     overall timeout (default 30m)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/jisho-backend/internal/app"
	"github.com/heartmarshall/jisho-backend/internal/config"
)

func main() {
	var dirs []string
	flag.Func("dir", "dictionary directory (repeatable)", func(s string) error {
		dirs = append(dirs, s)
		return nil
	})
	batchSize := flag.Int("batch-size", 0, "entries per insert batch (default: importer.batch_size)")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall timeout")
	flag.Parse()

	dirs = append(dirs, flag.Args()...)
	if len(dirs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: importer -dir PATH [-dir PATH ...]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *batchSize > 0 {
		cfg.Importer.BatchSize = *batchSize
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("init", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer c.Close()

	failed := 0
	for _, dir := range dirs {
		res, err := c.Importer.Import(ctx, dir)
		if err != nil {
			logger.Error("import failed", slog.String("dir", dir), slog.String("error", err.Error()))
			failed++
			continue
		}
		logger.Info("import completed",
			slog.String("dictionary_id", res.Dictionary.ID),
			slog.String("title", res.Dictionary.Title),
			slog.Bool("replaced", res.Replaced),
			slog.Int("entries", res.Entries),
			slog.Int("tags", res.Tags),
			slog.Int("files", res.Files),
			slog.Duration("duration", res.Duration),
		)
	}

	if failed > 0 {
		logger.Error("some imports failed", slog.Int("failed", failed), slog.Int("total", len(dirs)))
		os.Exit(1)
	}
}
