// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

/*
Package loader implements the bulk CSV ingestion CLI.

It parses the public Kaggle dataset exports the catalog was originally built
from, reshapes each row into the catalog schema (date parsing, genre
atomization, numeric coercion, currency conversion), and bulk-inserts the
result via the PostgreSQL COPY protocol.

# Architecture

  - One subcommand per dataset: movies, books, games, songs.
  - Row reshaping is pure (record in, row out) so it is unit-testable
    without a database.
  - Duplicate natural keys within one file are dropped, keeping the first
    occurrence, mirroring the API's case-insensitive uniqueness rule.
*/
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	pgstore "github.com/amwozniak/entertainment-api/internal/platform/postgres"
)

// Config holds the loader's environment. Only the database is needed; the
// loader runs out of band from the API server.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
}

// Options carries the per-invocation flags shared by all subcommands.
type Options struct {
	FilePath string
	Truncate bool
}

// NewRootCmd builds the loader command tree.
func NewRootCmd(logger *slog.Logger) *cobra.Command {
	options := &Options{}

	rootCmd := &cobra.Command{
		Use:   "loader",
		Short: "Bulk-load catalog datasets from CSV exports",
		Long: `Parses Kaggle CSV exports and bulk-inserts them into the catalog.

Example:
  loader movies --file data/imdb_movies.csv --truncate
  loader songs  --file data/spotify_songs.csv`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&options.FilePath, "file", "", "path to the CSV export (required)")
	rootCmd.PersistentFlags().BoolVar(&options.Truncate, "truncate", false, "truncate the target table before loading")

	rootCmd.AddCommand(newMoviesCmd(options, logger))
	rootCmd.AddCommand(newBooksCmd(options, logger))
	rootCmd.AddCommand(newGamesCmd(options, logger))
	rootCmd.AddCommand(newSongsCmd(options, logger))

	return rootCmd
}

// # Shared Plumbing

// dataset binds a parsed CSV to its destination table.
type dataset struct {
	table   pgx.Identifier
	columns []string
	rows    [][]any
}

// runLoad is the shared execution path for every subcommand: read the file,
// reshape it, connect, optionally truncate, and COPY the rows in.
func runLoad(cmd *cobra.Command, options *Options, logger *slog.Logger,
	reshape func(header map[string]int, records [][]string, logger *slog.Logger) (*dataset, error),
) error {
	if options.FilePath == "" {
		return fmt.Errorf("--file is required")
	}

	header, records, err := readCSV(options.FilePath)
	if err != nil {
		return err
	}
	logger.Info("csv_parsed", slog.String("file", options.FilePath), slog.Int("records", len(records)))

	set, err := reshape(header, records, logger)
	if err != nil {
		return err
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("loader: parse environment: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if options.Truncate {
		if _, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s RESTART IDENTITY", set.table.Sanitize())); err != nil {
			return fmt.Errorf("loader: truncate %s: %w", set.table.Sanitize(), err)
		}
		logger.Info("table_truncated", slog.String("table", set.table.Sanitize()))
	}

	inserted, err := pool.CopyFrom(ctx, set.table, set.columns, pgx.CopyFromRows(set.rows))
	if err != nil {
		return fmt.Errorf("loader: copy into %s: %w", set.table.Sanitize(), err)
	}

	logger.Info("load_complete",
		slog.String("table", set.table.Sanitize()),
		slog.Int64("inserted", inserted),
		slog.Int("skipped", len(records)-int(inserted)),
	)
	return nil
}

// readCSV parses the file and returns a trimmed-header index plus data records.
func readCSV(path string) (map[string]int, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loader: open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("loader: parse csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("loader: empty csv file")
	}

	// Column names in the Kaggle exports carry stray whitespace.
	header := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		header[strings.TrimSpace(name)] = i
	}
	return header, all[1:], nil
}

// field reads a named column from a record, empty when absent.
func field(header map[string]int, record []string, name string) string {
	index, ok := header[name]
	if !ok || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

// # Coercion Helpers

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseFloat(value string) (float64, bool) {
	cleaned := strings.ReplaceAll(value, ",", "")
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func parseInt(value string) (int, bool) {
	cleaned := strings.ReplaceAll(value, ",", "")
	// Some exports store counts as floats ("1260.0").
	if parsed, err := strconv.Atoi(cleaned); err == nil {
		return parsed, true
	}
	if parsed, ok := parseFloat(cleaned); ok {
		return int(parsed), true
	}
	return 0, false
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// parseFlexibleDate accepts the release-date layouts seen across the exports.
func parseFlexibleDate(value string) (time.Time, bool) {
	layouts := []string{
		"2006-01-02",
		"01/02/2006",
		"Jan 2, 2006",
		"2 Jan, 2006",
		"2006",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// naturalKey builds the case-insensitive in-file dedup key.
func naturalKey(parts ...string) string {
	lowered := make([]string, len(parts))
	for i, part := range parts {
		lowered[i] = strings.ToLower(strings.TrimSpace(part))
	}
	return strings.Join(lowered, "\x1f")
}
