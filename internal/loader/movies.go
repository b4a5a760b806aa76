// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package loader

import (
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/amwozniak/entertainment-api/internal/catalog/taxonomy"
	"github.com/amwozniak/entertainment-api/internal/platform/database/schema"
	"github.com/amwozniak/entertainment-api/pkg/textcase"
)

// MoviesAttribution credits the Kaggle dataset the movies table is seeded from.
const MoviesAttribution = "www.kaggle.com - ashpalsingh1525"

func newMoviesCmd(options *Options, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "movies",
		Short: "Load the IMDB movies export (imdb_movies.csv)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd, options, logger, reshapeMovies)
		},
	}
}

// reshapeMovies converts imdb_movies.csv records into catalog.movie rows.
//
// Rows without a genre are dropped; scores arrive on a 0-100 scale and are
// stored as 0-10; premiere dates arrive as MM/DD/YYYY.
func reshapeMovies(header map[string]int, records [][]string, logger *slog.Logger) (*dataset, error) {
	t := schema.Movie
	set := &dataset{
		table: pgx.Identifier{"catalog", "movie"},
		columns: []string{
			t.Title, t.Premiere, t.Score, t.Genres, t.Overview, t.Crew,
			t.OrigTitle, t.OrigLang, t.Budget, t.Revenue, t.Country,
			t.CreatedBy, t.UpdatedBy,
		},
	}

	seen := map[string]bool{}
	skipped := 0

	for _, record := range records {
		row, key, ok := movieRow(header, record)
		if !ok || seen[key] {
			skipped++
			continue
		}
		seen[key] = true
		set.rows = append(set.rows, row)
	}

	logger.Info("movies_reshaped", slog.Int("rows", len(set.rows)), slog.Int("skipped", skipped))
	return set, nil
}

func movieRow(header map[string]int, record []string) (row []any, key string, ok bool) {
	genres, hasGenres := taxonomy.EncodeList(strings.Split(field(header, record, "genre"), ","), textcase.ModeNone)
	if !hasGenres {
		return nil, "", false
	}

	title := field(header, record, "names")
	if title == "" {
		title = "---"
	}

	premiere, hasPremiere := parseFlexibleDate(field(header, record, "date_x"))
	if !hasPremiere {
		return nil, "", false
	}

	var score any
	if parsed, has := parseFloat(field(header, record, "score")); has && parsed > 0 {
		score = round2(parsed / 10)
	}

	crew := field(header, record, "crew")
	if crew == "" && strings.Contains(genres, "Animation") {
		crew = "---"
	}

	var budget, revenue any
	if parsed, has := parseFloat(field(header, record, "budget_x")); has {
		budget = parsed
	}
	if parsed, has := parseFloat(field(header, record, "revenue")); has {
		revenue = parsed
	}

	row = []any{
		title,
		premiere,
		score,
		genres,
		nullable(field(header, record, "overview")),
		nullable(crew),
		nullable(field(header, record, "orig_title")),
		nullable(field(header, record, "orig_lang")),
		budget,
		revenue,
		nullable(field(header, record, "country")),
		MoviesAttribution,
		nil,
	}
	return row, naturalKey(title, premiere.Format("2006-01-02")), true
}
