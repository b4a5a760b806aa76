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

// BooksAttribution credits the Kaggle dataset the books table is seeded from.
const BooksAttribution = "www.kaggle.com - ishikajohari"

func newBooksCmd(options *Options, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "Load the Goodreads export (goodreads_data.csv)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd, options, logger, reshapeBooks)
		},
	}
}

// reshapeBooks converts goodreads_data.csv records into catalog.book rows.
//
// Genres arrive as a Python list literal ("['Classics', 'Fiction']") and are
// unquoted before atomization. Rating counts carry thousands separators.
func reshapeBooks(header map[string]int, records [][]string, logger *slog.Logger) (*dataset, error) {
	t := schema.Book
	set := &dataset{
		table: pgx.Identifier{"catalog", "book"},
		columns: []string{
			t.Title, t.Author, t.Description, t.Genres, t.AvgRating,
			t.RatingReviews, t.FirstPublished, t.CreatedBy, t.UpdatedBy,
		},
	}

	seen := map[string]bool{}
	skipped := 0

	for _, record := range records {
		row, key, ok := bookRow(header, record)
		if !ok || seen[key] {
			skipped++
			continue
		}
		seen[key] = true
		set.rows = append(set.rows, row)
	}

	logger.Info("books_reshaped", slog.Int("rows", len(set.rows)), slog.Int("skipped", skipped))
	return set, nil
}

func bookRow(header map[string]int, record []string) (row []any, key string, ok bool) {
	title := field(header, record, "Book")
	author := field(header, record, "Author")
	if title == "" || author == "" {
		return nil, "", false
	}

	genres, hasGenres := taxonomy.EncodeList(splitListLiteral(field(header, record, "Genres")), textcase.ModeNone)
	if !hasGenres {
		return nil, "", false
	}

	var avgRating any
	if parsed, has := parseFloat(field(header, record, "Avg_Rating")); has {
		avgRating = parsed
	}

	var ratingReviews any
	if parsed, has := parseInt(field(header, record, "Num_Ratings")); has {
		ratingReviews = parsed
	}

	var firstPublished any
	if parsed, has := parseFlexibleDate(field(header, record, "First_Published")); has {
		firstPublished = parsed
	}

	row = []any{
		title,
		author,
		nullable(field(header, record, "Description")),
		genres,
		avgRating,
		ratingReviews,
		firstPublished,
		BooksAttribution,
		nil,
	}
	return row, naturalKey(title, author), true
}

// splitListLiteral atomizes a Python-style list literal into raw tags.
func splitListLiteral(value string) []string {
	cleaned := strings.NewReplacer("[", "", "]", "", "'", "").Replace(value)
	return strings.Split(cleaned, ",")
}
