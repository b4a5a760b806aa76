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

// GamesAttribution credits the Kaggle dataset the games table is seeded from.
const GamesAttribution = "www.kaggle.com - rahuldabholkar"

// Steam store prices in the export are INR; converted at a fixed rate.
const inrToEUR = 0.011

func newGamesCmd(options *Options, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "Load the Steam games export (games_data.csv)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd, options, logger, reshapeGames)
		},
	}
}

// reshapeGames converts games_data.csv records into catalog.game rows.
//
// Rows with no review data, placeholder review buckets ("1 user reviews",
// "Free to play"), or mangled titles are dropped. Multi-valued cells arrive
// semicolon-separated; prices in INR with thousands separators.
func reshapeGames(header map[string]int, records [][]string, logger *slog.Logger) (*dataset, error) {
	t := schema.Game
	set := &dataset{
		table: pgx.Identifier{"catalog", "game"},
		columns: []string{
			t.Title, t.Premiere, t.Developer, t.Publisher, t.Genres,
			t.GameType, t.PriceEUR, t.PriceDiscountedEUR, t.ReviewOverall,
			t.ReviewDetailed, t.ReviewsNumber, t.ReviewsPositive,
			t.CreatedBy, t.UpdatedBy,
		},
	}

	seen := map[string]bool{}
	skipped := 0

	for _, record := range records {
		row, key, ok := gameRow(header, record)
		if !ok || seen[key] {
			skipped++
			continue
		}
		seen[key] = true
		set.rows = append(set.rows, row)
	}

	logger.Info("games_reshaped", slog.Int("rows", len(set.rows)), slog.Int("skipped", skipped))
	return set, nil
}

func gameRow(header map[string]int, record []string) (row []any, key string, ok bool) {
	overall := field(header, record, "overall_review")
	detailed := field(header, record, "detailed_review")
	if overall == "" && detailed == "" {
		return nil, "", false
	}
	// Low-volume buckets ("1 user reviews") and free-to-play placeholders
	// carry no usable review signal.
	if strings.HasPrefix(overall, "1") || overall == "Free to play" {
		return nil, "", false
	}

	title := field(header, record, "title")
	if title == "" || strings.Contains(title, "???") {
		return nil, "", false
	}

	premiere, hasPremiere := parseFlexibleDate(field(header, record, "release_date"))
	if !hasPremiere {
		return nil, "", false
	}

	developer := joinSemicolons(field(header, record, "developer"))
	if developer == "" {
		developer = "---"
	}

	genres, hasGenres := taxonomy.EncodeList(
		strings.Split(joinSemicolons(field(header, record, "genres")), ","), textcase.ModeNone)
	if !hasGenres {
		return nil, "", false
	}

	var gameType any
	if encoded, has := taxonomy.EncodeList(
		strings.Split(joinSemicolons(field(header, record, "multiplayer_or_singleplayer")), ","), textcase.ModeNone); has {
		gameType = encoded
	}

	row = []any{
		title,
		premiere,
		developer,
		nullable(joinSemicolons(field(header, record, "publisher"))),
		genres,
		gameType,
		eurPrice(field(header, record, "price")),
		eurPrice(field(header, record, "dc_price")),
		nullable(overall),
		nullable(detailed),
		coercedInt(field(header, record, "reviews")),
		positiveFraction(field(header, record, "percent_positive")),
		GamesAttribution,
		nil,
	}
	return row, naturalKey(title, premiere.Format("2006-01-02"), developer), true
}

// joinSemicolons rewrites semicolon-separated cells as comma-joined lists.
func joinSemicolons(value string) string {
	return strings.ReplaceAll(value, ";", ", ")
}

// eurPrice converts an INR price string to EUR, nil when unparsable.
func eurPrice(value string) any {
	parsed, has := parseFloat(value)
	if !has {
		return nil
	}
	if parsed > 0 {
		return round2(parsed * inrToEUR)
	}
	return parsed
}

func coercedInt(value string) any {
	if parsed, has := parseInt(value); has {
		return parsed
	}
	return nil
}

// positiveFraction turns "85%" into 0.85.
func positiveFraction(value string) any {
	parsed, has := parseFloat(strings.TrimSuffix(value, "%"))
	if !has {
		return nil
	}
	return round2(parsed / 100)
}
