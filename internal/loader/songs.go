// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package loader

import (
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/amwozniak/entertainment-api/internal/platform/database/schema"
)

// SongsAttribution credits the Kaggle dataset the songs table is seeded from.
const SongsAttribution = "www.kaggle.com - joebeachcapital"

func newSongsCmd(options *Options, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "songs",
		Short: "Load the Spotify songs export (spotify_songs.csv)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoad(cmd, options, logger, reshapeSongs)
		},
	}
}

// reshapeSongs converts spotify_songs.csv records into catalog.song rows.
//
// The audio-feature columns (danceability, energy, tempo, ...) are simply
// never read. Album release dates arrive as full dates or bare years.
func reshapeSongs(header map[string]int, records [][]string, logger *slog.Logger) (*dataset, error) {
	t := schema.Song
	set := &dataset{
		table: pgx.Identifier{"catalog", "song"},
		columns: []string{
			t.TrackID, t.Title, t.Artist, t.Popularity, t.AlbumID,
			t.AlbumName, t.AlbumPremiere, t.PlaylistID, t.PlaylistName,
			t.PlaylistGenre, t.PlaylistSubgenre, t.DurationMS,
			t.CreatedBy, t.UpdatedBy,
		},
	}

	seen := map[string]bool{}
	skipped := 0

	for _, record := range records {
		row, key, ok := songRow(header, record)
		if !ok || seen[key] {
			skipped++
			continue
		}
		seen[key] = true
		set.rows = append(set.rows, row)
	}

	logger.Info("songs_reshaped", slog.Int("rows", len(set.rows)), slog.Int("skipped", skipped))
	return set, nil
}

func songRow(header map[string]int, record []string) (row []any, key string, ok bool) {
	title := field(header, record, "track_name")
	artist := field(header, record, "track_artist")
	albumName := field(header, record, "track_album_name")
	if title == "" || artist == "" || albumName == "" {
		return nil, "", false
	}

	var albumPremiere any
	if parsed, has := parseFlexibleDate(field(header, record, "track_album_release_date")); has {
		albumPremiere = parsed
	}

	row = []any{
		nullable(field(header, record, "track_id")),
		title,
		artist,
		coercedInt(field(header, record, "track_popularity")),
		nullable(field(header, record, "track_album_id")),
		albumName,
		albumPremiere,
		nullable(field(header, record, "playlist_id")),
		nullable(field(header, record, "playlist_name")),
		nullable(field(header, record, "playlist_genre")),
		nullable(field(header, record, "playlist_subgenre")),
		coercedInt(field(header, record, "duration_ms")),
		SongsAttribution,
		nil,
	}
	return row, naturalKey(title, artist, albumName), true
}
