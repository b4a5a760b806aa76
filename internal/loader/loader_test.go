// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package loader

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerOf(names ...string) map[string]int {
	header := make(map[string]int, len(names))
	for i, name := range names {
		header[name] = i
	}
	return header
}

// # Movies

func TestMovieRow(t *testing.T) {
	header := headerOf("names", "date_x", "score", "genre", "overview", "crew",
		"orig_title", "orig_lang", "budget_x", "revenue", "country")

	t.Run("reshapes_fields", func(t *testing.T) {
		row, key, ok := movieRow(header, []string{
			"Creed III", "03/02/2023", "73", "drama, action", "A boxing drama.",
			"Michael B. Jordan", "Creed III", " en ", "75000000", "271616668", "AU",
		})

		require.True(t, ok)
		assert.Equal(t, "Creed III", row[0])
		assert.Equal(t, time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC), row[1])
		assert.Equal(t, 7.3, row[2])
		assert.Equal(t, "Action, Drama", row[3])
		assert.Equal(t, "en", row[7])
		assert.Equal(t, 75000000.0, row[8])
		assert.Equal(t, "creed iii\x1f2023-03-02", key)
	})

	t.Run("skips_missing_genre", func(t *testing.T) {
		_, _, ok := movieRow(header, []string{
			"Untitled", "03/02/2023", "50", "", "", "", "", "", "", "", "",
		})
		assert.False(t, ok)
	})

	t.Run("animation_without_crew_gets_placeholder", func(t *testing.T) {
		row, _, ok := movieRow(header, []string{
			"Spirited Away", "07/20/2001", "85", "Animation, Fantasy", "", "",
			"千と千尋の神隠し", "ja", "", "", "JP",
		})

		require.True(t, ok)
		assert.Equal(t, "---", row[5])
	})
}

// # Books

func TestBookRow(t *testing.T) {
	header := headerOf("Book", "Author", "Description", "Genres", "Avg_Rating", "Num_Ratings")

	t.Run("reshapes_fields", func(t *testing.T) {
		row, key, ok := bookRow(header, []string{
			"The Hobbit", "J.R.R. Tolkien", "A hobbit leaves home.",
			"['Fantasy', 'Classics']", "4.28", "3,618,718",
		})

		require.True(t, ok)
		assert.Equal(t, "The Hobbit", row[0])
		assert.Equal(t, "Classics, Fantasy", row[3])
		assert.Equal(t, 4.28, row[4])
		assert.Equal(t, 3618718, row[5])
		assert.Equal(t, BooksAttribution, row[7])
		assert.Equal(t, "the hobbit\x1fj.r.r. tolkien", key)
	})

	t.Run("skips_empty_genre_list", func(t *testing.T) {
		_, _, ok := bookRow(header, []string{"Nameless", "Nobody", "", "[]", "", ""})
		assert.False(t, ok)
	})
}

// # Games

func TestGameRow(t *testing.T) {
	header := headerOf("title", "release_date", "developer", "publisher", "genres",
		"multiplayer_or_singleplayer", "price", "dc_price", "overall_review",
		"detailed_review", "reviews", "percent_positive")

	t.Run("reshapes_fields", func(t *testing.T) {
		row, _, ok := gameRow(header, []string{
			"Hades", "2020-09-17", "Supergiant Games", "Supergiant Games",
			"action;rogue-like", "Singleplayer", "1,050", "525",
			"Positive", "Overwhelmingly Positive", "215421", "98%",
		})

		require.True(t, ok)
		assert.Equal(t, "Hades", row[0])
		assert.Equal(t, "Action, Rogue-like", row[4])
		assert.Equal(t, 11.55, row[6]) // 1050 INR at 0.011
		assert.Equal(t, 5.78, row[7])
		assert.Equal(t, 215421, row[10])
		assert.Equal(t, 0.98, row[11])
	})

	t.Run("skips_placeholder_review_buckets", func(t *testing.T) {
		_, _, ok := gameRow(header, []string{
			"Tiny Game", "2020-09-17", "Someone", "", "Action", "",
			"", "", "1 user reviews", "", "", "",
		})
		assert.False(t, ok)

		_, _, ok = gameRow(header, []string{
			"Free Game", "2020-09-17", "Someone", "", "Action", "",
			"", "", "Free to play", "", "", "",
		})
		assert.False(t, ok)
	})

	t.Run("skips_rows_without_reviews_or_title", func(t *testing.T) {
		_, _, ok := gameRow(header, []string{
			"No Signal", "2020-09-17", "Someone", "", "Action", "", "", "", "", "", "", "",
		})
		assert.False(t, ok)

		_, _, ok = gameRow(header, []string{
			"Broken ??? Name", "2020-09-17", "Someone", "", "Action", "",
			"", "", "Positive", "", "", "",
		})
		assert.False(t, ok)
	})
}

// # Songs

func TestSongRow(t *testing.T) {
	header := headerOf("track_id", "track_name", "track_artist", "track_popularity",
		"track_album_id", "track_album_name", "track_album_release_date",
		"playlist_id", "playlist_name", "playlist_genre", "playlist_subgenre", "duration_ms")

	t.Run("reshapes_fields", func(t *testing.T) {
		row, key, ok := songRow(header, []string{
			"6f807x0ima", "I Don't Care", "Ed Sheeran", "66", "2oCs0DGTsRO",
			"I Don't Care (with Justin Bieber)", "2019-06-14",
			"37i9dQZF1DX", "Pop Remix", "pop", "dance pop", "194754",
		})

		require.True(t, ok)
		assert.Equal(t, "I Don't Care", row[1])
		assert.Equal(t, 66, row[3])
		assert.Equal(t, time.Date(2019, 6, 14, 0, 0, 0, 0, time.UTC), row[6])
		assert.Equal(t, "dance pop", row[10])
		assert.Equal(t, 194754, row[11])
		assert.Contains(t, key, "i don't care\x1fed sheeran")
	})

	t.Run("year_only_release_date", func(t *testing.T) {
		row, _, ok := songRow(header, []string{
			"", "Bohemian Rhapsody", "Queen", "80", "", "A Night at the Opera", "1975",
			"", "", "rock", "classic rock", "354320",
		})

		require.True(t, ok)
		assert.Equal(t, time.Date(1975, 1, 1, 0, 0, 0, 0, time.UTC), row[6])
	})

	t.Run("skips_incomplete_natural_key", func(t *testing.T) {
		_, _, ok := songRow(header, []string{
			"", "", "Queen", "80", "", "A Night at the Opera", "1975",
			"", "", "", "", "",
		})
		assert.False(t, ok)
	})
}

// # Dedup

func TestReshapeDeduplicates(t *testing.T) {
	header := headerOf("Book", "Author", "Description", "Genres", "Avg_Rating", "Num_Ratings")
	records := [][]string{
		{"The Hobbit", "J.R.R. Tolkien", "", "['Fantasy']", "4.28", "100"},
		{"the hobbit", "j.r.r. tolkien", "", "['Fantasy']", "4.30", "200"},
	}

	set, err := reshapeBooks(header, records, slog.Default())
	require.NoError(t, err)
	require.Len(t, set.rows, 1)
	assert.Equal(t, "The Hobbit", set.rows[0][0])
}
