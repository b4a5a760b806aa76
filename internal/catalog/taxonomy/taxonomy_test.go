// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package taxonomy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amwozniak/entertainment-api/internal/catalog/taxonomy"
	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/pkg/textcase"
)

/*
TestEncodeList tests canonical encoding of tag lists.
*/
func TestEncodeList(t *testing.T) {
	tests := []struct {
		name   string
		items  []string
		mode   textcase.Mode
		want   string
		wantOK bool
	}{
		{
			"sorted_dedup_join",
			[]string{"Drama", "  fantasy ", "drama", "RPG"},
			textcase.ModeNone,
			"Drama, Fantasy, RPG", true,
		},
		{
			"acronyms_preserved",
			[]string{"TV Movie", "tv movie"},
			textcase.ModeNone,
			"TV Movie, Tv Movie", true,
		},
		{
			"lower_mode_merges_case_variants",
			[]string{"Fiction", "fiction", "FICTION"},
			textcase.ModeLower,
			"fiction", true,
		},
		{"empty_input", nil, textcase.ModeNone, "", false},
		{"all_blank", []string{"", "   "}, textcase.ModeNone, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := taxonomy.EncodeList(tc.items, tc.mode)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

/*
TestDecodeList tests splitting a stored taxonomy string back into tags.
*/
func TestDecodeList(t *testing.T) {
	assert.Equal(t,
		[]string{"Classics", "Drama", "Fiction"},
		taxonomy.DecodeList("Classics, Drama, Fiction"))

	// Sloppy separators still atomize cleanly
	assert.Equal(t,
		[]string{"Classics", "Drama"},
		taxonomy.DecodeList("Classics,Drama, "))

	assert.Nil(t, taxonomy.DecodeList(""))
}

/*
TestEncodeDecode_RoundTrip tests the stored-form invariant: decode of an
encoded string yields a sorted set with no duplicates.
*/
func TestEncodeDecode_RoundTrip(t *testing.T) {
	stored, ok := taxonomy.EncodeList(
		[]string{"Mythology", "Classics", "classics", "Magic"}, textcase.ModeNone)
	require.True(t, ok)

	decoded := taxonomy.DecodeList(stored)
	assert.Equal(t, []string{"Classics", "Magic", "Mythology"}, decoded)
}

/*
TestCheckItems tests taxonomy validation against the accessible set.
*/
func TestCheckItems(t *testing.T) {
	accessible := []string{"Classics", "Drama", "Fantasy", "Fiction"}

	t.Run("valid_items_sorted_and_deduplicated", func(t *testing.T) {
		got, err := taxonomy.CheckItems(
			[]string{"fiction", "  Drama ", "FICTION"}, accessible, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Drama", "Fiction"}, got)
	})

	t.Run("empty_input_is_noop", func(t *testing.T) {
		got, err := taxonomy.CheckItems(nil, accessible, "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("blank_elements_only_is_noop", func(t *testing.T) {
		got, err := taxonomy.CheckItems([]string{"", "  "}, accessible, "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unknown_item_rejected", func(t *testing.T) {
		_, err := taxonomy.CheckItems([]string{"Drama", "Romance"}, accessible, "")
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 422, ae.HTTPStatus)
		assert.Equal(t, taxonomy.DefaultGenreError, ae.Message)
	})

	t.Run("custom_error_message", func(t *testing.T) {
		_, err := taxonomy.CheckItems(
			[]string{"Shooter"}, accessible, "Invalid game type.")
		require.Error(t, err)
		assert.Equal(t, "Invalid game type.", apperr.As(err).Message)
	})

	t.Run("accessible_set_casing_does_not_matter", func(t *testing.T) {
		got, err := taxonomy.CheckItems(
			[]string{"science fiction"}, []string{"SCIENCE FICTION"}, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Science Fiction"}, got)
	})
}

/*
TestCheckItemsToString tests validation plus canonical joining.
*/
func TestCheckItemsToString(t *testing.T) {
	accessible := []string{"Classics", "Drama", "Fiction"}

	got, ok, err := taxonomy.CheckItemsToString(
		[]string{"fiction", "classics"}, accessible, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Classics, Fiction", got)

	_, ok, err = taxonomy.CheckItemsToString(nil, accessible, "")
	require.NoError(t, err)
	assert.False(t, ok)
}
