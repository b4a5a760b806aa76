package songs_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amwozniak/entertainment-api/internal/catalog/songs"
	"github.com/amwozniak/entertainment-api/internal/catalog/taxonomy"
	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/pkg/pointer"
)

// fakeRepository keeps songs in memory and records mutations.
type fakeRepository struct {
	songs   []*songs.Song
	pairs   []songs.GenrePair
	updated *songs.Song
	deleted []int
}

func (f *fakeRepository) List(context.Context, int, int) ([]*songs.Song, int, error) {
	return f.songs, len(f.songs), nil
}

func (f *fakeRepository) Search(context.Context, songs.SearchFilter, int, int) ([]*songs.Song, int, error) {
	return f.songs, len(f.songs), nil
}

func (f *fakeRepository) GetByKey(_ context.Context, title, artist, albumName string) (*songs.Song, error) {
	for _, s := range f.songs {
		if s.Title == title && s.Artist == artist && s.AlbumName == albumName {
			return s, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) DistinctGenrePairs(context.Context) ([]songs.GenrePair, error) {
	return f.pairs, nil
}

func (f *fakeRepository) Insert(_ context.Context, song *songs.Song) error {
	song.ID = len(f.songs) + 1
	f.songs = append(f.songs, song)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, song *songs.Song) error {
	f.updated = song
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// playlistSource feeds the taxonomy extractor fixed genre and subgenre sets.
type playlistSource struct{}

func (playlistSource) DistinctValues(_ context.Context, _ string, column string) ([]*string, error) {
	switch column {
	case "playlistgenre":
		return []*string{pointer.To("rock"), pointer.To("pop")}, nil
	case "playlistsubgenre":
		return []*string{pointer.To("album rock"), pointer.To("dance pop")}, nil
	}
	return nil, nil
}

func (playlistSource) DistinctValuesWhere(_ context.Context, _, _, _ string, whereVal string) ([]*string, error) {
	if whereVal == "album rock" {
		return []*string{pointer.To("rock")}, nil
	}
	return nil, nil
}

// brokenPairSource serves distinct values but fails parent-genre queries.
type brokenPairSource struct{}

func (brokenPairSource) DistinctValues(ctx context.Context, table, column string) ([]*string, error) {
	return playlistSource{}.DistinctValues(ctx, table, column)
}

func (brokenPairSource) DistinctValuesWhere(context.Context, string, string, string, string) ([]*string, error) {
	return nil, errors.New("connection reset")
}

type testPrincipal struct {
	username string
	role     string
}

func (p testPrincipal) Username() string   { return p.username }
func (p testPrincipal) Role() sec.UserRole { return sec.UserRole(p.role) }

func newService(repo *fakeRepository) *songs.Service {
	return songs.NewService(repo, taxonomy.NewExtractor(playlistSource{}), slog.Default())
}

/*
TestService_Genres tests the genre-to-subgenre map construction.
*/
func TestService_Genres(t *testing.T) {
	repo := &fakeRepository{pairs: []songs.GenrePair{
		{Genre: pointer.To("rock"), Subgenre: pointer.To("album rock")},
		{Genre: pointer.To("rock"), Subgenre: pointer.To("hard rock")},
		{Genre: pointer.To("pop"), Subgenre: pointer.To("dance pop")},
		{Genre: pointer.To("rock"), Subgenre: pointer.To("album rock")},
		{Genre: nil, Subgenre: pointer.To("orphan")},
		{Genre: pointer.To("latin"), Subgenre: nil},
	}}
	service := newService(repo)

	result, err := service.Genres(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Latin", "Pop", "Rock"}, result.Genres)
	assert.Equal(t, []string{"Album Rock", "Hard Rock"}, result.Subgenres["Rock"])
	assert.Equal(t, []string{"Dance Pop"}, result.Subgenres["Pop"])
	assert.Empty(t, result.Subgenres["Latin"])
}

/*
TestService_Create tests the song write path.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	author := testPrincipal{username: "anna", role: "user"}

	t.Run("valid_input", func(t *testing.T) {
		repo := &fakeRepository{}
		service := newService(repo)

		song, err := service.Create(ctx, author, songs.CreateInput{
			Title:         "  Bohemian Rhapsody ",
			Artist:        "Queen",
			AlbumName:     "A Night at the Opera",
			AlbumPremiere: pointer.To("1975-11-21"),
			PlaylistGenre: []string{"rock"},
			Popularity:    pointer.To(87),
		})
		require.NoError(t, err)

		assert.Equal(t, "Bohemian Rhapsody", song.Title)
		assert.Equal(t, "Rock", pointer.Val(song.PlaylistGenre))
		assert.Equal(t, "1975-11-21", song.AlbumPremiere.String())
		assert.Equal(t, "anna", pointer.Val(song.CreatedBy))
		assert.Len(t, repo.songs, 1)
	})

	t.Run("subgenre_implies_parent_genre", func(t *testing.T) {
		repo := &fakeRepository{}
		service := newService(repo)

		song, err := service.Create(ctx, author, songs.CreateInput{
			Title:            "Hotel California",
			Artist:           "Eagles",
			AlbumName:        "Hotel California",
			PlaylistSubgenre: []string{"album rock"},
		})
		require.NoError(t, err)

		assert.Equal(t, "Album Rock", pointer.Val(song.PlaylistSubgenre))
		assert.Equal(t, "Rock", pointer.Val(song.PlaylistGenre))
	})

	t.Run("parentless_subgenre_skips_inference", func(t *testing.T) {
		repo := &fakeRepository{}
		service := newService(repo)

		song, err := service.Create(ctx, author, songs.CreateInput{
			Title:            "Levitating",
			Artist:           "Dua Lipa",
			AlbumName:        "Future Nostalgia",
			PlaylistSubgenre: []string{"dance pop"},
		})
		require.NoError(t, err)

		assert.Equal(t, "Dance Pop", pointer.Val(song.PlaylistSubgenre))
		assert.Nil(t, song.PlaylistGenre)
	})

	t.Run("parent_lookup_failure_propagates", func(t *testing.T) {
		repo := &fakeRepository{}
		service := songs.NewService(repo,
			taxonomy.NewExtractor(brokenPairSource{}), slog.Default())

		_, err := service.Create(ctx, author, songs.CreateInput{
			Title:            "Hotel California",
			Artist:           "Eagles",
			AlbumName:        "Hotel California",
			PlaylistSubgenre: []string{"album rock"},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "connection reset")
		assert.Empty(t, repo.songs)
	})

	t.Run("unknown_genre_rejected", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, songs.CreateInput{
			Title:         "Song",
			Artist:        "Artist",
			AlbumName:     "Album",
			PlaylistGenre: []string{"jazz"},
		})
		require.Error(t, err)
		assert.Equal(t, 422, apperr.As(err).HTTPStatus)
	})

	t.Run("popularity_out_of_range", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, songs.CreateInput{
			Title:      "Song",
			Artist:     "Artist",
			AlbumName:  "Album",
			Popularity: pointer.To(250),
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})

	t.Run("missing_required_fields", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, songs.CreateInput{})
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_Update tests owner-or-admin update semantics.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *fakeRepository {
		return &fakeRepository{songs: []*songs.Song{{
			ID:        1,
			Title:     "Bohemian Rhapsody",
			Artist:    "Queen",
			AlbumName: "A Night at the Opera",
			CreatedBy: pointer.To("anna"),
		}}}
	}

	t.Run("author_updates_own_record", func(t *testing.T) {
		repo := existing()
		service := newService(repo)

		song, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"Bohemian Rhapsody", "Queen", "A Night at the Opera",
			songs.UpdateInput{Popularity: pointer.To(90)})
		require.NoError(t, err)

		assert.Equal(t, 90, pointer.Val(song.Popularity))
		assert.Equal(t, "anna", pointer.Val(song.UpdatedBy))
		require.NotNil(t, repo.updated)
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		service := newService(existing())

		_, err := service.Update(ctx, testPrincipal{"mallory", "user"},
			"Bohemian Rhapsody", "Queen", "A Night at the Opera",
			songs.UpdateInput{Popularity: pointer.To(1)})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 403, ae.HTTPStatus)
		assert.Equal(t, sec.AuthorOrAdminMessage, ae.Message)
	})

	t.Run("empty_payload_rejected", func(t *testing.T) {
		service := newService(existing())

		_, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"Bohemian Rhapsody", "Queen", "A Night at the Opera", songs.UpdateInput{})
		require.Error(t, err)
		assert.Equal(t, "No data input provided.", apperr.As(err).Message)
	})

	t.Run("missing_record", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"Nope", "Nobody", "Nothing", songs.UpdateInput{Popularity: pointer.To(1)})
		require.Error(t, err)
		assert.Equal(t, "Song not found", apperr.As(err).Message)
	})
}

/*
TestService_Delete tests owner-or-admin delete semantics.
*/
func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := &fakeRepository{songs: []*songs.Song{{
		ID: 9, Title: "Old Song", Artist: "Artist",
		AlbumName: "Album", CreatedBy: pointer.To("anna"),
	}}}
	service := newService(repo)

	err := service.Delete(ctx, testPrincipal{"mallory", "user"}, "Old Song", "Artist", "Album")
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	err = service.Delete(ctx, testPrincipal{"anna", "user"}, "Old Song", "Artist", "Album")
	require.NoError(t, err)
	assert.Equal(t, []int{9}, repo.deleted)
}
