package games_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amwozniak/entertainment-api/internal/catalog/games"
	"github.com/amwozniak/entertainment-api/internal/catalog/taxonomy"
	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/pkg/date"
	"github.com/amwozniak/entertainment-api/pkg/pointer"
)

// fakeRepository keeps games in memory and records mutations.
type fakeRepository struct {
	games   []*games.Game
	updated *games.Game
	deleted []int
}

func (f *fakeRepository) List(context.Context, int, int) ([]*games.Game, int, error) {
	return f.games, len(f.games), nil
}

func (f *fakeRepository) Search(context.Context, games.SearchFilter, int, int) ([]*games.Game, int, error) {
	return f.games, len(f.games), nil
}

func (f *fakeRepository) GetByKey(_ context.Context, title string, premiere date.Date, developer string) (*games.Game, error) {
	for _, g := range f.games {
		if g.Title == title && g.Premiere.Equal(premiere.Time) && g.Developer == developer {
			return g, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) Insert(_ context.Context, game *games.Game) error {
	game.ID = len(f.games) + 1
	f.games = append(f.games, game)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, game *games.Game) error {
	f.updated = game
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// choiceSource feeds the taxonomy extractor per-column accessible sets.
type choiceSource struct{}

func (choiceSource) DistinctValues(_ context.Context, _ string, column string) ([]*string, error) {
	switch column {
	case "genres":
		return []*string{pointer.To("Action, RPG"), pointer.To("Action, Strategy")}, nil
	case "gametype":
		return []*string{pointer.To("Co-op, Multi-Player"), pointer.To("Single-Player")}, nil
	case "reviewoverall":
		return []*string{pointer.To("Positive"), pointer.To("Mixed")}, nil
	}
	return nil, nil
}

func (choiceSource) DistinctValuesWhere(context.Context, string, string, string, string) ([]*string, error) {
	return nil, nil
}

type testPrincipal struct {
	username string
	role     string
}

func (p testPrincipal) Username() string   { return p.username }
func (p testPrincipal) Role() sec.UserRole { return sec.UserRole(p.role) }

func newService(repo *fakeRepository) *games.Service {
	return games.NewService(repo, taxonomy.NewExtractor(choiceSource{}), slog.Default())
}

/*
TestService_Choices tests the accessible value listing per taxonomy field.
*/
func TestService_Choices(t *testing.T) {
	ctx := context.Background()
	service := newService(&fakeRepository{})

	t.Run("genres", func(t *testing.T) {
		choices, err := service.Choices(ctx, "genres")
		require.NoError(t, err)
		assert.Equal(t, []string{"Action", "RPG", "Strategy"}, choices)
	})

	t.Run("game_type", func(t *testing.T) {
		choices, err := service.Choices(ctx, "game_type")
		require.NoError(t, err)
		assert.Equal(t, []string{"Co-op", "Multi-player", "Single-player"}, choices)
	})

	t.Run("unknown_field", func(t *testing.T) {
		_, err := service.Choices(ctx, "publisher")
		require.Error(t, err)
		assert.Equal(t, 422, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_Create tests the game write path.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	author := testPrincipal{username: "anna", role: "user"}

	t.Run("valid_input", func(t *testing.T) {
		repo := &fakeRepository{}
		service := newService(repo)

		game, err := service.Create(ctx, author, games.CreateInput{
			Title:          "  Baldur's Gate 3 ",
			Premiere:       "2023-08-03",
			Developer:      "Larian Studios",
			Genres:         []string{"rpg", "action"},
			GameType:       []string{"single-player"},
			ReviewOverall:  pointer.To("Positive"),
			ReviewDetailed: pointer.To("Overwhelmingly Positive"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Baldur's Gate 3", game.Title)
		assert.Equal(t, "2023-08-03", game.Premiere.String())
		assert.Equal(t, "Action, Rpg", pointer.Val(game.Genres))
		assert.Equal(t, "Single-player", pointer.Val(game.GameType))
		assert.Equal(t, "anna", pointer.Val(game.CreatedBy))
		assert.Len(t, repo.games, 1)
	})

	t.Run("unknown_genre_rejected", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, games.CreateInput{
			Title:     "Some Game",
			Premiere:  "2024-01-01",
			Developer: "Studio",
			Genres:    []string{"Puzzle"},
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 422, ae.HTTPStatus)
		assert.Equal(t, "Invalid genres: check 'get choices' for list of accessible genres.", ae.Message)
	})

	t.Run("unknown_game_type_rejected", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, games.CreateInput{
			Title:     "Some Game",
			Premiere:  "2024-01-01",
			Developer: "Studio",
			Genres:    []string{"Action"},
			GameType:  []string{"Battle Royale"},
		})
		require.Error(t, err)
		assert.Equal(t, "Invalid game_type: check 'get choices' for list of accessible game_type.",
			apperr.As(err).Message)
	})

	t.Run("invalid_review_overall", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, games.CreateInput{
			Title:         "Some Game",
			Premiere:      "2024-01-01",
			Developer:     "Studio",
			Genres:        []string{"Action"},
			ReviewOverall: pointer.To("Amazing"),
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})

	t.Run("reviews_positive_out_of_range", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, games.CreateInput{
			Title:           "Some Game",
			Premiere:        "2024-01-01",
			Developer:       "Studio",
			Genres:          []string{"Action"},
			ReviewsPositive: pointer.To(1.5),
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})

	t.Run("missing_required_fields", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, games.CreateInput{})
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
		premiere, _ := date.Parse("2023-08-03")
		return &fakeRepository{games: []*games.Game{{
			ID:        1,
			Title:     "Baldur's Gate 3",
			Premiere:  premiere,
			Developer: "Larian Studios",
			CreatedBy: pointer.To("anna"),
		}}}
	}

	t.Run("author_updates_own_record", func(t *testing.T) {
		repo := existing()
		service := newService(repo)

		game, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"Baldur's Gate 3", "2023-08-03", "Larian Studios",
			games.UpdateInput{PriceEUR: pointer.To(59.99)})
		require.NoError(t, err)

		assert.Equal(t, 59.99, pointer.Val(game.PriceEUR))
		assert.Equal(t, "anna", pointer.Val(game.UpdatedBy))
		require.NotNil(t, repo.updated)
	})

	t.Run("admin_updates_any_record", func(t *testing.T) {
		service := newService(existing())

		_, err := service.Update(ctx, testPrincipal{"root", "admin"},
			"Baldur's Gate 3", "2023-08-03", "Larian Studios",
			games.UpdateInput{Publisher: pointer.To("Larian Studios")})
		assert.NoError(t, err)
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		service := newService(existing())

		_, err := service.Update(ctx, testPrincipal{"mallory", "user"},
			"Baldur's Gate 3", "2023-08-03", "Larian Studios",
			games.UpdateInput{PriceEUR: pointer.To(0.0)})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 403, ae.HTTPStatus)
		assert.Equal(t, sec.AuthorOrAdminMessage, ae.Message)
	})

	t.Run("empty_payload_rejected", func(t *testing.T) {
		service := newService(existing())

		_, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"Baldur's Gate 3", "2023-08-03", "Larian Studios", games.UpdateInput{})
		require.Error(t, err)
		assert.Equal(t, "No data input provided.", apperr.As(err).Message)
	})

	t.Run("all_blank_taxonomies_treated_as_absent", func(t *testing.T) {
		service := newService(existing())

		_, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"Baldur's Gate 3", "2023-08-03", "Larian Studios",
			games.UpdateInput{Genres: []string{""}, GameType: []string{" "}})
		require.Error(t, err)
		assert.Equal(t, "No data input provided.", apperr.As(err).Message)
	})

	t.Run("missing_record", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"Nope", "2023-08-03", "Nobody",
			games.UpdateInput{PriceEUR: pointer.To(1.0)})
		require.Error(t, err)
		assert.Equal(t, "Game not found", apperr.As(err).Message)
	})
}

/*
TestService_Delete tests owner-or-admin delete semantics.
*/
func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	premiere, _ := date.Parse("2015-05-19")

	repo := &fakeRepository{games: []*games.Game{{
		ID: 4, Title: "Old Game", Premiere: premiere,
		Developer: "Studio", CreatedBy: pointer.To("anna"),
	}}}
	service := newService(repo)

	err := service.Delete(ctx, testPrincipal{"mallory", "user"}, "Old Game", "2015-05-19", "Studio")
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	err = service.Delete(ctx, testPrincipal{"anna", "user"}, "Old Game", "2015-05-19", "Studio")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, repo.deleted)
}
