package books_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amwozniak/entertainment-api/internal/catalog/books"
	"github.com/amwozniak/entertainment-api/internal/catalog/taxonomy"
	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/pkg/pointer"
)

// fakeRepository keeps books in memory and records mutations.
type fakeRepository struct {
	books   []*books.Book
	updated *books.Book
	deleted []int
}

func (f *fakeRepository) List(context.Context, int, int) ([]*books.Book, int, error) {
	return f.books, len(f.books), nil
}

func (f *fakeRepository) Search(context.Context, books.SearchFilter, int, int) ([]*books.Book, int, error) {
	return f.books, len(f.books), nil
}

func (f *fakeRepository) GetByKey(_ context.Context, title, author string) (*books.Book, error) {
	for _, b := range f.books {
		if b.Title == title && b.Author == author {
			return b, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) Insert(_ context.Context, book *books.Book) error {
	book.ID = len(f.books) + 1
	f.books = append(f.books, book)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, book *books.Book) error {
	f.updated = book
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// genreSource feeds the taxonomy extractor a fixed accessible set.
type genreSource struct{}

func (genreSource) DistinctValues(context.Context, string, string) ([]*string, error) {
	return []*string{pointer.To("Classics, Fantasy"), pointer.To("Fantasy, Young Adult")}, nil
}

func (genreSource) DistinctValuesWhere(context.Context, string, string, string, string) ([]*string, error) {
	return nil, nil
}

type testPrincipal struct {
	username string
	role     string
}

func (p testPrincipal) Username() string { return p.username }
func (p testPrincipal) Role() sec.UserRole {
	return sec.UserRole(p.role)
}

func newService(repo *fakeRepository) *books.Service {
	return books.NewService(repo, taxonomy.NewExtractor(genreSource{}), slog.Default())
}

/*
TestService_Create tests the book write path.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	author := testPrincipal{username: "anna", role: "user"}

	t.Run("valid_input", func(t *testing.T) {
		repo := &fakeRepository{}
		service := newService(repo)

		book, err := service.Create(ctx, author, books.CreateInput{
			Title:          "  The Hobbit ",
			Author:         " J.R.R. Tolkien ",
			Genres:         []string{"fantasy", "classics"},
			AvgRating:      pointer.To(4.28),
			NumRatings:     pointer.To(3618718),
			FirstPublished: pointer.To("1937-09-21"),
		})
		require.NoError(t, err)

		assert.Equal(t, "The Hobbit", book.Title)
		assert.Equal(t, "J.R.R. Tolkien", book.Author)
		assert.Equal(t, "Classics, Fantasy", pointer.Val(book.Genres))
		assert.Equal(t, 4.28, pointer.Val(book.AvgRating))
		assert.Equal(t, "1937-09-21", book.FirstPublished.String())
		assert.Equal(t, "anna", pointer.Val(book.CreatedBy))
		assert.Len(t, repo.books, 1)
	})

	t.Run("unknown_genre_rejected", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, books.CreateInput{
			Title:  "Some Book",
			Author: "Someone",
			Genres: []string{"Cooking"},
		})
		require.Error(t, err)
		assert.Equal(t, 422, apperr.As(err).HTTPStatus)
	})

	t.Run("rating_out_of_range", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, books.CreateInput{
			Title:     "Some Book",
			Author:    "Someone",
			AvgRating: pointer.To(5.5),
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})

	t.Run("missing_required_fields", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, books.CreateInput{})
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})

	t.Run("bad_first_published_date", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Create(ctx, author, books.CreateInput{
			Title:          "Some Book",
			Author:         "Someone",
			FirstPublished: pointer.To("21-09-1937"),
		})
		require.Error(t, err)
		assert.Equal(t, 422, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_Update tests owner-or-admin update semantics.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *fakeRepository {
		return &fakeRepository{books: []*books.Book{{
			ID:        1,
			Title:     "The Hobbit",
			Author:    "J.R.R. Tolkien",
			CreatedBy: pointer.To("anna"),
		}}}
	}

	t.Run("author_updates_own_record", func(t *testing.T) {
		repo := existing()
		service := newService(repo)

		book, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"The Hobbit", "J.R.R. Tolkien",
			books.UpdateInput{AvgRating: pointer.To(4.3)})
		require.NoError(t, err)

		assert.Equal(t, 4.3, pointer.Val(book.AvgRating))
		assert.Equal(t, "anna", pointer.Val(book.UpdatedBy))
		require.NotNil(t, repo.updated)
	})

	t.Run("admin_updates_any_record", func(t *testing.T) {
		service := newService(existing())

		_, err := service.Update(ctx, testPrincipal{"root", "admin"},
			"The Hobbit", "J.R.R. Tolkien",
			books.UpdateInput{NumRatings: pointer.To(4000000)})
		assert.NoError(t, err)
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		service := newService(existing())

		_, err := service.Update(ctx, testPrincipal{"mallory", "user"},
			"The Hobbit", "J.R.R. Tolkien",
			books.UpdateInput{AvgRating: pointer.To(1.0)})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 403, ae.HTTPStatus)
		assert.Equal(t, sec.AuthorOrAdminMessage, ae.Message)
	})

	t.Run("empty_payload_rejected", func(t *testing.T) {
		service := newService(existing())

		_, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"The Hobbit", "J.R.R. Tolkien", books.UpdateInput{})
		require.Error(t, err)
		assert.Equal(t, "No data input provided.", apperr.As(err).Message)
	})

	t.Run("all_blank_genres_treated_as_absent", func(t *testing.T) {
		service := newService(existing())

		_, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"The Hobbit", "J.R.R. Tolkien",
			books.UpdateInput{Genres: []string{"", "  "}})
		require.Error(t, err)
		assert.Equal(t, "No data input provided.", apperr.As(err).Message)
	})

	t.Run("missing_record", func(t *testing.T) {
		service := newService(&fakeRepository{})

		_, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"Nope", "Nobody", books.UpdateInput{AvgRating: pointer.To(2.0)})
		require.Error(t, err)
		assert.Equal(t, "Book not found", apperr.As(err).Message)
	})
}

/*
TestService_Delete tests owner-or-admin delete semantics.
*/
func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := &fakeRepository{books: []*books.Book{{
		ID: 7, Title: "Old Book", Author: "Someone", CreatedBy: pointer.To("anna"),
	}}}
	service := newService(repo)

	err := service.Delete(ctx, testPrincipal{"mallory", "user"}, "Old Book", "Someone")
	require.Error(t, err)
	assert.Equal(t, 403, apperr.As(err).HTTPStatus)

	err = service.Delete(ctx, testPrincipal{"anna", "user"}, "Old Book", "Someone")
	require.NoError(t, err)
	assert.Equal(t, []int{7}, repo.deleted)
}
