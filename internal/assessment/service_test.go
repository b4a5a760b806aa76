package assessment_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amwozniak/entertainment-api/internal/assessment"
	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/pkg/pointer"
)

// fakeRepository keeps assessments in memory and resolves record titles from
// a fixed catalog.
type fakeRepository struct {
	assessments []*assessment.Assessment
	titles      map[string]map[int]string
	updated     *assessment.Assessment
	deleted     []int
}

func (f *fakeRepository) HasAny(_ context.Context, username string) (bool, error) {
	for _, a := range f.assessments {
		if pointer.Val(a.CreatedBy) == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) SearchOwn(_ context.Context, username string, filter assessment.SearchFilter, _, _ int) ([]*assessment.Assessment, int, error) {
	matches := make([]*assessment.Assessment, 0)
	for _, a := range f.assessments {
		if pointer.Val(a.CreatedBy) != username {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		matches = append(matches, a)
	}
	return matches, len(matches), nil
}

func (f *fakeRepository) GetByRecord(_ context.Context, category string, recordID int, createdBy string) (*assessment.Assessment, error) {
	for _, a := range f.assessments {
		if a.Category == category && a.RecordID == recordID && pointer.Val(a.CreatedBy) == createdBy {
			return a, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) GetAnyByRecord(_ context.Context, category string, recordID int) (*assessment.Assessment, error) {
	for _, a := range f.assessments {
		if a.Category == category && a.RecordID == recordID {
			return a, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) RecordTitle(_ context.Context, category string, recordID int) (string, error) {
	if title, ok := f.titles[category][recordID]; ok {
		return title, nil
	}
	return "", dberr.ErrNotFound
}

func (f *fakeRepository) Insert(_ context.Context, a *assessment.Assessment) error {
	for _, existing := range f.assessments {
		if existing.Category == a.Category && existing.RecordID == a.RecordID &&
			pointer.Val(existing.CreatedBy) == pointer.Val(a.CreatedBy) {
			return apperr.Conflict("A record with the same identifying fields already exists.")
		}
	}
	a.ID = len(f.assessments) + 1
	f.assessments = append(f.assessments, a)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, a *assessment.Assessment) error {
	f.updated = a
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type testPrincipal struct {
	username string
	role     string
}

func (p testPrincipal) Username() string   { return p.username }
func (p testPrincipal) Role() sec.UserRole { return sec.UserRole(p.role) }

func newRepo() *fakeRepository {
	return &fakeRepository{titles: map[string]map[int]string{
		"Movies": {1: "Deadpool & Wolverine"},
		"Books":  {3: "The Hobbit"},
	}}
}

func newService(repo *fakeRepository) *assessment.Service {
	return assessment.NewService(repo, slog.Default())
}

/*
TestService_Create tests the assessment write path.
*/
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	author := testPrincipal{username: "anna", role: "user"}

	t.Run("valid_input", func(t *testing.T) {
		repo := newRepo()
		service := newService(repo)

		created, err := service.Create(ctx, author, assessment.CreateInput{
			Category:     " movies ",
			RecordID:     1,
			Finished:     pointer.To(true),
			Wishlist:     pointer.To("Maybe someday"),
			OfficialRate: pointer.To(assessment.Rate("8")),
			PrivRate:     pointer.To("Awesome"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Movies", created.Category)
		assert.Equal(t, "Deadpool & Wolverine", created.RecordTitle)
		assert.True(t, created.Finished)
		assert.False(t, created.Watchlist)
		assert.Equal(t, "8", pointer.Val(created.OfficialRate))
		assert.Equal(t, "anna", pointer.Val(created.CreatedBy))
	})

	t.Run("unknown_category", func(t *testing.T) {
		service := newService(newRepo())

		_, err := service.Create(ctx, author, assessment.CreateInput{
			Category: "comics", RecordID: 1,
		})
		require.Error(t, err)
		assert.Equal(t, 422, apperr.As(err).HTTPStatus)
	})

	t.Run("missing_target_record", func(t *testing.T) {
		service := newService(newRepo())

		_, err := service.Create(ctx, author, assessment.CreateInput{
			Category: "Movies", RecordID: 99,
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 404, ae.HTTPStatus)
		assert.Contains(t, ae.Message, "id '99' in Movies category")
	})

	t.Run("duplicate_assessment_conflict", func(t *testing.T) {
		repo := newRepo()
		service := newService(repo)

		_, err := service.Create(ctx, author, assessment.CreateInput{Category: "Movies", RecordID: 1})
		require.NoError(t, err)

		_, err = service.Create(ctx, author, assessment.CreateInput{Category: "Movies", RecordID: 1})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, 409, ae.HTTPStatus)
		assert.Equal(t, "A record with id '1' from Movies category has already been assessed.", ae.Message)
	})

	t.Run("invalid_official_rate", func(t *testing.T) {
		service := newService(newRepo())

		_, err := service.Create(ctx, author, assessment.CreateInput{
			Category:     "Books",
			RecordID:     3,
			OfficialRate: pointer.To(assessment.Rate("7")),
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperr.As(err).HTTPStatus)
	})

	t.Run("invalid_wishlist", func(t *testing.T) {
		service := newService(newRepo())

		_, err := service.Create(ctx, author, assessment.CreateInput{
			Category: "Movies",
			RecordID: 1,
			Wishlist: pointer.To("invalid"),
		})
		require.Error(t, err)
		assert.Contains(t, apperr.As(err).Message, "Input should be 'Black list', 'Maybe someday', ")
	})

	t.Run("invalid_priv_rate", func(t *testing.T) {
		service := newService(newRepo())

		_, err := service.Create(ctx, author, assessment.CreateInput{
			Category: "Movies",
			RecordID: 1,
			PrivRate: pointer.To("invalid"),
		})
		require.Error(t, err)
		assert.Contains(t, apperr.As(err).Message, "Input should be 'Never again', 'Tragedy', ")
	})
}

/*
TestService_Search tests own-rows search semantics.
*/
func TestService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing_assessed_yet", func(t *testing.T) {
		service := newService(newRepo())

		_, _, err := service.Search(ctx, testPrincipal{"anna", "user"},
			assessment.SearchFilter{}, 10, 0)
		require.Error(t, err)
		assert.Equal(t, "User has not yet assessed any of the database records.",
			apperr.As(err).Message)
	})

	t.Run("no_matches", func(t *testing.T) {
		repo := newRepo()
		repo.assessments = []*assessment.Assessment{{
			ID: 1, Category: "Movies", RecordID: 1, CreatedBy: pointer.To("anna"),
		}}
		service := newService(repo)

		_, _, err := service.Search(ctx, testPrincipal{"anna", "user"},
			assessment.SearchFilter{Category: "Books"}, 10, 0)
		require.Error(t, err)
		assert.Equal(t, "Records not found", apperr.As(err).Message)
	})

	t.Run("own_rows_only", func(t *testing.T) {
		repo := newRepo()
		repo.assessments = []*assessment.Assessment{
			{ID: 1, Category: "Movies", RecordID: 1, CreatedBy: pointer.To("anna")},
			{ID: 2, Category: "Movies", RecordID: 1, CreatedBy: pointer.To("bob")},
		}
		service := newService(repo)

		results, total, err := service.Search(ctx, testPrincipal{"anna", "user"},
			assessment.SearchFilter{}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, "anna", pointer.Val(results[0].CreatedBy))
	})
}

/*
TestService_Update tests mutation targeting and authorization.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()

	seeded := func() *fakeRepository {
		repo := newRepo()
		repo.assessments = []*assessment.Assessment{{
			ID: 1, Category: "Movies", RecordID: 1,
			RecordTitle: "Deadpool & Wolverine", CreatedBy: pointer.To("anna"),
		}}
		return repo
	}

	t.Run("author_updates_own_assessment", func(t *testing.T) {
		repo := seeded()
		service := newService(repo)

		updated, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"movies", 1, assessment.UpdateInput{PrivRate: pointer.To("Good")})
		require.NoError(t, err)

		assert.Equal(t, "Good", pointer.Val(updated.PrivRate))
		assert.Equal(t, "anna", pointer.Val(updated.UpdatedBy))
		require.NotNil(t, repo.updated)
	})

	t.Run("admin_updates_another_users_assessment", func(t *testing.T) {
		service := newService(seeded())

		_, err := service.Update(ctx, testPrincipal{"root", "admin"},
			"Movies", 1, assessment.UpdateInput{Finished: pointer.To(true)})
		assert.NoError(t, err)
	})

	t.Run("missing_assessment", func(t *testing.T) {
		repo := newRepo()
		service := newService(repo)

		_, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"Movies", 1, assessment.UpdateInput{Finished: pointer.To(true)})
		require.Error(t, err)
		assert.Equal(t, "Assessment not found", apperr.As(err).Message)
	})

	t.Run("missing_catalog_record", func(t *testing.T) {
		service := newService(seeded())

		_, err := service.Update(ctx, testPrincipal{"anna", "user"},
			"Movies", 42, assessment.UpdateInput{Finished: pointer.To(true)})
		require.Error(t, err)
		assert.Equal(t, 404, apperr.As(err).HTTPStatus)
	})
}

/*
TestService_Delete tests mutation targeting and authorization.
*/
func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	repo := newRepo()
	repo.assessments = []*assessment.Assessment{{
		ID: 5, Category: "Books", RecordID: 3,
		RecordTitle: "The Hobbit", CreatedBy: pointer.To("anna"),
	}}
	service := newService(repo)

	err := service.Delete(ctx, testPrincipal{"mallory", "user"}, "Books", 3)
	require.Error(t, err)
	assert.Equal(t, "Assessment not found", apperr.As(err).Message)

	err = service.Delete(ctx, testPrincipal{"anna", "user"}, "Books", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, repo.deleted)
}
