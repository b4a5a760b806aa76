package books

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amwozniak/entertainment-api/internal/catalog/taxonomy"
	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/database/schema"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/internal/platform/validate"
	"github.com/amwozniak/entertainment-api/pkg/date"
	"github.com/amwozniak/entertainment-api/pkg/pointer"
	"github.com/amwozniak/entertainment-api/pkg/textcase"
)

type Service struct {
	repo     Repository
	taxonomy *taxonomy.Extractor
	logger   *slog.Logger
}

func NewService(repo Repository, extractor *taxonomy.Extractor, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		taxonomy: extractor,
		logger:   logger,
	}
}

// Genres lists every atomic genre currently present in the catalog, in the
// default acronym-preserving casing, sorted.
func (service *Service) Genres(ctx context.Context) ([]string, error) {
	return service.taxonomy.UniqueRowData(ctx,
		schema.Book.Table, schema.Book.Genres, textcase.ModeNone)
}

func (service *Service) List(ctx context.Context, limit, offset int) ([]*Book, int, error) {
	return service.repo.List(ctx, limit, offset)
}

func (service *Service) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Book, int, error) {
	return service.repo.Search(ctx, filter, limit, offset)
}

func (service *Service) Create(ctx context.Context, principal sec.Principal, input CreateInput) (*Book, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title)
	v.Required("author", input.Author)
	if input.AvgRating != nil {
		v.Custom("avg_rating", *input.AvgRating < 0 || *input.AvgRating > 5, "Must be between 0 and 5")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	genres, err := service.checkGenres(ctx, input.Genres)
	if err != nil {
		return nil, err
	}

	book := &Book{
		Title:       strings.TrimSpace(input.Title),
		Author:      strings.TrimSpace(input.Author),
		Description: input.Description,
		Genres:      genres,
		AvgRating:   input.AvgRating,
		NumRatings:  input.NumRatings,
		CreatedBy:   pointer.To(principal.Username()),
	}

	if input.FirstPublished != nil && strings.TrimSpace(*input.FirstPublished) != "" {
		published, err := validate.ParseDate(*input.FirstPublished)
		if err != nil {
			return nil, err
		}
		book.FirstPublished = pointer.To(date.Of(published))
	}

	if err := service.repo.Insert(ctx, book); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "book added",
		slog.String("title", book.Title), slog.String("user", principal.Username()))
	return book, nil
}

func (service *Service) Update(ctx context.Context, principal sec.Principal, title, author string, input UpdateInput) (*Book, error) {
	book, err := service.repo.GetByKey(ctx, title, author)
	if err != nil {
		return nil, notFound(err)
	}

	if err := sec.CheckAuthorOrAdmin(principal, pointer.Val(book.CreatedBy)); err != nil {
		return nil, err
	}

	changed := false
	if input.Title != nil {
		book.Title = strings.TrimSpace(*input.Title)
		changed = true
	}
	if input.Author != nil {
		book.Author = strings.TrimSpace(*input.Author)
		changed = true
	}
	if input.Description != nil {
		book.Description = input.Description
		changed = true
	}
	if cleaned := dropBlank(input.Genres); len(cleaned) > 0 {
		genres, err := service.checkGenres(ctx, cleaned)
		if err != nil {
			return nil, err
		}
		book.Genres = genres
		changed = true
	}
	if input.AvgRating != nil {
		if *input.AvgRating < 0 || *input.AvgRating > 5 {
			return nil, validate.RequiredError("avg_rating", "Must be between 0 and 5")
		}
		book.AvgRating = input.AvgRating
		changed = true
	}
	if input.NumRatings != nil {
		book.NumRatings = input.NumRatings
		changed = true
	}
	if input.FirstPublished != nil {
		published, err := validate.ParseDate(*input.FirstPublished)
		if err != nil {
			return nil, err
		}
		book.FirstPublished = pointer.To(date.Of(published))
		changed = true
	}

	if !changed {
		return nil, apperr.ValidationError("No data input provided.")
	}

	book.UpdatedBy = pointer.To(principal.Username())
	if err := service.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "book updated",
		slog.String("title", book.Title), slog.String("user", principal.Username()))
	return book, nil
}

func (service *Service) Delete(ctx context.Context, principal sec.Principal, title, author string) error {
	book, err := service.repo.GetByKey(ctx, title, author)
	if err != nil {
		return notFound(err)
	}

	if err := sec.CheckAuthorOrAdmin(principal, pointer.Val(book.CreatedBy)); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, book.ID); err != nil {
		return err
	}

	service.logger.DebugContext(ctx, "book deleted",
		slog.String("title", book.Title), slog.String("user", principal.Username()))
	return nil
}

func (service *Service) checkGenres(ctx context.Context, genres []string) (*string, error) {
	cleaned := dropBlank(genres)
	if len(cleaned) == 0 {
		return nil, nil
	}

	accessible, err := service.Genres(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := taxonomy.CheckItems(cleaned, accessible, ""); err != nil {
		return nil, err
	}

	stored, ok := taxonomy.EncodeList(cleaned, textcase.ModeNone)
	if !ok {
		return nil, nil
	}
	return pointer.To(stored), nil
}

func dropBlank(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			cleaned = append(cleaned, item)
		}
	}
	return cleaned
}

func notFound(err error) error {
	if ae := apperr.As(err); ae != nil && ae.HTTPStatus == 404 {
		return apperr.NotFound("Book")
	}
	return err
}
