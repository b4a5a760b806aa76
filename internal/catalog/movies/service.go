package movies

import (
	"context"
	"log/slog"
	"strings"

	"github.com/amwozniak/entertainment-api/internal/catalog/taxonomy"
	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/database/schema"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/internal/platform/validate"
	"github.com/amwozniak/entertainment-api/internal/reference"
	"github.com/amwozniak/entertainment-api/pkg/date"
	"github.com/amwozniak/entertainment-api/pkg/pointer"
	"github.com/amwozniak/entertainment-api/pkg/textcase"
)

type Service struct {
	repo      Repository
	taxonomy  *taxonomy.Extractor
	reference *reference.Service
	logger    *slog.Logger
}

func NewService(repo Repository, extractor *taxonomy.Extractor, ref *reference.Service, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		taxonomy:  extractor,
		reference: ref,
		logger:    logger,
	}
}

// Genres lists every atomic genre currently present in the catalog,
// lower-cased and sorted.
func (service *Service) Genres(ctx context.Context) ([]string, error) {
	return service.taxonomy.UniqueRowData(ctx,
		schema.Movie.Table, schema.Movie.Genres, textcase.ModeLower)
}

func (service *Service) List(ctx context.Context, limit, offset int) ([]*Movie, int, error) {
	return service.repo.List(ctx, limit, offset)
}

func (service *Service) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Movie, int, error) {
	return service.repo.Search(ctx, filter, limit, offset)
}

func (service *Service) Create(ctx context.Context, principal sec.Principal, input CreateInput) (*Movie, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title)
	v.Required("premiere", input.Premiere)
	v.Custom("genres", len(dropBlank(input.Genres)) == 0, "Provide at least one genre")
	if input.Score != nil {
		v.Custom("score", *input.Score < 0 || *input.Score > 10, "Must be between 0 and 10")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	premiere, err := validate.ParseDate(input.Premiere)
	if err != nil {
		return nil, err
	}

	genres, err := service.checkGenres(ctx, input.Genres)
	if err != nil {
		return nil, err
	}

	movie := &Movie{
		Title:     strings.TrimSpace(input.Title),
		Premiere:  date.Of(premiere),
		Score:     input.Score,
		Genres:    genres,
		Overview:  input.Overview,
		Crew:      input.Crew,
		OrigTitle: input.OrigTitle,
		Budget:    input.Budget,
		Revenue:   input.Revenue,
		CreatedBy: pointer.To(principal.Username()),
	}

	if input.Country != nil {
		alpha2, err := service.reference.CheckCountry(ctx, *input.Country)
		if err != nil {
			return nil, err
		}
		if alpha2 != "" {
			movie.Country = pointer.To(alpha2)
		}
	}
	if input.OrigLang != nil {
		name, err := service.reference.CheckLanguage(ctx, *input.OrigLang)
		if err != nil {
			return nil, err
		}
		if name != "" {
			movie.OrigLang = pointer.To(name)
		}
	}

	if err := service.repo.Insert(ctx, movie); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "movie added",
		slog.String("title", movie.Title), slog.String("user", principal.Username()))
	return movie, nil
}

func (service *Service) Update(ctx context.Context, principal sec.Principal, title, premiereRaw string, input UpdateInput) (*Movie, error) {
	premiere, err := validate.ParseDate(premiereRaw)
	if err != nil {
		return nil, err
	}

	movie, err := service.repo.GetByKey(ctx, title, date.Of(premiere))
	if err != nil {
		return nil, notFound(err)
	}

	if err := sec.CheckAuthorOrAdmin(principal, pointer.Val(movie.CreatedBy)); err != nil {
		return nil, err
	}

	changed := false
	if input.Title != nil {
		movie.Title = strings.TrimSpace(*input.Title)
		changed = true
	}
	if input.Premiere != nil {
		parsed, err := validate.ParseDate(*input.Premiere)
		if err != nil {
			return nil, err
		}
		movie.Premiere = date.Of(parsed)
		changed = true
	}
	if input.Score != nil {
		if *input.Score < 0 || *input.Score > 10 {
			return nil, validate.RequiredError("score", "Must be between 0 and 10")
		}
		movie.Score = input.Score
		changed = true
	}
	if cleaned := dropBlank(input.Genres); len(cleaned) > 0 {
		genres, err := service.checkGenres(ctx, cleaned)
		if err != nil {
			return nil, err
		}
		movie.Genres = genres
		changed = true
	}
	if input.Overview != nil {
		movie.Overview = input.Overview
		changed = true
	}
	if input.Crew != nil {
		movie.Crew = input.Crew
		changed = true
	}
	if input.OrigTitle != nil {
		movie.OrigTitle = input.OrigTitle
		changed = true
	}
	if input.OrigLang != nil {
		name, err := service.reference.CheckLanguage(ctx, *input.OrigLang)
		if err != nil {
			return nil, err
		}
		if name != "" {
			movie.OrigLang = pointer.To(name)
			changed = true
		}
	}
	if input.Budget != nil {
		movie.Budget = input.Budget
		changed = true
	}
	if input.Revenue != nil {
		movie.Revenue = input.Revenue
		changed = true
	}
	if input.Country != nil {
		alpha2, err := service.reference.CheckCountry(ctx, *input.Country)
		if err != nil {
			return nil, err
		}
		if alpha2 != "" {
			movie.Country = pointer.To(alpha2)
			changed = true
		}
	}

	if !changed {
		return nil, apperr.ValidationError("No data input provided.")
	}

	movie.UpdatedBy = pointer.To(principal.Username())
	if err := service.repo.Update(ctx, movie); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "movie updated",
		slog.String("title", movie.Title), slog.String("user", principal.Username()))
	return movie, nil
}

func (service *Service) Delete(ctx context.Context, principal sec.Principal, title, premiereRaw string) error {
	premiere, err := validate.ParseDate(premiereRaw)
	if err != nil {
		return err
	}

	movie, err := service.repo.GetByKey(ctx, title, date.Of(premiere))
	if err != nil {
		return notFound(err)
	}

	if err := sec.CheckAuthorOrAdmin(principal, pointer.Val(movie.CreatedBy)); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, movie.ID); err != nil {
		return err
	}

	service.logger.DebugContext(ctx, "movie deleted",
		slog.String("title", movie.Title), slog.String("user", principal.Username()))
	return nil
}

// checkGenres validates the submitted genres against the accessible set and
// encodes them into the canonical stored string.
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

// notFound remaps the generic repository miss to a movie-specific 404.
func notFound(err error) error {
	if ae := apperr.As(err); ae != nil && ae.HTTPStatus == 404 {
		return apperr.NotFound("Movie")
	}
	return err
}
