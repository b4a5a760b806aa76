package songs

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
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

const subgenreError = "Invalid subgenre: check 'get genres' for list of accessible subgenres."

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

// Genres maps every playlist genre to its distinct subgenres.
func (service *Service) Genres(ctx context.Context) (*GenreMap, error) {
	pairs, err := service.repo.DistinctGenrePairs(ctx)
	if err != nil {
		return nil, err
	}

	result := &GenreMap{
		Genres:    make([]string, 0),
		Subgenres: make(map[string][]string),
	}
	seen := make(map[string]map[string]struct{})

	for _, pair := range pairs {
		if pair.Genre == nil {
			continue
		}
		genre := textcase.SmartTitle(strings.TrimSpace(*pair.Genre), textcase.ModeNone)
		if genre == "" {
			continue
		}
		if _, ok := seen[genre]; !ok {
			seen[genre] = make(map[string]struct{})
			result.Genres = append(result.Genres, genre)
			result.Subgenres[genre] = make([]string, 0)
		}
		if pair.Subgenre == nil {
			continue
		}
		subgenre := textcase.SmartTitle(strings.TrimSpace(*pair.Subgenre), textcase.ModeNone)
		if subgenre == "" {
			continue
		}
		if _, ok := seen[genre][subgenre]; !ok {
			seen[genre][subgenre] = struct{}{}
			result.Subgenres[genre] = append(result.Subgenres[genre], subgenre)
		}
	}

	sort.Strings(result.Genres)
	for genre := range result.Subgenres {
		sort.Strings(result.Subgenres[genre])
	}
	return result, nil
}

func (service *Service) List(ctx context.Context, limit, offset int) ([]*Song, int, error) {
	return service.repo.List(ctx, limit, offset)
}

func (service *Service) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Song, int, error) {
	return service.repo.Search(ctx, filter, limit, offset)
}

func (service *Service) Create(ctx context.Context, principal sec.Principal, input CreateInput) (*Song, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title)
	v.Required("artist", input.Artist)
	v.Required("album_name", input.AlbumName)
	if input.Popularity != nil {
		v.Range("song_popularity", *input.Popularity, 0, 100)
	}
	if input.DurationMS != nil {
		v.Custom("duration_ms", *input.DurationMS <= 0, "Must be positive")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	song := &Song{
		TrackID:      input.TrackID,
		Title:        strings.TrimSpace(input.Title),
		Artist:       strings.TrimSpace(input.Artist),
		Popularity:   input.Popularity,
		AlbumID:      input.AlbumID,
		AlbumName:    strings.TrimSpace(input.AlbumName),
		PlaylistID:   input.PlaylistID,
		PlaylistName: input.PlaylistName,
		DurationMS:   input.DurationMS,
		CreatedBy:    pointer.To(principal.Username()),
	}

	if input.AlbumPremiere != nil && strings.TrimSpace(*input.AlbumPremiere) != "" {
		parsed, err := validate.ParseDate(*input.AlbumPremiere)
		if err != nil {
			return nil, err
		}
		song.AlbumPremiere = pointer.To(date.Of(parsed))
	}

	genre, err := service.checkList(ctx, schema.Song.PlaylistGenre, input.PlaylistGenre, "")
	if err != nil {
		return nil, err
	}
	subgenre, err := service.checkList(ctx, schema.Song.PlaylistSubgenre, input.PlaylistSubgenre, subgenreError)
	if err != nil {
		return nil, err
	}
	song.PlaylistGenre = genre
	song.PlaylistSubgenre = subgenre

	// A lone subgenre implies its parent genre. An unknown subgenre just
	// skips the inference; any other failure is a real database error.
	if song.PlaylistGenre == nil && len(dropBlank(input.PlaylistSubgenre)) > 0 {
		parent, err := service.taxonomy.GenreBySubgenre(ctx, schema.Song.Table,
			schema.Song.PlaylistGenre, schema.Song.PlaylistSubgenre,
			strings.TrimSpace(input.PlaylistSubgenre[0]))
		switch {
		case err == nil:
			song.PlaylistGenre = pointer.To(textcase.SmartTitle(parent, textcase.ModeNone))
		case apperr.As(err) == nil || apperr.As(err).HTTPStatus != http.StatusNotFound:
			return nil, err
		}
	}

	if err := service.repo.Insert(ctx, song); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "song added",
		slog.String("title", song.Title), slog.String("user", principal.Username()))
	return song, nil
}

func (service *Service) Update(ctx context.Context, principal sec.Principal, title, artist, albumName string, input UpdateInput) (*Song, error) {
	song, err := service.repo.GetByKey(ctx, title, artist, albumName)
	if err != nil {
		return nil, notFound(err)
	}

	if err := sec.CheckAuthorOrAdmin(principal, pointer.Val(song.CreatedBy)); err != nil {
		return nil, err
	}

	changed := false
	if input.TrackID != nil {
		song.TrackID = input.TrackID
		changed = true
	}
	if input.Title != nil {
		song.Title = strings.TrimSpace(*input.Title)
		changed = true
	}
	if input.Artist != nil {
		song.Artist = strings.TrimSpace(*input.Artist)
		changed = true
	}
	if input.Popularity != nil {
		if *input.Popularity < 0 || *input.Popularity > 100 {
			return nil, validate.RequiredError("song_popularity", "Must be between 0 and 100")
		}
		song.Popularity = input.Popularity
		changed = true
	}
	if input.AlbumID != nil {
		song.AlbumID = input.AlbumID
		changed = true
	}
	if input.AlbumName != nil {
		song.AlbumName = strings.TrimSpace(*input.AlbumName)
		changed = true
	}
	if input.AlbumPremiere != nil {
		parsed, err := validate.ParseDate(*input.AlbumPremiere)
		if err != nil {
			return nil, err
		}
		song.AlbumPremiere = pointer.To(date.Of(parsed))
		changed = true
	}
	if input.PlaylistID != nil {
		song.PlaylistID = input.PlaylistID
		changed = true
	}
	if input.PlaylistName != nil {
		song.PlaylistName = input.PlaylistName
		changed = true
	}
	if cleaned := dropBlank(input.PlaylistGenre); len(cleaned) > 0 {
		genre, err := service.checkList(ctx, schema.Song.PlaylistGenre, cleaned, "")
		if err != nil {
			return nil, err
		}
		song.PlaylistGenre = genre
		changed = true
	}
	if cleaned := dropBlank(input.PlaylistSubgenre); len(cleaned) > 0 {
		subgenre, err := service.checkList(ctx, schema.Song.PlaylistSubgenre, cleaned, subgenreError)
		if err != nil {
			return nil, err
		}
		song.PlaylistSubgenre = subgenre
		changed = true
	}
	if input.DurationMS != nil {
		if *input.DurationMS <= 0 {
			return nil, validate.RequiredError("duration_ms", "Must be positive")
		}
		song.DurationMS = input.DurationMS
		changed = true
	}

	if !changed {
		return nil, apperr.ValidationError("No data input provided.")
	}

	song.UpdatedBy = pointer.To(principal.Username())
	if err := service.repo.Update(ctx, song); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "song updated",
		slog.String("title", song.Title), slog.String("user", principal.Username()))
	return song, nil
}

func (service *Service) Delete(ctx context.Context, principal sec.Principal, title, artist, albumName string) error {
	song, err := service.repo.GetByKey(ctx, title, artist, albumName)
	if err != nil {
		return notFound(err)
	}

	if err := sec.CheckAuthorOrAdmin(principal, pointer.Val(song.CreatedBy)); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, song.ID); err != nil {
		return err
	}

	service.logger.DebugContext(ctx, "song deleted",
		slog.String("title", song.Title), slog.String("user", principal.Username()))
	return nil
}

// checkList validates one playlist taxonomy list against the values already
// present in that column and encodes the result for storage.
func (service *Service) checkList(ctx context.Context, column string, values []string, errMsg string) (*string, error) {
	cleaned := dropBlank(values)
	if len(cleaned) == 0 {
		return nil, nil
	}

	accessible, err := service.taxonomy.UniqueRowData(ctx,
		schema.Song.Table, column, textcase.ModeNone)
	if err != nil {
		return nil, err
	}
	if _, err := taxonomy.CheckItems(cleaned, accessible, errMsg); err != nil {
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
		return apperr.NotFound("Song")
	}
	return err
}
