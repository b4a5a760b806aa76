package games

import (
	"context"
	"fmt"
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

// choiceColumns maps the /choices field names to their backing columns.
var choiceColumns = map[string]string{
	"review_overall":  schema.Game.ReviewOverall,
	"review_detailed": schema.Game.ReviewDetailed,
	"genres":          schema.Game.Genres,
	"game_type":       schema.Game.GameType,
}

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

// Choices lists the distinct atomic values of one taxonomy field.
func (service *Service) Choices(ctx context.Context, field string) ([]string, error) {
	column, ok := choiceColumns[field]
	if !ok {
		return nil, apperr.Unprocessable(
			"Invalid field. Accessible fields: review_overall, review_detailed, genres, game_type.")
	}
	return service.taxonomy.UniqueRowData(ctx,
		schema.Game.Table, column, textcase.ModeNone)
}

func (service *Service) List(ctx context.Context, limit, offset int) ([]*Game, int, error) {
	return service.repo.List(ctx, limit, offset)
}

func (service *Service) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Game, int, error) {
	return service.repo.Search(ctx, filter, limit, offset)
}

func (service *Service) Create(ctx context.Context, principal sec.Principal, input CreateInput) (*Game, error) {
	v := &validate.Validator{}
	v.Required("title", input.Title)
	v.Required("premiere", input.Premiere)
	v.Required("developer", input.Developer)
	v.Custom("genres", len(dropBlank(input.Genres)) == 0, "Provide at least one genre")
	if input.PriceEUR != nil {
		v.Custom("price_eur", *input.PriceEUR < 0, "Must not be negative")
	}
	if input.PriceDiscountedEUR != nil {
		v.Custom("price_discounted_eur", *input.PriceDiscountedEUR < 0, "Must not be negative")
	}
	if input.ReviewsNumber != nil {
		v.Custom("reviews_number", *input.ReviewsNumber < 0, "Must not be negative")
	}
	if input.ReviewsPositive != nil {
		v.Custom("reviews_positive",
			*input.ReviewsPositive < 0 || *input.ReviewsPositive > 1, "Must be between 0 and 1")
	}
	if input.ReviewOverall != nil {
		v.OneOf("review_overall", *input.ReviewOverall, ReviewOverallValues...)
	}
	if input.ReviewDetailed != nil {
		v.OneOf("review_detailed", *input.ReviewDetailed, ReviewDetailedValues...)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	premiere, err := validate.ParseDate(input.Premiere)
	if err != nil {
		return nil, err
	}

	genres, err := service.checkTagged(ctx, "genres", schema.Game.Genres, input.Genres)
	if err != nil {
		return nil, err
	}
	gameType, err := service.checkTagged(ctx, "game_type", schema.Game.GameType, input.GameType)
	if err != nil {
		return nil, err
	}

	game := &Game{
		Title:              strings.TrimSpace(input.Title),
		Premiere:           date.Of(premiere),
		Developer:          strings.TrimSpace(input.Developer),
		Publisher:          input.Publisher,
		Genres:             genres,
		GameType:           gameType,
		PriceEUR:           input.PriceEUR,
		PriceDiscountedEUR: input.PriceDiscountedEUR,
		ReviewOverall:      input.ReviewOverall,
		ReviewDetailed:     input.ReviewDetailed,
		ReviewsNumber:      input.ReviewsNumber,
		ReviewsPositive:    input.ReviewsPositive,
		CreatedBy:          pointer.To(principal.Username()),
	}

	if err := service.repo.Insert(ctx, game); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "game added",
		slog.String("title", game.Title), slog.String("user", principal.Username()))
	return game, nil
}

func (service *Service) Update(ctx context.Context, principal sec.Principal, title, premiereRaw, developer string, input UpdateInput) (*Game, error) {
	premiere, err := validate.ParseDate(premiereRaw)
	if err != nil {
		return nil, err
	}

	game, err := service.repo.GetByKey(ctx, title, date.Of(premiere), developer)
	if err != nil {
		return nil, notFound(err)
	}

	if err := sec.CheckAuthorOrAdmin(principal, pointer.Val(game.CreatedBy)); err != nil {
		return nil, err
	}

	changed := false
	if input.Title != nil {
		game.Title = strings.TrimSpace(*input.Title)
		changed = true
	}
	if input.Premiere != nil {
		parsed, err := validate.ParseDate(*input.Premiere)
		if err != nil {
			return nil, err
		}
		game.Premiere = date.Of(parsed)
		changed = true
	}
	if input.Developer != nil {
		game.Developer = strings.TrimSpace(*input.Developer)
		changed = true
	}
	if input.Publisher != nil {
		game.Publisher = input.Publisher
		changed = true
	}
	if cleaned := dropBlank(input.Genres); len(cleaned) > 0 {
		genres, err := service.checkTagged(ctx, "genres", schema.Game.Genres, cleaned)
		if err != nil {
			return nil, err
		}
		game.Genres = genres
		changed = true
	}
	if cleaned := dropBlank(input.GameType); len(cleaned) > 0 {
		gameType, err := service.checkTagged(ctx, "game_type", schema.Game.GameType, cleaned)
		if err != nil {
			return nil, err
		}
		game.GameType = gameType
		changed = true
	}
	if input.PriceEUR != nil {
		if *input.PriceEUR < 0 {
			return nil, validate.RequiredError("price_eur", "Must not be negative")
		}
		game.PriceEUR = input.PriceEUR
		changed = true
	}
	if input.PriceDiscountedEUR != nil {
		if *input.PriceDiscountedEUR < 0 {
			return nil, validate.RequiredError("price_discounted_eur", "Must not be negative")
		}
		game.PriceDiscountedEUR = input.PriceDiscountedEUR
		changed = true
	}
	if input.ReviewOverall != nil {
		v := &validate.Validator{}
		if err := v.OneOf("review_overall", *input.ReviewOverall, ReviewOverallValues...).Err(); err != nil {
			return nil, err
		}
		game.ReviewOverall = input.ReviewOverall
		changed = true
	}
	if input.ReviewDetailed != nil {
		v := &validate.Validator{}
		if err := v.OneOf("review_detailed", *input.ReviewDetailed, ReviewDetailedValues...).Err(); err != nil {
			return nil, err
		}
		game.ReviewDetailed = input.ReviewDetailed
		changed = true
	}
	if input.ReviewsNumber != nil {
		if *input.ReviewsNumber < 0 {
			return nil, validate.RequiredError("reviews_number", "Must not be negative")
		}
		game.ReviewsNumber = input.ReviewsNumber
		changed = true
	}
	if input.ReviewsPositive != nil {
		if *input.ReviewsPositive < 0 || *input.ReviewsPositive > 1 {
			return nil, validate.RequiredError("reviews_positive", "Must be between 0 and 1")
		}
		game.ReviewsPositive = input.ReviewsPositive
		changed = true
	}

	if !changed {
		return nil, apperr.ValidationError("No data input provided.")
	}

	game.UpdatedBy = pointer.To(principal.Username())
	if err := service.repo.Update(ctx, game); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "game updated",
		slog.String("title", game.Title), slog.String("user", principal.Username()))
	return game, nil
}

func (service *Service) Delete(ctx context.Context, principal sec.Principal, title, premiereRaw, developer string) error {
	premiere, err := validate.ParseDate(premiereRaw)
	if err != nil {
		return err
	}

	game, err := service.repo.GetByKey(ctx, title, date.Of(premiere), developer)
	if err != nil {
		return notFound(err)
	}

	if err := sec.CheckAuthorOrAdmin(principal, pointer.Val(game.CreatedBy)); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, game.ID); err != nil {
		return err
	}

	service.logger.DebugContext(ctx, "game deleted",
		slog.String("title", game.Title), slog.String("user", principal.Username()))
	return nil
}

// checkTagged validates one taxonomy field (genres or game_type) against the
// values already present in that column and encodes the result for storage.
func (service *Service) checkTagged(ctx context.Context, field, column string, values []string) (*string, error) {
	cleaned := dropBlank(values)
	if len(cleaned) == 0 {
		return nil, nil
	}

	accessible, err := service.taxonomy.UniqueRowData(ctx,
		schema.Game.Table, column, textcase.ModeNone)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Invalid %s: check 'get choices' for list of accessible %s.", field, field)
	if _, err := taxonomy.CheckItems(cleaned, accessible, message); err != nil {
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
		return apperr.NotFound("Game")
	}
	return err
}
