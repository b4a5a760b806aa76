package assessment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/pkg/pointer"
)

var errNothingAssessed = &apperr.AppError{
	Code:       "NOT_FOUND",
	Message:    "User has not yet assessed any of the database records.",
	HTTPStatus: http.StatusNotFound,
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Search lists the principal's own assessments, filtered.
func (service *Service) Search(ctx context.Context, principal sec.Principal, filter SearchFilter, limit, offset int) ([]*Assessment, int, error) {
	hasAny, err := service.repo.HasAny(ctx, principal.Username())
	if err != nil {
		return nil, 0, err
	}
	if !hasAny {
		return nil, 0, errNothingAssessed
	}

	if filter.Category != "" {
		category, err := NormalizeCategory(filter.Category)
		if err != nil {
			return nil, 0, err
		}
		filter.Category = category
	}

	assessments, total, err := service.repo.SearchOwn(ctx, principal.Username(), filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if len(assessments) == 0 {
		return nil, 0, apperr.NotFound("Records")
	}
	return assessments, total, nil
}

func (service *Service) Create(ctx context.Context, principal sec.Principal, input CreateInput) (*Assessment, error) {
	category, err := NormalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}

	if input.Wishlist != nil {
		if err := CheckWishlist(*input.Wishlist); err != nil {
			return nil, err
		}
	}
	if input.PrivRate != nil {
		if err := CheckPrivRate(*input.PrivRate); err != nil {
			return nil, err
		}
	}
	if input.OfficialRate != nil && *input.OfficialRate != "" {
		if err := ValidateOfficialRate(string(*input.OfficialRate), category); err != nil {
			return nil, err
		}
	}

	title, err := service.repo.RecordTitle(ctx, category, input.RecordID)
	if err != nil {
		return nil, recordNotFound(err, category, input.RecordID)
	}

	assessment := &Assessment{
		Category:    category,
		RecordID:    input.RecordID,
		RecordTitle: title,
		Finished:    pointer.Fallback(input.Finished, false),
		Wishlist:    input.Wishlist,
		Watchlist:   pointer.Fallback(input.Watchlist, false),
		PrivRate:    input.PrivRate,
		PublComment: input.PublComment,
		PrivNotes:   input.PrivNotes,
		CreatedBy:   pointer.To(principal.Username()),
	}
	if input.OfficialRate != nil && *input.OfficialRate != "" {
		assessment.OfficialRate = pointer.To(string(*input.OfficialRate))
	}

	if err := service.repo.Insert(ctx, assessment); err != nil {
		if ae := apperr.As(err); ae != nil && ae.HTTPStatus == http.StatusConflict {
			return nil, apperr.Conflict(fmt.Sprintf(
				"A record with id '%d' from %s category has already been assessed.",
				input.RecordID, category))
		}
		return nil, err
	}

	service.logger.DebugContext(ctx, "assessment added",
		slog.String("category", category), slog.Int("record_id", input.RecordID),
		slog.String("user", principal.Username()))
	return assessment, nil
}

func (service *Service) Update(ctx context.Context, principal sec.Principal, categoryRaw string, recordID int, input UpdateInput) (*Assessment, error) {
	category, err := NormalizeCategory(categoryRaw)
	if err != nil {
		return nil, err
	}

	if _, err := service.repo.RecordTitle(ctx, category, recordID); err != nil {
		return nil, recordNotFound(err, category, recordID)
	}

	assessment, err := service.getForMutation(ctx, principal, category, recordID)
	if err != nil {
		return nil, err
	}

	if err := sec.CheckAuthorOrAdmin(principal, pointer.Val(assessment.CreatedBy)); err != nil {
		return nil, err
	}

	if input.Wishlist != nil {
		if err := CheckWishlist(*input.Wishlist); err != nil {
			return nil, err
		}
		assessment.Wishlist = input.Wishlist
	}
	if input.PrivRate != nil {
		if err := CheckPrivRate(*input.PrivRate); err != nil {
			return nil, err
		}
		assessment.PrivRate = input.PrivRate
	}
	if input.OfficialRate != nil && *input.OfficialRate != "" {
		if err := ValidateOfficialRate(string(*input.OfficialRate), category); err != nil {
			return nil, err
		}
		assessment.OfficialRate = pointer.To(string(*input.OfficialRate))
	}
	if input.Finished != nil {
		assessment.Finished = *input.Finished
	}
	if input.Watchlist != nil {
		assessment.Watchlist = *input.Watchlist
	}
	if input.PublComment != nil {
		assessment.PublComment = input.PublComment
	}
	if input.PrivNotes != nil {
		assessment.PrivNotes = input.PrivNotes
	}

	assessment.UpdatedBy = pointer.To(principal.Username())
	if err := service.repo.Update(ctx, assessment); err != nil {
		return nil, err
	}

	service.logger.DebugContext(ctx, "assessment updated",
		slog.String("category", category), slog.Int("record_id", recordID),
		slog.String("user", principal.Username()))
	return assessment, nil
}

func (service *Service) Delete(ctx context.Context, principal sec.Principal, categoryRaw string, recordID int) error {
	category, err := NormalizeCategory(categoryRaw)
	if err != nil {
		return err
	}

	assessment, err := service.getForMutation(ctx, principal, category, recordID)
	if err != nil {
		return err
	}

	if err := sec.CheckAuthorOrAdmin(principal, pointer.Val(assessment.CreatedBy)); err != nil {
		return err
	}

	if err := service.repo.Delete(ctx, assessment.ID); err != nil {
		return err
	}

	service.logger.DebugContext(ctx, "assessment deleted",
		slog.String("category", category), slog.Int("record_id", recordID),
		slog.String("user", principal.Username()))
	return nil
}

// getForMutation resolves the assessment a mutation targets: the caller's
// own row, or for admins any creator's row when the admin has none.
func (service *Service) getForMutation(ctx context.Context, principal sec.Principal, category string, recordID int) (*Assessment, error) {
	assessment, err := service.repo.GetByRecord(ctx, category, recordID, principal.Username())
	if err == nil {
		return assessment, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	if principal.Role().AtLeast(sec.RoleAdmin) {
		assessment, err = service.repo.GetAnyByRecord(ctx, category, recordID)
		if err == nil {
			return assessment, nil
		}
		if !isNotFound(err) {
			return nil, err
		}
	}

	return nil, apperr.NotFound("Assessment")
}

func isNotFound(err error) bool {
	if errors.Is(err, dberr.ErrNotFound) {
		return true
	}
	ae := apperr.As(err)
	return ae != nil && ae.HTTPStatus == http.StatusNotFound
}

// recordNotFound remaps a missing catalog record to the category-specific 404.
func recordNotFound(err error, category string, recordID int) error {
	if isNotFound(err) {
		return &apperr.AppError{
			Code: "NOT_FOUND",
			Message: fmt.Sprintf(
				"The record was not found in the database. Searched record: id '%d' in %s category.",
				recordID, category),
			HTTPStatus: http.StatusNotFound,
		}
	}
	return err
}
