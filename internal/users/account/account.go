// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

/*
Package account handles user profile management and account security settings.

It provides functionalities for users to view and update their private identity
data, rotate their password, and close their account.

# Architecture

  - Domain: This package depends on the auth package for the User entity and
    its repository contracts.
  - Security: Mutations always target the authenticated user; reading another
    user's profile requires the admin role.
*/
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/internal/users/auth"
)

// # Domain Errors

var (
	errRestrictedAccess = apperr.Forbidden("Permission denied. Access to see other users' data is restricted.")
	errBadCurrent       = apperr.Unauthorized("Failed Authentication - incorrect current password.")
	errPasswordsMatch   = apperr.ValidationError("Passwords do not match.")
)

// # Service Layer

// Service orchestrates business logic for user accounts.
//
// It reuses the auth package repositories: accounts live in PostgreSQL and
// active sessions in Redis, so closing an account or rotating a password can
// sweep the user's sessions in the same operation.
type Service struct {
	accountRepository auth.UserRepository
	sessionRepository auth.SessionRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	accountRepo auth.UserRepository,
	sessionRepo auth.SessionRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRepository: sessionRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: int

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(ctx context.Context, userID int) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

/*
CheckUser retrieves another user's profile by username.

Description: Regular users may only look up themselves; the admin role may
inspect any account.

Parameters:
  - context: context.Context
  - principal: sec.Principal (the authenticated caller)
  - username: string (the profile being requested)

Returns:
  - *auth.User: The requested profile
  - error: Forbidden for cross-user access, NotFound for unknown usernames
*/
func (service *Service) CheckUser(ctx context.Context, principal sec.Principal, username string) (*auth.User, error) {

	// Business: Only admins can read other users' data.
	if principal.Username() != username && !principal.Role().AtLeast(sec.RoleAdmin) {
		return nil, errRestrictedAccess
	}

	user, err := service.accountRepository.FindByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, auth.UserNotFound(username)
		}
		return nil, err
	}
	return user, nil
}

func isNotFound(err error) bool {
	if errors.Is(err, dberr.ErrNotFound) {
		return true
	}
	appErr := apperr.As(err)
	return appErr != nil && appErr.HTTPStatus == http.StatusNotFound
}

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: int
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(ctx context.Context, userID int, input UpdateProfileInput) (*auth.User, error) {

	user, err := service.accountRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.Email != nil {
		user.Email = *input.Email
	}

	// Apply delta updates
	if input.FirstName != nil {
		user.FirstName = input.FirstName
	}

	// Apply delta updates
	if input.LastName != nil {
		user.LastName = input.LastName
	}

	// Persist changes
	if err := service.accountRepository.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.Int("user_id", userID))

	return user, nil
}

// # Security Management

/*
ChangePassword rotates the caller's password.

Description: Verifies the current password, stores the new hash, and revokes
every active session so stolen refresh tokens die with the old credential.

Parameters:
  - context: context.Context
  - userID: int
  - currentPassword: string
  - newPassword: string
  - newPasswordConfirm: string

Returns:
  - error: Unauthorized for a wrong current password, validation failures
*/
func (service *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword, newPasswordConfirm string) error {

	if newPassword != newPasswordConfirm {
		return errPasswordsMatch
	}

	user, err := service.accountRepository.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("account_service_password_lookup_failed: %w", err)
	}

	// Business: The caller must prove knowledge of the current credential.
	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return errBadCurrent
	}

	passwordHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_hash_failed: %w", err)
	}

	if err := service.accountRepository.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}

	// Security: all sessions issued under the old password are retired.
	if err := service.sessionRepository.RevokeAll(ctx, userID); err != nil {
		service.logger.Warn("session_sweep_failed", slog.Int("user_id", userID), slog.Any("error", err))
	}

	service.logger.Info("user_password_changed", slog.Int("user_id", userID))
	return nil
}

/*
DeleteAccount permanently removes the caller's account.

Description: Deletes the database record and sweeps all active sessions.

Parameters:
  - context: context.Context
  - userID: int

Returns:
  - error: Not found or execution failures
*/
func (service *Service) DeleteAccount(ctx context.Context, userID int) error {
	if err := service.accountRepository.Delete(ctx, userID); err != nil {
		return err
	}

	if err := service.sessionRepository.RevokeAll(ctx, userID); err != nil {
		service.logger.Warn("session_sweep_failed", slog.Int("user_id", userID), slog.Any("error", err))
	}

	service.logger.Info("user_account_deleted", slog.Int("user_id", userID))
	return nil
}
