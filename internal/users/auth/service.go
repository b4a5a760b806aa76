// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
)

// # Service Layer

// Service orchestrates business logic for the authentication lifecycle.
//
// It ensures that registration, credential verification, and refresh-token
// rotation follow established business constraints.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokens            TokenProvider
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokens TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokens:            tokens,
		logger:            logger,
	}
}

// # Domain Errors

// UserNotFound renders the exact lookup message clients rely on. It is shared
// with the account package, which resolves users by username as well.
func UserNotFound(username string) *apperr.AppError {
	return &apperr.AppError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("User '%s' not found in the database.", username),
		HTTPStatus: http.StatusNotFound,
	}
}

var (
	errEmailTaken     = apperr.Conflict("A user with that email already exists.")
	errUsernameTaken  = apperr.Conflict("A user with that username already exists.")
	errPasswordsMatch = apperr.ValidationError("Passwords does not match.")
	errBadPassword    = apperr.Unauthorized("Failed Authentication - incorrect password.")
	errInactiveUser   = apperr.Forbidden("Inactive user")
	errBadRefresh     = apperr.Unauthorized("Invalid or expired refresh token.")
)

// # Registration

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	FirstName       *string
	LastName        *string
}

/*
Register creates a new user account.

Description: Verifies identity uniqueness, hashes the password, and persists
the account. Every self-registered account starts with the 'user' role;
administrators are promoted out of band.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: The created account
  - error: Conflict for duplicate identities, validation failures
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {

	// 1. The two password fields must agree before anything touches storage.
	if input.Password != input.PasswordConfirm {
		return nil, errPasswordsMatch
	}

	// 2. Business: usernames and emails are unique identities.
	if _, err := service.userRepository.FindByEmail(ctx, input.Email); err == nil {
		return nil, errEmailTaken
	} else if !isNotFound(err) {
		return nil, err
	}

	if _, err := service.userRepository.FindByUsername(ctx, input.Username); err == nil {
		return nil, errUsernameTaken
	} else if !isNotFound(err) {
		return nil, err
	}

	// 3. Hash the credentials.
	passwordHash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         sec.RoleUser,
		IsActive:     true,
	}

	// 4. Persist. A concurrent duplicate still surfaces as a conflict here.
	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.Int("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// # Authentication

// LoginInput carries the credentials presented at login.
type LoginInput struct {
	Username string
	Password string
}

/*
Login authenticates a user and establishes a session.

Description: Resolves the account by username, verifies the password hash, and
issues an access token plus a rotatable refresh token.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Access token, refresh token, and the user profile
  - error: NotFound for unknown users, Unauthorized for bad credentials
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {

	// 1. Resolve the account. The lookup failure is deliberately explicit
	//    about the username, matching the API contract.
	user, err := service.userRepository.FindByUsername(ctx, input.Username)
	if err != nil {
		if isNotFound(err) {
			return nil, UserNotFound(input.Username)
		}
		return nil, err
	}

	// 2. Verify credentials.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.logger.Warn("login_failed", slog.String("username", input.Username))
		return nil, errBadPassword
	}

	// 3. Deactivated accounts keep their data but cannot sign in.
	if !user.IsActive {
		return nil, errInactiveUser
	}

	// 4. Issue the token pair.
	session, err := service.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in", slog.Int("user_id", user.ID))
	return session, nil
}

/*
Logout terminates a session by revoking its refresh token.

Description: Idempotent; revoking an unknown or already-revoked token succeeds.

Parameters:
  - context: context.Context
  - refreshToken: string (plaintext token from the client cookie)

Returns:
  - error: Storage failures only
*/
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	return service.sessionRepository.Revoke(ctx, sec.HashToken(refreshToken))
}

/*
RefreshSession rotates a refresh token and issues a fresh access token.

Description: Validates the presented token against the session store, retires
it, and mints a replacement pair. Single-use tokens keep a stolen refresh
token from being replayed after its legitimate owner rotates.

Parameters:
  - context: context.Context
  - refreshToken: string (plaintext token from the client cookie)

Returns:
  - *Session: New credentials
  - error: Unauthorized for unknown/expired tokens
*/
func (service *Service) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	tokenHash := sec.HashToken(refreshToken)

	// 1. Resolve the token to its owner.
	userID, err := service.sessionRepository.Lookup(ctx, tokenHash)
	if err != nil {
		if isNotFound(err) {
			return nil, errBadRefresh
		}
		return nil, err
	}

	// 2. Retire the presented token before minting a replacement.
	if err := service.sessionRepository.Revoke(ctx, tokenHash); err != nil {
		return nil, err
	}

	// 3. The account must still exist and be active.
	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, errBadRefresh
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errInactiveUser
	}

	return service.issueSession(ctx, user)
}

// issueSession mints an access/refresh token pair for an authenticated user.
func (service *Service) issueSession(ctx context.Context, user *User) (*Session, error) {
	accessToken, err := service.tokens.GenerateAccessToken(
		strconv.Itoa(user.ID), user.Username, string(user.Role), AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	if err := service.sessionRepository.Store(ctx, sec.HashToken(refreshToken), user.ID, RefreshTokenTTL); err != nil {
		return nil, err
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: time.Now().Add(RefreshTokenTTL),
		User:                  user,
	}, nil
}

func isNotFound(err error) bool {
	if errors.Is(err, dberr.ErrNotFound) {
		return true
	}
	appErr := apperr.As(err)
	return appErr != nil && appErr.HTTPStatus == http.StatusNotFound
}
