// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package auth_test

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
	"github.com/amwozniak/entertainment-api/internal/platform/sec"
	"github.com/amwozniak/entertainment-api/internal/users/auth"
)

// # Test Doubles

type fakeUserRepository struct {
	users  []*auth.User
	nextID int
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepository) FindByID(_ context.Context, id int) (*auth.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(strings.TrimSpace(user.Username), strings.TrimSpace(username)) {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(strings.TrimSpace(user.Email), strings.TrimSpace(email)) {
			return user, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeUserRepository) Update(_ context.Context, _ *auth.User) error { return nil }

func (f *fakeUserRepository) UpdatePassword(_ context.Context, _ int, _ string) error { return nil }

func (f *fakeUserRepository) Delete(_ context.Context, _ int) error { return nil }

type fakeSessionRepository struct {
	sessions map[string]int
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]int{}}
}

func (f *fakeSessionRepository) Store(_ context.Context, tokenHash string, userID int, _ time.Duration) error {
	f.sessions[tokenHash] = userID
	return nil
}

func (f *fakeSessionRepository) Lookup(_ context.Context, tokenHash string) (int, error) {
	userID, ok := f.sessions[tokenHash]
	if !ok {
		return 0, apperr.NotFound("Session")
	}
	return userID, nil
}

func (f *fakeSessionRepository) Revoke(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

func (f *fakeSessionRepository) RevokeAll(_ context.Context, userID int) error {
	for hash, owner := range f.sessions {
		if owner == userID {
			delete(f.sessions, hash)
		}
	}
	return nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateAccessToken(_, username, _ string, _ time.Duration) (string, error) {
	return "access-token-" + username, nil
}

func newService(users *fakeUserRepository, sessions *fakeSessionRepository) *auth.Service {
	return auth.NewService(users, sessions, fakeTokens{}, slog.Default())
}

func registeredUser(t *testing.T, service *auth.Service, username, email, password string) *auth.User {
	t.Helper()
	user, err := service.Register(context.Background(), auth.RegisterInput{
		Username:        username,
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
	})
	require.NoError(t, err)
	return user
}

// # Registration

func TestService_Register(t *testing.T) {
	t.Run("creates_user_with_default_role", func(t *testing.T) {
		service := newService(&fakeUserRepository{}, newFakeSessionRepository())

		first := "Anna"
		user, err := service.Register(context.Background(), auth.RegisterInput{
			Username:        "annareads",
			Email:           "anna@example.com",
			Password:        "correct horse",
			PasswordConfirm: "correct horse",
			FirstName:       &first,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, sec.RoleUser, user.Role)
		assert.True(t, user.IsActive)
		assert.True(t, sec.CheckPasswordHash("correct horse", user.PasswordHash))
	})

	t.Run("rejects_mismatched_passwords", func(t *testing.T) {
		service := newService(&fakeUserRepository{}, newFakeSessionRepository())

		_, err := service.Register(context.Background(), auth.RegisterInput{
			Username:        "annareads",
			Email:           "anna@example.com",
			Password:        "correct horse",
			PasswordConfirm: "battery staple",
		})

		require.Error(t, err)
		assert.Equal(t, "Passwords does not match.", err.Error())
		assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
	})

	t.Run("rejects_duplicate_email", func(t *testing.T) {
		service := newService(&fakeUserRepository{}, newFakeSessionRepository())
		registeredUser(t, service, "annareads", "anna@example.com", "correct horse")

		_, err := service.Register(context.Background(), auth.RegisterInput{
			Username:        "othername",
			Email:           "anna@example.com",
			Password:        "correct horse",
			PasswordConfirm: "correct horse",
		})

		require.Error(t, err)
		assert.Equal(t, "A user with that email already exists.", err.Error())
		assert.Equal(t, http.StatusConflict, apperr.As(err).HTTPStatus)
	})

	t.Run("rejects_duplicate_username", func(t *testing.T) {
		service := newService(&fakeUserRepository{}, newFakeSessionRepository())
		registeredUser(t, service, "annareads", "anna@example.com", "correct horse")

		_, err := service.Register(context.Background(), auth.RegisterInput{
			Username:        "AnnaReads",
			Email:           "other@example.com",
			Password:        "correct horse",
			PasswordConfirm: "correct horse",
		})

		require.Error(t, err)
		assert.Equal(t, "A user with that username already exists.", err.Error())
	})
}

// # Authentication

func TestService_Login(t *testing.T) {
	t.Run("issues_token_pair", func(t *testing.T) {
		sessions := newFakeSessionRepository()
		service := newService(&fakeUserRepository{}, sessions)
		registeredUser(t, service, "annareads", "anna@example.com", "correct horse")

		session, err := service.Login(context.Background(), auth.LoginInput{
			Username: "annareads",
			Password: "correct horse",
		})

		require.NoError(t, err)
		assert.Equal(t, "access-token-annareads", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.Len(t, sessions.sessions, 1)
		assert.Contains(t, sessions.sessions, sec.HashToken(session.RefreshToken))
	})

	t.Run("unknown_user_is_explicit", func(t *testing.T) {
		service := newService(&fakeUserRepository{}, newFakeSessionRepository())

		_, err := service.Login(context.Background(), auth.LoginInput{
			Username: "ghost",
			Password: "whatever",
		})

		require.Error(t, err)
		assert.Equal(t, "User 'ghost' not found in the database.", err.Error())
		assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)
	})

	t.Run("wrong_password", func(t *testing.T) {
		service := newService(&fakeUserRepository{}, newFakeSessionRepository())
		registeredUser(t, service, "annareads", "anna@example.com", "correct horse")

		_, err := service.Login(context.Background(), auth.LoginInput{
			Username: "annareads",
			Password: "battery staple",
		})

		require.Error(t, err)
		assert.Equal(t, "Failed Authentication - incorrect password.", err.Error())
		assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
	})

	t.Run("inactive_account", func(t *testing.T) {
		users := &fakeUserRepository{}
		service := newService(users, newFakeSessionRepository())
		user := registeredUser(t, service, "annareads", "anna@example.com", "correct horse")
		user.IsActive = false

		_, err := service.Login(context.Background(), auth.LoginInput{
			Username: "annareads",
			Password: "correct horse",
		})

		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperr.As(err).HTTPStatus)
	})
}

// # Session Rotation

func TestService_RefreshSession(t *testing.T) {
	t.Run("rotates_refresh_token", func(t *testing.T) {
		sessions := newFakeSessionRepository()
		service := newService(&fakeUserRepository{}, sessions)
		registeredUser(t, service, "annareads", "anna@example.com", "correct horse")

		initial, err := service.Login(context.Background(), auth.LoginInput{
			Username: "annareads",
			Password: "correct horse",
		})
		require.NoError(t, err)

		rotated, err := service.RefreshSession(context.Background(), initial.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, initial.RefreshToken, rotated.RefreshToken)

		// The presented token is single-use.
		_, err = service.RefreshSession(context.Background(), initial.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
	})

	t.Run("unknown_token", func(t *testing.T) {
		service := newService(&fakeUserRepository{}, newFakeSessionRepository())

		_, err := service.RefreshSession(context.Background(), "not-a-token")

		require.Error(t, err)
		assert.Equal(t, "Invalid or expired refresh token.", err.Error())
	})
}

func TestService_Logout(t *testing.T) {
	sessions := newFakeSessionRepository()
	service := newService(&fakeUserRepository{}, sessions)
	registeredUser(t, service, "annareads", "anna@example.com", "correct horse")

	session, err := service.Login(context.Background(), auth.LoginInput{
		Username: "annareads",
		Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, sessions.sessions)

	// Idempotent: revoking the same token again succeeds.
	require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
}
