// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// # Repository Contracts

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	/*
		Create persists a new user and hydrates its database-assigned fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Constraint violations or connectivity errors
	*/
	Create(context context.Context, user *User) error

	/*
		FindByID retrieves a user record by its numeric identifier.

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id int) (*User, error)

	/*
		FindByUsername retrieves a user record by its unique username.

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound or database errors
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail retrieves a user record by its unique email address.

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound or database errors
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Update synchronizes the mutable profile fields of an existing user.

		Returns:
		  - error: apperr.NotFound when the user vanished, or database errors
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePassword replaces the stored password hash of a user.

		Returns:
		  - error: apperr.NotFound or database errors
	*/
	UpdatePassword(context context.Context, id int, passwordHash string) error

	/*
		Delete removes a user account permanently.

		Returns:
		  - error: apperr.NotFound or database errors
	*/
	Delete(context context.Context, id int) error
}

// SessionRepository defines the volatile storage contract for refresh tokens.
//
// Tokens are stored hashed; the plaintext value only ever travels to the client.
type SessionRepository interface {
	/*
		Store associates a hashed refresh token with a user for a bounded lifetime.

		Parameters:
		  - context: context.Context
		  - tokenHash: string (SHA-256 hex digest of the refresh token)
		  - userID: int
		  - timeToLive: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Store(context context.Context, tokenHash string, userID int, timeToLive time.Duration) error

	/*
		Lookup resolves a hashed refresh token back to its owning user.

		Returns:
		  - int: The owning user ID
		  - error: apperr.NotFound when the token is unknown or expired
	*/
	Lookup(context context.Context, tokenHash string) (int, error)

	/*
		Revoke removes a hashed refresh token. Revoking an unknown token is a no-op.

		Returns:
		  - error: Storage failures
	*/
	Revoke(context context.Context, tokenHash string) error

	/*
		RevokeAll removes every refresh token belonging to a user.

		Returns:
		  - error: Storage failures
	*/
	RevokeAll(context context.Context, userID int) error
}

// TokenProvider abstracts signed access-token generation so the service can be
// tested without real key material.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}
