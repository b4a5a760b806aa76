// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for registration,
credential verification, and refresh-token rotation.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/amwozniak/entertainment-api/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the platform.
type User struct {
	ID           int          `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    *string      `json:"first_name,omitempty"`
	LastName     *string      `json:"last_name,omitempty"`
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session bundles the credentials issued after a successful authentication.
type Session struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"-"` // Delivered via an HttpOnly cookie, never the body.
	RefreshTokenExpiresAt time.Time `json:"-"`
	User                  *User     `json:"user"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "password_confirmation"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
)
