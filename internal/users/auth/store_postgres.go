// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

// # Storage Layer (PostgreSQL)
//
// Repositories in this file are strictly separated from domain logic. They
// implement domain-defined interfaces (e.g., [UserRepository]) using the
// [pgxpool.Pool] connection manager.
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amwozniak/entertainment-api/internal/platform/database/schema"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

func accountColumns() string {
	return strings.Join(schema.UserAccount.Columns(), ", ")
}

func scanUser(row interface{ Scan(...any) error }, user *User) error {
	return row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Role, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt,
	)
}

/*
Create persists a new user record into the users.account table.

Description: Lets the database assign the identifier and the lifecycle
timestamps, then hydrates them back onto the entity.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s, %s, %s
	`, t.Table, t.Username, t.Email, t.Password, t.FirstName, t.LastName, t.Role, t.IsActive,
		t.ID, t.CreatedAt, t.UpdatedAt)

	err := repository.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.Role, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return dberr.Wrap(err, "create_user")
	}
	return nil
}

func (repository *PostgresUserRepository) findBy(ctx context.Context, column, action string, value any) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
	`, accountColumns(), schema.UserAccount.Table, column)

	user := &User{}
	if err := scanUser(repository.pool.QueryRow(ctx, query, value), user); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return user, nil
}

/*
FindByID retrieves a user record by its numeric identifier.
*/
func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int) (*User, error) {
	return repository.findBy(ctx, schema.UserAccount.ID, "find_user_by_id", id)
}

/*
FindByUsername retrieves a user record by its unique username.

Description: The lookup is whitespace- and case-insensitive so clients can
authenticate regardless of how the username was typed.
*/
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE lower(btrim(%s)) = lower(btrim($1))
	`, accountColumns(), schema.UserAccount.Table, schema.UserAccount.Username)

	user := &User{}
	if err := scanUser(repository.pool.QueryRow(ctx, query, username), user); err != nil {
		return nil, dberr.Wrap(err, "find_user_by_username")
	}
	return user, nil
}

/*
FindByEmail retrieves a user record by its unique email address.
*/
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE lower(btrim(%s)) = lower(btrim($1))
	`, accountColumns(), schema.UserAccount.Table, schema.UserAccount.Email)

	user := &User{}
	if err := scanUser(repository.pool.QueryRow(ctx, query, email), user); err != nil {
		return nil, dberr.Wrap(err, "find_user_by_email")
	}
	return user, nil
}

/*
Update synchronizes the mutable profile fields of an existing user.

Description: Only the email and name columns are written; credentials go
through [PostgresUserRepository.UpdatePassword].
*/
func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = now()
		WHERE %s = $5
	`, t.Table, t.Email, t.FirstName, t.LastName, t.IsActive, t.UpdatedAt, t.ID)

	tag, err := repository.pool.Exec(ctx, query,
		user.Email, user.FirstName, user.LastName, user.IsActive, user.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
UpdatePassword replaces the stored password hash of a user.
*/
func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = now()
		WHERE %s = $2
	`, t.Table, t.Password, t.UpdatedAt, t.ID)

	tag, err := repository.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
Delete removes a user account permanently.
*/
func (repository *PostgresUserRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1
	`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
