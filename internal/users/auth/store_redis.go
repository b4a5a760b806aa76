// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

// # Storage Layer (Redis)
//
// Refresh tokens are volatile, short-lived secrets, so they live in Redis
// rather than PostgreSQL. Expiry is delegated to the store (TTL) instead of
// being checked in application code.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements the SessionRepository interface using Redis.
//
// # Key Layout
//   - auth:session:{tokenHash}    -> user ID (string), expires with the token
//   - auth:session:user:{userID}  -> set of the user's live token hashes
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a new Redis implementation of the SessionRepository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func sessionUserKey(userID int) string {
	return constants.RedisPrefixSessionUser + strconv.Itoa(userID)
}

/*
Store associates a hashed refresh token with a user for a bounded lifetime.

Description: Writes the token-to-user mapping and registers the hash in the
per-user index so [RedisSessionRepository.RevokeAll] can find it later. The
index carries the same TTL so it never outlives its newest member.

Parameters:
  - context: context.Context
  - tokenHash: string (SHA-256 hex digest of the refresh token)
  - userID: int
  - timeToLive: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisSessionRepository) Store(ctx context.Context, tokenHash string, userID int, timeToLive time.Duration) error {
	pipe := repository.client.TxPipeline()
	pipe.Set(ctx, sessionKey(tokenHash), strconv.Itoa(userID), timeToLive)
	pipe.SAdd(ctx, sessionUserKey(userID), tokenHash)
	pipe.Expire(ctx, sessionUserKey(userID), timeToLive)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis_session_store_failed: %w", err)
	}
	return nil
}

/*
Lookup resolves a hashed refresh token back to its owning user.

Returns:
  - int: The owning user ID
  - error: apperr.NotFound when the token is unknown or expired
*/
func (repository *RedisSessionRepository) Lookup(ctx context.Context, tokenHash string) (int, error) {
	value, err := repository.client.Get(ctx, sessionKey(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperr.NotFound("Session")
		}
		return 0, fmt.Errorf("redis_session_lookup_failed: %w", err)
	}

	userID, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("redis_session_corrupt_value: %w", err)
	}
	return userID, nil
}

/*
Revoke removes a hashed refresh token. Revoking an unknown token is a no-op.
*/
func (repository *RedisSessionRepository) Revoke(ctx context.Context, tokenHash string) error {
	value, err := repository.client.Get(ctx, sessionKey(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("redis_session_revoke_lookup_failed: %w", err)
	}

	pipe := repository.client.TxPipeline()
	pipe.Del(ctx, sessionKey(tokenHash))
	if userID, convErr := strconv.Atoi(value); convErr == nil {
		pipe.SRem(ctx, sessionUserKey(userID), tokenHash)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}
	return nil
}

/*
RevokeAll removes every refresh token belonging to a user.

Description: Sweeps the per-user index and deletes each registered token hash
together with the index itself.
*/
func (repository *RedisSessionRepository) RevokeAll(ctx context.Context, userID int) error {
	hashes, err := repository.client.SMembers(ctx, sessionUserKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKey(hash))
	}
	keys = append(keys, sessionUserKey(userID))

	if err := repository.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_all_delete_failed: %w", err)
	}
	return nil
}
