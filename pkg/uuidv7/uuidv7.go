// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// Request correlation IDs are emitted with every log line, so time-sortable
// IDs keep log searches and traces in chronological order for free. Random
// UUIDv4 offers no such ordering.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// # Safety
//
// If the OS random source cannot produce a v7 value (extremely rare), it
// falls back to a random UUIDv4 rather than failing the caller: a
// correlation ID must always exist, ordering is best effort.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}

	return id.String()
}
