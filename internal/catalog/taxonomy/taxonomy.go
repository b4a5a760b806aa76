// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

/*
Package taxonomy implements the comma-joined multi-value normalization layer
shared by all catalog verticals.

Genres, game types, and playlist subgenres are stored as a single text column
holding comma-and-space-joined atomic tags. This package owns the three
operations that keep those columns consistent:

  - encoding incoming tag lists into the canonical stored form
    (normalized, deduplicated, sorted, ", "-joined),
  - validating incoming tags against the accessible set derived from
    the data already in the table,
  - extracting the accessible set itself via DISTINCT scans that
    atomize comma-joined cells.

The accessible set is advisory: the columns are free text, not foreign keys,
so a stale snapshot can never corrupt referential integrity.
*/
package taxonomy

import (
	"sort"
	"strings"

	"github.com/amwozniak/entertainment-api/pkg/textcase"
)

// Separator is the canonical join sequence for stored taxonomy strings.
const Separator = ", "

// EncodeList converts a list of tags into the canonical stored string.
//
// Empty and whitespace-only entries are dropped. Survivors are stripped,
// normalized with [textcase.SmartTitle] under the given mode, deduplicated,
// and sorted ascending. The second return value is false when nothing
// survives, which callers map to a NULL column.
func EncodeList(items []string, mode textcase.Mode) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	unique := make([]string, 0, len(items))

	for _, item := range items {
		normalized := strings.TrimSpace(textcase.SmartTitle(item, mode))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		unique = append(unique, normalized)
	}

	if len(unique) == 0 {
		return "", false
	}

	sort.Strings(unique)
	return strings.Join(unique, Separator), true
}

// DecodeList splits a stored taxonomy string back into atomic tags.
//
// Each comma-separated fragment is stripped; empty fragments are dropped.
func DecodeList(stored string) []string {
	if stored == "" {
		return nil
	}

	parts := strings.Split(stored, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
