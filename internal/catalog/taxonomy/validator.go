// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package taxonomy

import (
	"sort"
	"strings"

	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/pkg/textcase"
)

// DefaultGenreError is the message returned when a submitted tag is not in
// the accessible set and the caller supplied no custom message.
const DefaultGenreError = "Invalid genre: check 'get genres' for list of accessible genres."

// CheckItems validates submitted tags against the accessible set.
//
// Both sides are stripped and normalized with [textcase.Title] before
// comparison, so casing differences never cause rejections. An empty input
// is a no-op and returns (nil, nil). The first unknown tag aborts with an
// Unprocessable Entity error carrying errMsg.
//
// The returned slice is deduplicated and sorted ascending.
func CheckItems(items []string, accessible []string, errMsg string) ([]string, error) {
	if errMsg == "" {
		errMsg = DefaultGenreError
	}

	normalized := normalizeAll(items)
	if len(normalized) == 0 {
		return nil, nil
	}

	allowed := make(map[string]struct{}, len(accessible))
	for _, item := range accessible {
		if n := strings.TrimSpace(textcase.Title(item)); n != "" {
			allowed[n] = struct{}{}
		}
	}

	seen := make(map[string]struct{}, len(normalized))
	result := make([]string, 0, len(normalized))
	for _, item := range normalized {
		if _, ok := allowed[item]; !ok {
			return nil, apperr.Unprocessable(errMsg)
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}

	sort.Strings(result)
	return result, nil
}

// CheckItemsToString validates tags like [CheckItems] and joins the result
// into the canonical stored form. The second return value is false when the
// input was empty (a no-op, distinct from a validation failure).
func CheckItemsToString(items []string, accessible []string, errMsg string) (string, bool, error) {
	validated, err := CheckItems(items, accessible, errMsg)
	if err != nil {
		return "", false, err
	}
	if len(validated) == 0 {
		return "", false, nil
	}
	return strings.Join(validated, Separator), true, nil
}

// normalizeAll strips and title-cases every non-empty item.
func normalizeAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if n := strings.TrimSpace(textcase.Title(item)); n != "" {
			out = append(out, n)
		}
	}
	return out
}
