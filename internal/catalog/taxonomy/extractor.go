// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package taxonomy

import (
	"context"
	"sort"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/amwozniak/entertainment-api/internal/platform/apperr"
	"github.com/amwozniak/entertainment-api/internal/platform/constants"
	"github.com/amwozniak/entertainment-api/pkg/textcase"
)

// RowSource abstracts the DISTINCT column scans that feed the extractor.
//
// Cells are returned as *string so NULL columns survive the round trip;
// the extractor skips nil cells.
type RowSource interface {
	// DistinctValues runs SELECT DISTINCT column FROM table.
	DistinctValues(ctx context.Context, table, column string) ([]*string, error)

	// DistinctValuesWhere runs
	// SELECT DISTINCT selectCol FROM table WHERE whereCol = whereVal.
	DistinctValuesWhere(ctx context.Context, table, selectCol, whereCol, whereVal string) ([]*string, error)
}

// Extractor derives accessible taxonomy sets from live table data.
//
// Results are cached briefly (see constants.TaxonomyCacheTTL) because the
// accessible set is advisory. A value written moments ago may not appear in
// the set until the entry expires; that staleness is accepted.
type Extractor struct {
	source RowSource
	cache  *gocache.Cache
}

// NewExtractor creates an Extractor backed by the given row source.
func NewExtractor(source RowSource) *Extractor {
	return &Extractor{
		source: source,
		cache:  gocache.New(constants.TaxonomyCacheTTL, constants.TaxonomyCacheSweep),
	}
}

// UniqueRowData returns every atomic value found in a column across all rows.
//
// Comma-joined cells are split on commas and each fragment is stripped.
// Fragments are normalized with [textcase.SmartTitle] under mode,
// deduplicated after normalization, and returned sorted ascending.
func (e *Extractor) UniqueRowData(ctx context.Context, table, column string, mode textcase.Mode) ([]string, error) {
	key := cacheKey(table, column, "", "", mode)
	if cached, ok := e.cache.Get(key); ok {
		return cached.([]string), nil
	}

	cells, err := e.source.DistinctValues(ctx, table, column)
	if err != nil {
		return nil, err
	}

	values := atomize(cells, mode)
	e.cache.SetDefault(key, values)
	return values, nil
}

// UniqueRowDataWhere is [UniqueRowData] scoped to rows where whereCol equals
// whereVal. It backs genre-to-subgenre listings.
func (e *Extractor) UniqueRowDataWhere(ctx context.Context, table, selectCol, whereCol, whereVal string, mode textcase.Mode) ([]string, error) {
	key := cacheKey(table, selectCol, whereCol, whereVal, mode)
	if cached, ok := e.cache.Get(key); ok {
		return cached.([]string), nil
	}

	cells, err := e.source.DistinctValuesWhere(ctx, table, selectCol, whereCol, whereVal)
	if err != nil {
		return nil, err
	}

	values := atomize(cells, mode)
	e.cache.SetDefault(key, values)
	return values, nil
}

// GenreBySubgenre returns the raw parent genre of a subgenre value.
//
// The first non-NULL distinct match wins and is returned unnormalized.
// An unknown subgenre yields a NotFound error rather than a panic on the
// empty result set.
func (e *Extractor) GenreBySubgenre(ctx context.Context, table, genreCol, subgenreCol, subgenre string) (string, error) {
	cells, err := e.source.DistinctValuesWhere(ctx, table, genreCol, subgenreCol, subgenre)
	if err != nil {
		return "", err
	}

	for _, cell := range cells {
		if cell != nil {
			return *cell, nil
		}
	}
	return "", apperr.NotFound("Genre")
}

// atomize splits comma-joined cells into normalized unique sorted values.
func atomize(cells []*string, mode textcase.Mode) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0, len(cells))

	for _, cell := range cells {
		if cell == nil {
			continue
		}
		for _, fragment := range strings.Split(*cell, ",") {
			normalized := textcase.SmartTitle(strings.TrimSpace(fragment), mode)
			if normalized == "" {
				continue
			}
			if _, ok := seen[normalized]; ok {
				continue
			}
			seen[normalized] = struct{}{}
			values = append(values, normalized)
		}
	}

	sort.Strings(values)
	return values
}

// cacheKey builds a stable cache key for one extraction shape.
func cacheKey(table, column, whereCol, whereVal string, mode textcase.Mode) string {
	return strings.Join([]string{table, column, whereCol, whereVal, string(mode)}, "|")
}
