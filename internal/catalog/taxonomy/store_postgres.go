// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package taxonomy

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
)

// PostgresRowSource implements [RowSource] on a pgx connection pool.
//
// Table and column identifiers are interpolated into the query text, so they
// must come from the schema constants, never from request input. The filter
// value is always bound as a parameter.
type PostgresRowSource struct {
	db *pgxpool.Pool
}

func NewPostgresRowSource(db *pgxpool.Pool) *PostgresRowSource {
	return &PostgresRowSource{db: db}
}

func (source *PostgresRowSource) DistinctValues(ctx context.Context, table, column string) ([]*string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s`, column, table)

	rows, err := source.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "distinct_values")
	}
	defer rows.Close()

	cells := make([]*string, 0)
	for rows.Next() {
		var cell *string
		if err := rows.Scan(&cell); err != nil {
			return nil, dberr.Wrap(err, "scan_distinct_value")
		}
		cells = append(cells, cell)
	}
	return cells, rows.Err()
}

func (source *PostgresRowSource) DistinctValuesWhere(ctx context.Context, table, selectCol, whereCol, whereVal string) ([]*string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s WHERE %s = $1`, selectCol, table, whereCol)

	rows, err := source.db.Query(ctx, query, whereVal)
	if err != nil {
		return nil, dberr.Wrap(err, "distinct_values_where")
	}
	defer rows.Close()

	cells := make([]*string, 0)
	for rows.Next() {
		var cell *string
		if err := rows.Scan(&cell); err != nil {
			return nil, dberr.Wrap(err, "scan_distinct_value")
		}
		cells = append(cells, cell)
	}
	return cells, rows.Err()
}
