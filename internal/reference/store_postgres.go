// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amwozniak/entertainment-api/internal/platform/database/schema"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListCountries(ctx context.Context) ([]*Country, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.RefCountry.Alpha2,
		schema.RefCountry.Alpha3,
		schema.RefCountry.Name,
		schema.RefCountry.CommonName,
		schema.RefCountry.Table,
		schema.RefCountry.Alpha2,
	)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_countries")
	}
	defer rows.Close()

	var countries []*Country
	for rows.Next() {
		c := &Country{}
		if err := rows.Scan(&c.Alpha2, &c.Alpha3, &c.Name, &c.CommonName); err != nil {
			return nil, dberr.Wrap(err, "scan_country")
		}
		countries = append(countries, c)
	}

	return countries, rows.Err()
}

func (repository *PostgresRepository) ListLanguages(ctx context.Context) ([]*Language, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		ORDER BY %s ASC;
	`,
		schema.RefLanguage.Alpha2,
		schema.RefLanguage.Alpha3,
		schema.RefLanguage.Name,
		schema.RefLanguage.Table,
		schema.RefLanguage.Alpha3,
	)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_languages")
	}
	defer rows.Close()

	var languages []*Language
	for rows.Next() {
		l := &Language{}
		if err := rows.Scan(&l.Alpha2, &l.Alpha3, &l.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_language")
		}
		languages = append(languages, l)
	}

	return languages, rows.Err()
}
