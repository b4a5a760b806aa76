package movies

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amwozniak/entertainment-api/internal/platform/database/schema"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
	"github.com/amwozniak/entertainment-api/pkg/date"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func selectColumns() string {
	cols := schema.Movie.Columns()
	return strings.Join(cols, ", ")
}

func scanMovie(row interface{ Scan(...any) error }, movie *Movie, extra ...any) error {
	dest := []any{
		&movie.ID, &movie.Title, &movie.Premiere, &movie.Score, &movie.Genres,
		&movie.Overview, &movie.Crew, &movie.OrigTitle, &movie.OrigLang,
		&movie.Budget, &movie.Revenue, &movie.Country,
		&movie.CreatedBy, &movie.UpdatedBy,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Movie, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`, selectColumns(), schema.Movie.Table, schema.Movie.ID)

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_movies")
	}
	defer rows.Close()

	movies := make([]*Movie, 0)
	var total int
	for rows.Next() {
		movie := &Movie{}
		if err := scanMovie(rows, movie, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_movie")
		}
		movies = append(movies, movie)
	}

	return movies, total, rows.Err()
}

func (repository *PostgresRepository) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Movie, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`, selectColumns(), schema.Movie.Table))

	addILike := func(column, value string) {
		if value == "" {
			return
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE '%%' || $%d || '%%'", column, argID))
		args = append(args, strings.TrimSpace(value))
		argID++
	}

	addILike(schema.Movie.Title, filter.Title)
	addILike(schema.Movie.Crew, filter.Crew)
	addILike(schema.Movie.Genres, filter.GenrePrimary)
	addILike(schema.Movie.Genres, filter.GenreSecondary)
	addILike(schema.Movie.Country, filter.Country)
	addILike(schema.Movie.OrigLang, filter.Language)

	if !filter.PremiereSince.IsZero() {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s >= $%d", schema.Movie.Premiere, argID))
		args = append(args, filter.PremiereSince)
		argID++
	}
	if !filter.PremiereBefore.IsZero() {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s <= $%d", schema.Movie.Premiere, argID))
		args = append(args, filter.PremiereBefore)
		argID++
	}
	if filter.ScoreGE > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s >= $%d", schema.Movie.Score, argID))
		args = append(args, filter.ScoreGE)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC", schema.Movie.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_movies")
	}
	defer rows.Close()

	movies := make([]*Movie, 0)
	var total int
	for rows.Next() {
		movie := &Movie{}
		if err := scanMovie(rows, movie, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_movie")
		}
		movies = append(movies, movie)
	}

	return movies, total, rows.Err()
}

func (repository *PostgresRepository) GetByKey(ctx context.Context, title string, premiere date.Date) (*Movie, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE lower(btrim(%s)) = lower(btrim($1)) AND %s = $2
	`, selectColumns(), schema.Movie.Table, schema.Movie.Title, schema.Movie.Premiere)

	movie := &Movie{}
	if err := scanMovie(repository.db.QueryRow(ctx, query, title, premiere), movie); err != nil {
		return nil, dberr.Wrap(err, "get_movie_by_key")
	}
	return movie, nil
}

func (repository *PostgresRepository) Insert(ctx context.Context, movie *Movie) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s
	`,
		schema.Movie.Table,
		schema.Movie.Title, schema.Movie.Premiere, schema.Movie.Score,
		schema.Movie.Genres, schema.Movie.Overview, schema.Movie.Crew,
		schema.Movie.OrigTitle, schema.Movie.OrigLang, schema.Movie.Budget,
		schema.Movie.Revenue, schema.Movie.Country, schema.Movie.CreatedBy,
		schema.Movie.ID,
	)

	err := repository.db.QueryRow(ctx, query,
		movie.Title, movie.Premiere, movie.Score, movie.Genres,
		movie.Overview, movie.Crew, movie.OrigTitle, movie.OrigLang,
		movie.Budget, movie.Revenue, movie.Country, movie.CreatedBy,
	).Scan(&movie.ID)

	return dberr.Wrap(err, "insert_movie")
}

func (repository *PostgresRepository) Update(ctx context.Context, movie *Movie) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
			%s = $7, %s = $8, %s = $9, %s = $10, %s = $11, %s = $12
		WHERE %s = $13
	`,
		schema.Movie.Table,
		schema.Movie.Title, schema.Movie.Premiere, schema.Movie.Score,
		schema.Movie.Genres, schema.Movie.Overview, schema.Movie.Crew,
		schema.Movie.OrigTitle, schema.Movie.OrigLang, schema.Movie.Budget,
		schema.Movie.Revenue, schema.Movie.Country, schema.Movie.UpdatedBy,
		schema.Movie.ID,
	)

	_, err := repository.db.Exec(ctx, query,
		movie.Title, movie.Premiere, movie.Score, movie.Genres,
		movie.Overview, movie.Crew, movie.OrigTitle, movie.OrigLang,
		movie.Budget, movie.Revenue, movie.Country, movie.UpdatedBy,
		movie.ID,
	)

	return dberr.Wrap(err, "update_movie")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Movie.Table, schema.Movie.ID)

	result, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_movie")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
