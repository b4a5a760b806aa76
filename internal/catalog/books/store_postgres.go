package books

import (
	"context"
	"fmt"
	"strings"

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

func selectColumns() string {
	return strings.Join(schema.Book.Columns(), ", ")
}

func scanBook(row interface{ Scan(...any) error }, book *Book, extra ...any) error {
	dest := []any{
		&book.ID, &book.Title, &book.Author, &book.Description, &book.Genres,
		&book.AvgRating, &book.NumRatings, &book.FirstPublished,
		&book.CreatedBy, &book.UpdatedBy,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Book, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`, selectColumns(), schema.Book.Table, schema.Book.ID)

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := make([]*Book, 0)
	var total int
	for rows.Next() {
		book := &Book{}
		if err := scanBook(rows, book, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}

	return books, total, rows.Err()
}

func (repository *PostgresRepository) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Book, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`, selectColumns(), schema.Book.Table))

	addILike := func(column, value string) {
		if value == "" {
			return
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE '%%' || $%d || '%%'", column, argID))
		args = append(args, strings.TrimSpace(value))
		argID++
	}

	addILike(schema.Book.Title, filter.Title)
	addILike(schema.Book.Author, filter.Author)
	addILike(schema.Book.Genres, filter.Genre)

	if filter.AvgRatingGE > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s >= $%d", schema.Book.AvgRating, argID))
		args = append(args, filter.AvgRatingGE)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC", schema.Book.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_books")
	}
	defer rows.Close()

	books := make([]*Book, 0)
	var total int
	for rows.Next() {
		book := &Book{}
		if err := scanBook(rows, book, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}

	return books, total, rows.Err()
}

func (repository *PostgresRepository) GetByKey(ctx context.Context, title, author string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE lower(btrim(%s)) = lower(btrim($1)) AND lower(btrim(%s)) = lower(btrim($2))
	`, selectColumns(), schema.Book.Table, schema.Book.Title, schema.Book.Author)

	book := &Book{}
	if err := scanBook(repository.db.QueryRow(ctx, query, title, author), book); err != nil {
		return nil, dberr.Wrap(err, "get_book_by_key")
	}
	return book, nil
}

func (repository *PostgresRepository) Insert(ctx context.Context, book *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`,
		schema.Book.Table,
		schema.Book.Title, schema.Book.Author, schema.Book.Description,
		schema.Book.Genres, schema.Book.AvgRating, schema.Book.RatingReviews,
		schema.Book.FirstPublished, schema.Book.CreatedBy,
		schema.Book.ID,
	)

	err := repository.db.QueryRow(ctx, query,
		book.Title, book.Author, book.Description, book.Genres,
		book.AvgRating, book.NumRatings, book.FirstPublished, book.CreatedBy,
	).Scan(&book.ID)

	return dberr.Wrap(err, "insert_book")
}

func (repository *PostgresRepository) Update(ctx context.Context, book *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $9
	`,
		schema.Book.Table,
		schema.Book.Title, schema.Book.Author, schema.Book.Description,
		schema.Book.Genres, schema.Book.AvgRating, schema.Book.RatingReviews,
		schema.Book.FirstPublished, schema.Book.UpdatedBy,
		schema.Book.ID,
	)

	_, err := repository.db.Exec(ctx, query,
		book.Title, book.Author, book.Description, book.Genres,
		book.AvgRating, book.NumRatings, book.FirstPublished, book.UpdatedBy,
		book.ID,
	)

	return dberr.Wrap(err, "update_book")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Book.Table, schema.Book.ID)

	result, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
