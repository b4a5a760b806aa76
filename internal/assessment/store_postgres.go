package assessment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amwozniak/entertainment-api/internal/platform/database/schema"
	"github.com/amwozniak/entertainment-api/internal/platform/dberr"
)

// catalogTitleSources maps a category to the table and title column its
// records live in.
var catalogTitleSources = map[string]struct{ table, id, title string }{
	"Books":  {schema.Book.Table, schema.Book.ID, schema.Book.Title},
	"Games":  {schema.Game.Table, schema.Game.ID, schema.Game.Title},
	"Movies": {schema.Movie.Table, schema.Movie.ID, schema.Movie.Title},
	"Songs":  {schema.Song.Table, schema.Song.ID, schema.Song.Title},
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func selectColumns() string {
	return strings.Join(schema.Assessment.Columns(), ", ")
}

func scanAssessment(row interface{ Scan(...any) error }, assessment *Assessment, extra ...any) error {
	dest := []any{
		&assessment.ID, &assessment.Category, &assessment.RecordID,
		&assessment.RecordTitle, &assessment.Finished, &assessment.Wishlist,
		&assessment.Watchlist, &assessment.OfficialRate, &assessment.PrivRate,
		&assessment.PublComment, &assessment.PrivNotes,
		&assessment.CreatedBy, &assessment.UpdatedBy,
		&assessment.CreatedAt, &assessment.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (repository *PostgresRepository) HasAny(ctx context.Context, username string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Assessment.Table, schema.Assessment.CreatedBy)

	var exists bool
	if err := repository.db.QueryRow(ctx, query, username).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "has_any_assessment")
	}
	return exists, nil
}

func (repository *PostgresRepository) SearchOwn(ctx context.Context, username string, filter SearchFilter, limit, offset int) ([]*Assessment, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
	`, selectColumns(), schema.Assessment.Table, schema.Assessment.CreatedBy))
	args = append(args, username)
	argID++

	if filter.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", schema.Assessment.Category, argID))
		args = append(args, filter.Category)
		argID++
	}

	addILike := func(column, value string) {
		if value == "" {
			return
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE '%%' || $%d || '%%'", column, argID))
		args = append(args, strings.TrimSpace(value))
		argID++
	}

	addILike(schema.Assessment.RecordTitle, filter.Title)
	addILike(schema.Assessment.Wishlist, filter.Wishlist)
	addILike(schema.Assessment.PrivRate, filter.PrivRate)

	addBool := func(column string, value *bool) {
		if value == nil {
			return
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND %s = $%d", column, argID))
		args = append(args, *value)
		argID++
	}

	addBool(schema.Assessment.Watchlist, filter.Watchlist)
	addBool(schema.Assessment.Finished, filter.Finished)

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC", schema.Assessment.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_assessments")
	}
	defer rows.Close()

	assessments := make([]*Assessment, 0)
	var total int
	for rows.Next() {
		assessment := &Assessment{}
		if err := scanAssessment(rows, assessment, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_assessment")
		}
		assessments = append(assessments, assessment)
	}

	return assessments, total, rows.Err()
}

func (repository *PostgresRepository) GetByRecord(ctx context.Context, category string, recordID int, createdBy string) (*Assessment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3
	`, selectColumns(), schema.Assessment.Table,
		schema.Assessment.Category, schema.Assessment.RecordID, schema.Assessment.CreatedBy)

	assessment := &Assessment{}
	if err := scanAssessment(repository.db.QueryRow(ctx, query, category, recordID, createdBy), assessment); err != nil {
		return nil, dberr.Wrap(err, "get_assessment")
	}
	return assessment, nil
}

func (repository *PostgresRepository) GetAnyByRecord(ctx context.Context, category string, recordID int) (*Assessment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s ASC
		LIMIT 1
	`, selectColumns(), schema.Assessment.Table,
		schema.Assessment.Category, schema.Assessment.RecordID, schema.Assessment.ID)

	assessment := &Assessment{}
	if err := scanAssessment(repository.db.QueryRow(ctx, query, category, recordID), assessment); err != nil {
		return nil, dberr.Wrap(err, "get_any_assessment")
	}
	return assessment, nil
}

func (repository *PostgresRepository) RecordTitle(ctx context.Context, category string, recordID int) (string, error) {
	source, ok := catalogTitleSources[category]
	if !ok {
		return "", dberr.ErrNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		source.title, source.table, source.id)

	var title string
	if err := repository.db.QueryRow(ctx, query, recordID).Scan(&title); err != nil {
		return "", dberr.Wrap(err, "record_title")
	}
	return title, nil
}

func (repository *PostgresRepository) Insert(ctx context.Context, assessment *Assessment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING %s, %s, %s
	`,
		schema.Assessment.Table,
		schema.Assessment.Category, schema.Assessment.RecordID,
		schema.Assessment.RecordTitle, schema.Assessment.Finished,
		schema.Assessment.Wishlist, schema.Assessment.Watchlist,
		schema.Assessment.OfficialRate, schema.Assessment.PrivRate,
		schema.Assessment.PublComment, schema.Assessment.PrivNotes,
		schema.Assessment.CreatedBy,
		schema.Assessment.ID, schema.Assessment.CreatedAt, schema.Assessment.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		assessment.Category, assessment.RecordID, assessment.RecordTitle,
		assessment.Finished, assessment.Wishlist, assessment.Watchlist,
		assessment.OfficialRate, assessment.PrivRate, assessment.PublComment,
		assessment.PrivNotes, assessment.CreatedBy,
	).Scan(&assessment.ID, &assessment.CreatedAt, &assessment.UpdatedAt)

	return dberr.Wrap(err, "insert_assessment")
}

func (repository *PostgresRepository) Update(ctx context.Context, assessment *Assessment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1, %s = $2, %s = $3, %s = $4, %s = $5,
			%s = $6, %s = $7, %s = $8, %s = now()
		WHERE %s = $9
	`,
		schema.Assessment.Table,
		schema.Assessment.Finished, schema.Assessment.Wishlist,
		schema.Assessment.Watchlist, schema.Assessment.OfficialRate,
		schema.Assessment.PrivRate, schema.Assessment.PublComment,
		schema.Assessment.PrivNotes, schema.Assessment.UpdatedBy,
		schema.Assessment.UpdatedAt,
		schema.Assessment.ID,
	)

	_, err := repository.db.Exec(ctx, query,
		assessment.Finished, assessment.Wishlist, assessment.Watchlist,
		assessment.OfficialRate, assessment.PrivRate, assessment.PublComment,
		assessment.PrivNotes, assessment.UpdatedBy,
		assessment.ID,
	)

	return dberr.Wrap(err, "update_assessment")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Assessment.Table, schema.Assessment.ID)

	result, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_assessment")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
