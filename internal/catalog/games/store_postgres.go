package games

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

// orderColumns whitelists the sortable API fields. Anything outside the map
// falls back to the primary key ordering.
var orderColumns = map[string]string{
	"title":            schema.Game.Title,
	"premiere":         schema.Game.Premiere,
	"price_eur":        schema.Game.PriceEUR,
	"reviews_number":   schema.Game.ReviewsNumber,
	"reviews_positive": schema.Game.ReviewsPositive,
}

func selectColumns() string {
	return strings.Join(schema.Game.Columns(), ", ")
}

func scanGame(row interface{ Scan(...any) error }, game *Game, extra ...any) error {
	dest := []any{
		&game.ID, &game.Title, &game.Premiere, &game.Developer, &game.Publisher,
		&game.Genres, &game.GameType, &game.PriceEUR, &game.PriceDiscountedEUR,
		&game.ReviewOverall, &game.ReviewDetailed, &game.ReviewsNumber,
		&game.ReviewsPositive, &game.CreatedBy, &game.UpdatedBy,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Game, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`, selectColumns(), schema.Game.Table, schema.Game.ID)

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_games")
	}
	defer rows.Close()

	games := make([]*Game, 0)
	var total int
	for rows.Next() {
		game := &Game{}
		if err := scanGame(rows, game, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_game")
		}
		games = append(games, game)
	}

	return games, total, rows.Err()
}

func (repository *PostgresRepository) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Game, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`, selectColumns(), schema.Game.Table))

	addILike := func(column, value string) {
		if value == "" {
			return
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE '%%' || $%d || '%%'", column, argID))
		args = append(args, strings.TrimSpace(value))
		argID++
	}

	addILike(schema.Game.Title, filter.Title)
	addILike(schema.Game.Developer, filter.Developer)
	addILike(schema.Game.Publisher, filter.Publisher)
	addILike(schema.Game.Genres, filter.Genre)
	addILike(schema.Game.GameType, filter.GameType)
	addILike(schema.Game.ReviewOverall, filter.ReviewOverall)
	addILike(schema.Game.ReviewDetailed, filter.ReviewDetailed)

	// Rows with no review data stay in the result set unless explicitly
	// excluded, so a threshold filter never hides unreviewed games by accident.
	addGTE := func(column string, value any) {
		if filter.ExcludeEmptyData {
			queryBuilder.WriteString(fmt.Sprintf(" AND %s >= $%d", column, argID))
		} else {
			queryBuilder.WriteString(fmt.Sprintf(" AND (%s >= $%d OR %s IS NULL)", column, argID, column))
		}
		args = append(args, value)
		argID++
	}

	if filter.ReviewsNumberGE != nil {
		addGTE(schema.Game.ReviewsNumber, *filter.ReviewsNumberGE)
	}
	if filter.ReviewsPositiveGE != nil {
		addGTE(schema.Game.ReviewsPositive, *filter.ReviewsPositiveGE)
	}

	if filter.PremiereYear > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND EXTRACT(YEAR FROM %s) = $%d", schema.Game.Premiere, argID))
		args = append(args, filter.PremiereYear)
		argID++
	}

	orderColumn, ok := orderColumns[filter.OrderBy]
	if !ok {
		orderColumn = schema.Game.ID
	}
	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s", orderColumn, direction))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_games")
	}
	defer rows.Close()

	games := make([]*Game, 0)
	var total int
	for rows.Next() {
		game := &Game{}
		if err := scanGame(rows, game, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_game")
		}
		games = append(games, game)
	}

	return games, total, rows.Err()
}

func (repository *PostgresRepository) GetByKey(ctx context.Context, title string, premiere date.Date, developer string) (*Game, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE lower(btrim(%s)) = lower(btrim($1))
		  AND %s = $2
		  AND lower(btrim(%s)) = lower(btrim($3))
	`, selectColumns(), schema.Game.Table,
		schema.Game.Title, schema.Game.Premiere, schema.Game.Developer)

	game := &Game{}
	if err := scanGame(repository.db.QueryRow(ctx, query, title, premiere, developer), game); err != nil {
		return nil, dberr.Wrap(err, "get_game_by_key")
	}
	return game, nil
}

func (repository *PostgresRepository) Insert(ctx context.Context, game *Game) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s
	`,
		schema.Game.Table,
		schema.Game.Title, schema.Game.Premiere, schema.Game.Developer,
		schema.Game.Publisher, schema.Game.Genres, schema.Game.GameType,
		schema.Game.PriceEUR, schema.Game.PriceDiscountedEUR,
		schema.Game.ReviewOverall, schema.Game.ReviewDetailed,
		schema.Game.ReviewsNumber, schema.Game.ReviewsPositive,
		schema.Game.CreatedBy,
		schema.Game.ID,
	)

	err := repository.db.QueryRow(ctx, query,
		game.Title, game.Premiere, game.Developer, game.Publisher,
		game.Genres, game.GameType, game.PriceEUR, game.PriceDiscountedEUR,
		game.ReviewOverall, game.ReviewDetailed, game.ReviewsNumber,
		game.ReviewsPositive, game.CreatedBy,
	).Scan(&game.ID)

	return dberr.Wrap(err, "insert_game")
}

func (repository *PostgresRepository) Update(ctx context.Context, game *Game) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = $13
		WHERE %s = $14
	`,
		schema.Game.Table,
		schema.Game.Title, schema.Game.Premiere, schema.Game.Developer,
		schema.Game.Publisher, schema.Game.Genres, schema.Game.GameType,
		schema.Game.PriceEUR, schema.Game.PriceDiscountedEUR,
		schema.Game.ReviewOverall, schema.Game.ReviewDetailed,
		schema.Game.ReviewsNumber, schema.Game.ReviewsPositive,
		schema.Game.UpdatedBy,
		schema.Game.ID,
	)

	_, err := repository.db.Exec(ctx, query,
		game.Title, game.Premiere, game.Developer, game.Publisher,
		game.Genres, game.GameType, game.PriceEUR, game.PriceDiscountedEUR,
		game.ReviewOverall, game.ReviewDetailed, game.ReviewsNumber,
		game.ReviewsPositive, game.UpdatedBy,
		game.ID,
	)

	return dberr.Wrap(err, "update_game")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Game.Table, schema.Game.ID)

	result, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_game")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
