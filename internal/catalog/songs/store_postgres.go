package songs

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
	return strings.Join(schema.Song.Columns(), ", ")
}

func scanSong(row interface{ Scan(...any) error }, song *Song, extra ...any) error {
	dest := []any{
		&song.ID, &song.TrackID, &song.Title, &song.Artist, &song.Popularity,
		&song.AlbumID, &song.AlbumName, &song.AlbumPremiere, &song.PlaylistID,
		&song.PlaylistName, &song.PlaylistGenre, &song.PlaylistSubgenre,
		&song.DurationMS, &song.CreatedBy, &song.UpdatedBy,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (repository *PostgresRepository) List(ctx context.Context, limit, offset int) ([]*Song, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2
	`, selectColumns(), schema.Song.Table, schema.Song.ID)

	rows, err := repository.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_songs")
	}
	defer rows.Close()

	songs := make([]*Song, 0)
	var total int
	for rows.Next() {
		song := &Song{}
		if err := scanSong(rows, song, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_song")
		}
		songs = append(songs, song)
	}

	return songs, total, rows.Err()
}

func (repository *PostgresRepository) Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Song, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE TRUE
	`, selectColumns(), schema.Song.Table))

	addILike := func(column, value string) {
		if value == "" {
			return
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND %s ILIKE '%%' || $%d || '%%'", column, argID))
		args = append(args, strings.TrimSpace(value))
		argID++
	}

	addILike(schema.Song.Title, filter.Title)
	addILike(schema.Song.Artist, filter.Artist)
	addILike(schema.Song.AlbumName, filter.AlbumName)
	addILike(schema.Song.PlaylistName, filter.PlaylistName)
	addILike(schema.Song.PlaylistGenre, filter.Genre)
	addILike(schema.Song.PlaylistSubgenre, filter.Subgenre)

	if filter.PopularityGE > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s >= $%d", schema.Song.Popularity, argID))
		args = append(args, filter.PopularityGE)
		argID++
	}
	if !filter.PremiereSince.IsZero() {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s >= $%d", schema.Song.AlbumPremiere, argID))
		args = append(args, filter.PremiereSince)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s ASC", schema.Song.ID))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "search_songs")
	}
	defer rows.Close()

	songs := make([]*Song, 0)
	var total int
	for rows.Next() {
		song := &Song{}
		if err := scanSong(rows, song, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_song")
		}
		songs = append(songs, song)
	}

	return songs, total, rows.Err()
}

func (repository *PostgresRepository) GetByKey(ctx context.Context, title, artist, albumName string) (*Song, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE lower(btrim(%s)) = lower(btrim($1))
		  AND lower(btrim(%s)) = lower(btrim($2))
		  AND lower(btrim(%s)) = lower(btrim($3))
	`, selectColumns(), schema.Song.Table,
		schema.Song.Title, schema.Song.Artist, schema.Song.AlbumName)

	song := &Song{}
	if err := scanSong(repository.db.QueryRow(ctx, query, title, artist, albumName), song); err != nil {
		return nil, dberr.Wrap(err, "get_song_by_key")
	}
	return song, nil
}

func (repository *PostgresRepository) DistinctGenrePairs(ctx context.Context) ([]GenrePair, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT %s, %s
		FROM %s
	`, schema.Song.PlaylistGenre, schema.Song.PlaylistSubgenre, schema.Song.Table)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "distinct_genre_pairs")
	}
	defer rows.Close()

	pairs := make([]GenrePair, 0)
	for rows.Next() {
		var pair GenrePair
		if err := rows.Scan(&pair.Genre, &pair.Subgenre); err != nil {
			return nil, dberr.Wrap(err, "scan_genre_pair")
		}
		pairs = append(pairs, pair)
	}

	return pairs, rows.Err()
}

func (repository *PostgresRepository) Insert(ctx context.Context, song *Song) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s
	`,
		schema.Song.Table,
		schema.Song.TrackID, schema.Song.Title, schema.Song.Artist,
		schema.Song.Popularity, schema.Song.AlbumID, schema.Song.AlbumName,
		schema.Song.AlbumPremiere, schema.Song.PlaylistID, schema.Song.PlaylistName,
		schema.Song.PlaylistGenre, schema.Song.PlaylistSubgenre,
		schema.Song.DurationMS, schema.Song.CreatedBy,
		schema.Song.ID,
	)

	err := repository.db.QueryRow(ctx, query,
		song.TrackID, song.Title, song.Artist, song.Popularity,
		song.AlbumID, song.AlbumName, song.AlbumPremiere, song.PlaylistID,
		song.PlaylistName, song.PlaylistGenre, song.PlaylistSubgenre,
		song.DurationMS, song.CreatedBy,
	).Scan(&song.ID)

	return dberr.Wrap(err, "insert_song")
}

func (repository *PostgresRepository) Update(ctx context.Context, song *Song) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7,
			%s = $8, %s = $9, %s = $10, %s = $11, %s = $12, %s = $13
		WHERE %s = $14
	`,
		schema.Song.Table,
		schema.Song.TrackID, schema.Song.Title, schema.Song.Artist,
		schema.Song.Popularity, schema.Song.AlbumID, schema.Song.AlbumName,
		schema.Song.AlbumPremiere, schema.Song.PlaylistID, schema.Song.PlaylistName,
		schema.Song.PlaylistGenre, schema.Song.PlaylistSubgenre,
		schema.Song.DurationMS, schema.Song.UpdatedBy,
		schema.Song.ID,
	)

	_, err := repository.db.Exec(ctx, query,
		song.TrackID, song.Title, song.Artist, song.Popularity,
		song.AlbumID, song.AlbumName, song.AlbumPremiere, song.PlaylistID,
		song.PlaylistName, song.PlaylistGenre, song.PlaylistSubgenre,
		song.DurationMS, song.UpdatedBy,
		song.ID,
	)

	return dberr.Wrap(err, "update_song")
}

func (repository *PostgresRepository) Delete(ctx context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Song.Table, schema.Song.ID)

	result, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_song")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
