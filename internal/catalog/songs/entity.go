package songs

import "github.com/amwozniak/entertainment-api/pkg/date"

// Song is one track record. The natural key is (title, artist, album_name),
// compared case-insensitively on the trimmed values.
type Song struct {
	ID               int        `json:"id"`
	TrackID          *string    `json:"song_id,omitempty"`
	Title            string     `json:"title"`
	Artist           string     `json:"artist"`
	Popularity       *int       `json:"song_popularity,omitempty"`
	AlbumID          *string    `json:"album_id,omitempty"`
	AlbumName        string     `json:"album_name"`
	AlbumPremiere    *date.Date `json:"album_premiere,omitempty"`
	PlaylistID       *string    `json:"playlist_id,omitempty"`
	PlaylistName     *string    `json:"playlist_name,omitempty"`
	PlaylistGenre    *string    `json:"playlist_genre,omitempty"`
	PlaylistSubgenre *string    `json:"playlist_subgenre,omitempty"`
	DurationMS       *int       `json:"duration_ms,omitempty"`
	CreatedBy        *string    `json:"created_by,omitempty"`
	UpdatedBy        *string    `json:"updated_by,omitempty"`
}

// GenreMap groups every distinct playlist subgenre under its parent genre.
type GenreMap struct {
	Genres    []string            `json:"genres"`
	Subgenres map[string][]string `json:"subgenres"`
}

// GenrePair is one DISTINCT (playlist_genre, playlist_subgenre) row.
type GenrePair struct {
	Genre    *string
	Subgenre *string
}

// CreateInput is the POST /add payload.
type CreateInput struct {
	TrackID          *string  `json:"song_id"`
	Title            string   `json:"title"`
	Artist           string   `json:"artist"`
	Popularity       *int     `json:"song_popularity"`
	AlbumID          *string  `json:"album_id"`
	AlbumName        string   `json:"album_name"`
	AlbumPremiere    *string  `json:"album_premiere"`
	PlaylistID       *string  `json:"playlist_id"`
	PlaylistName     *string  `json:"playlist_name"`
	PlaylistGenre    []string `json:"playlist_genre"`
	PlaylistSubgenre []string `json:"playlist_subgenre"`
	DurationMS       *int     `json:"duration_ms"`
}

// UpdateInput is the PATCH payload. Nil fields are left untouched.
type UpdateInput struct {
	TrackID          *string  `json:"song_id"`
	Title            *string  `json:"title"`
	Artist           *string  `json:"artist"`
	Popularity       *int     `json:"song_popularity"`
	AlbumID          *string  `json:"album_id"`
	AlbumName        *string  `json:"album_name"`
	AlbumPremiere    *string  `json:"album_premiere"`
	PlaylistID       *string  `json:"playlist_id"`
	PlaylistName     *string  `json:"playlist_name"`
	PlaylistGenre    []string `json:"playlist_genre"`
	PlaylistSubgenre []string `json:"playlist_subgenre"`
	DurationMS       *int     `json:"duration_ms"`
}

// SearchFilter narrows the /search listing. Zero values mean "no filter".
type SearchFilter struct {
	Title         string
	Artist        string
	AlbumName     string
	PlaylistName  string
	Genre         string
	Subgenre      string
	PopularityGE  int
	PremiereSince date.Date
}
