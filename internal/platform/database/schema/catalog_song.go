package schema

// SongTable represents the 'catalog.song' table
type SongTable struct {
	Table            string
	ID               string
	TrackID          string
	Title            string
	Artist           string
	Popularity       string
	AlbumID          string
	AlbumName        string
	AlbumPremiere    string
	PlaylistID       string
	PlaylistName     string
	PlaylistGenre    string
	PlaylistSubgenre string
	DurationMS       string
	CreatedBy        string
	UpdatedBy        string
}

// Song is the schema definition for catalog.song
var Song = SongTable{
	Table:            "catalog.song",
	ID:               "id",
	TrackID:          "trackid",
	Title:            "title",
	Artist:           "artist",
	Popularity:       "popularity",
	AlbumID:          "albumid",
	AlbumName:        "albumname",
	AlbumPremiere:    "albumpremiere",
	PlaylistID:       "playlistid",
	PlaylistName:     "playlistname",
	PlaylistGenre:    "playlistgenre",
	PlaylistSubgenre: "playlistsubgenre",
	DurationMS:       "durationms",
	CreatedBy:        "createdby",
	UpdatedBy:        "updatedby",
}

func (t SongTable) Columns() []string {
	return []string{
		t.ID, t.TrackID, t.Title, t.Artist, t.Popularity, t.AlbumID,
		t.AlbumName, t.AlbumPremiere, t.PlaylistID, t.PlaylistName,
		t.PlaylistGenre, t.PlaylistSubgenre, t.DurationMS,
		t.CreatedBy, t.UpdatedBy,
	}
}
