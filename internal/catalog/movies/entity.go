package movies

import "github.com/amwozniak/entertainment-api/pkg/date"

// Movie is one film record. The natural key is (title, premiere),
// compared case-insensitively on the trimmed title.
type Movie struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Premiere  date.Date `json:"premiere"`
	Score     *float64  `json:"score,omitempty"`
	Genres    *string   `json:"genres,omitempty"`
	Overview  *string   `json:"overview,omitempty"`
	Crew      *string   `json:"crew,omitempty"`
	OrigTitle *string   `json:"orig_title,omitempty"`
	OrigLang  *string   `json:"orig_lang,omitempty"`
	Budget    *float64  `json:"budget,omitempty"`
	Revenue   *float64  `json:"revenue,omitempty"`
	Country   *string   `json:"country,omitempty"`
	CreatedBy *string   `json:"created_by,omitempty"`
	UpdatedBy *string   `json:"updated_by,omitempty"`
}

// CreateInput is the POST /add payload.
type CreateInput struct {
	Title     string   `json:"title"`
	Premiere  string   `json:"premiere"`
	Score     *float64 `json:"score"`
	Genres    []string `json:"genres"`
	Overview  *string  `json:"overview"`
	Crew      *string  `json:"crew"`
	OrigTitle *string  `json:"orig_title"`
	OrigLang  *string  `json:"orig_lang"`
	Budget    *float64 `json:"budget"`
	Revenue   *float64 `json:"revenue"`
	Country   *string  `json:"country"`
}

// UpdateInput is the PATCH payload. Nil fields are left untouched.
type UpdateInput struct {
	Title     *string  `json:"title"`
	Premiere  *string  `json:"premiere"`
	Score     *float64 `json:"score"`
	Genres    []string `json:"genres"`
	Overview  *string  `json:"overview"`
	Crew      *string  `json:"crew"`
	OrigTitle *string  `json:"orig_title"`
	OrigLang  *string  `json:"orig_lang"`
	Budget    *float64 `json:"budget"`
	Revenue   *float64 `json:"revenue"`
	Country   *string  `json:"country"`
}

// SearchFilter narrows the /search listing. Zero values mean "no filter".
type SearchFilter struct {
	Title          string
	PremiereSince  date.Date
	PremiereBefore date.Date
	ScoreGE        float64
	GenrePrimary   string
	GenreSecondary string
	Country        string
	Language       string
	Crew           string
}
