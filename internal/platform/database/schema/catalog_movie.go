package schema

// MovieTable represents the 'catalog.movie' table
type MovieTable struct {
	Table     string
	ID        string
	Title     string
	Premiere  string
	Score     string
	Genres    string
	Overview  string
	Crew      string
	OrigTitle string
	OrigLang  string
	Budget    string
	Revenue   string
	Country   string
	CreatedBy string
	UpdatedBy string
}

// Movie is the schema definition for catalog.movie
var Movie = MovieTable{
	Table:     "catalog.movie",
	ID:        "id",
	Title:     "title",
	Premiere:  "premiere",
	Score:     "score",
	Genres:    "genres",
	Overview:  "overview",
	Crew:      "crew",
	OrigTitle: "origtitle",
	OrigLang:  "origlang",
	Budget:    "budget",
	Revenue:   "revenue",
	Country:   "country",
	CreatedBy: "createdby",
	UpdatedBy: "updatedby",
}

func (t MovieTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Premiere, t.Score, t.Genres, t.Overview, t.Crew,
		t.OrigTitle, t.OrigLang, t.Budget, t.Revenue, t.Country,
		t.CreatedBy, t.UpdatedBy,
	}
}
