package schema

// GameTable represents the 'catalog.game' table
type GameTable struct {
	Table              string
	ID                 string
	Title              string
	Premiere           string
	Developer          string
	Publisher          string
	Genres             string
	GameType           string
	PriceEUR           string
	PriceDiscountedEUR string
	ReviewOverall      string
	ReviewDetailed     string
	ReviewsNumber      string
	ReviewsPositive    string
	CreatedBy          string
	UpdatedBy          string
}

// Game is the schema definition for catalog.game
var Game = GameTable{
	Table:              "catalog.game",
	ID:                 "id",
	Title:              "title",
	Premiere:           "premiere",
	Developer:          "developer",
	Publisher:          "publisher",
	Genres:             "genres",
	GameType:           "gametype",
	PriceEUR:           "priceeur",
	PriceDiscountedEUR: "pricediscountedeur",
	ReviewOverall:      "reviewoverall",
	ReviewDetailed:     "reviewdetailed",
	ReviewsNumber:      "reviewsnumber",
	ReviewsPositive:    "reviewspositive",
	CreatedBy:          "createdby",
	UpdatedBy:          "updatedby",
}

func (t GameTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Premiere, t.Developer, t.Publisher, t.Genres,
		t.GameType, t.PriceEUR, t.PriceDiscountedEUR, t.ReviewOverall,
		t.ReviewDetailed, t.ReviewsNumber, t.ReviewsPositive,
		t.CreatedBy, t.UpdatedBy,
	}
}
