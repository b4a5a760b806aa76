package games

import "github.com/amwozniak/entertainment-api/pkg/date"

// Game is one game record. The natural key is (title, premiere, developer),
// compared case-insensitively on the trimmed title and developer.
type Game struct {
	ID                 int       `json:"id"`
	Title              string    `json:"title"`
	Premiere           date.Date `json:"premiere"`
	Developer          string    `json:"developer"`
	Publisher          *string   `json:"publisher,omitempty"`
	Genres             *string   `json:"genres,omitempty"`
	GameType           *string   `json:"game_type,omitempty"`
	PriceEUR           *float64  `json:"price_eur,omitempty"`
	PriceDiscountedEUR *float64  `json:"price_discounted_eur,omitempty"`
	ReviewOverall      *string   `json:"review_overall,omitempty"`
	ReviewDetailed     *string   `json:"review_detailed,omitempty"`
	ReviewsNumber      *int      `json:"reviews_number,omitempty"`
	ReviewsPositive    *float64  `json:"reviews_positive,omitempty"`
	CreatedBy          *string   `json:"created_by,omitempty"`
	UpdatedBy          *string   `json:"updated_by,omitempty"`
}

// CreateInput is the POST /add payload.
type CreateInput struct {
	Title              string   `json:"title"`
	Premiere           string   `json:"premiere"`
	Developer          string   `json:"developer"`
	Publisher          *string  `json:"publisher"`
	Genres             []string `json:"genres"`
	GameType           []string `json:"game_type"`
	PriceEUR           *float64 `json:"price_eur"`
	PriceDiscountedEUR *float64 `json:"price_discounted_eur"`
	ReviewOverall      *string  `json:"review_overall"`
	ReviewDetailed     *string  `json:"review_detailed"`
	ReviewsNumber      *int     `json:"reviews_number"`
	ReviewsPositive    *float64 `json:"reviews_positive"`
}

// UpdateInput is the PATCH payload. Nil fields are left untouched.
type UpdateInput struct {
	Title              *string  `json:"title"`
	Premiere           *string  `json:"premiere"`
	Developer          *string  `json:"developer"`
	Publisher          *string  `json:"publisher"`
	Genres             []string `json:"genres"`
	GameType           []string `json:"game_type"`
	PriceEUR           *float64 `json:"price_eur"`
	PriceDiscountedEUR *float64 `json:"price_discounted_eur"`
	ReviewOverall      *string  `json:"review_overall"`
	ReviewDetailed     *string  `json:"review_detailed"`
	ReviewsNumber      *int     `json:"reviews_number"`
	ReviewsPositive    *float64 `json:"reviews_positive"`
}

// SearchFilter narrows the /search listing. Zero values mean "no filter".
// ReviewsNumberGE and ReviewsPositiveGE normally also match rows where the
// column is NULL; ExcludeEmptyData switches them to a strict comparison.
type SearchFilter struct {
	Title             string
	PremiereYear      int
	Developer         string
	Publisher         string
	Genre             string
	GameType          string
	ReviewOverall     string
	ReviewDetailed    string
	ReviewsNumberGE   *int
	ReviewsPositiveGE *float64
	ExcludeEmptyData  bool
	OrderBy           string
	Descending        bool
}
