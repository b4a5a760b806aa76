package books

import "github.com/amwozniak/entertainment-api/pkg/date"

// Book is one book record. The natural key is (title, author),
// compared case-insensitively on the trimmed fields.
type Book struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Author         string     `json:"author"`
	Description    *string    `json:"description,omitempty"`
	Genres         *string    `json:"genres,omitempty"`
	AvgRating      *float64   `json:"avg_rating,omitempty"`
	NumRatings     *int       `json:"num_ratings,omitempty"`
	FirstPublished *date.Date `json:"first_published,omitempty"`
	CreatedBy      *string    `json:"created_by,omitempty"`
	UpdatedBy      *string    `json:"updated_by,omitempty"`
}

// CreateInput is the POST /add payload.
type CreateInput struct {
	Title          string   `json:"title"`
	Author         string   `json:"author"`
	Description    *string  `json:"description"`
	Genres         []string `json:"genres"`
	AvgRating      *float64 `json:"avg_rating"`
	NumRatings     *int     `json:"num_ratings"`
	FirstPublished *string  `json:"first_published"`
}

// UpdateInput is the PATCH payload. Nil fields are left untouched.
type UpdateInput struct {
	Title          *string  `json:"title"`
	Author         *string  `json:"author"`
	Description    *string  `json:"description"`
	Genres         []string `json:"genres"`
	AvgRating      *float64 `json:"avg_rating"`
	NumRatings     *int     `json:"num_ratings"`
	FirstPublished *string  `json:"first_published"`
}

// SearchFilter narrows the /search listing. Zero values mean "no filter".
type SearchFilter struct {
	Title       string
	Author      string
	Genre       string
	AvgRatingGE float64
}
