package schema

// BookTable represents the 'catalog.book' table
type BookTable struct {
	Table          string
	ID             string
	Title          string
	Author         string
	Description    string
	Genres         string
	AvgRating      string
	RatingReviews  string
	FirstPublished string
	CreatedBy      string
	UpdatedBy      string
}

// Book is the schema definition for catalog.book
var Book = BookTable{
	Table:          "catalog.book",
	ID:             "id",
	Title:          "title",
	Author:         "author",
	Description:    "description",
	Genres:         "genres",
	AvgRating:      "avgrating",
	RatingReviews:  "ratingreviews",
	FirstPublished: "firstpublished",
	CreatedBy:      "createdby",
	UpdatedBy:      "updatedby",
}

func (t BookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.Description, t.Genres, t.AvgRating,
		t.RatingReviews, t.FirstPublished, t.CreatedBy, t.UpdatedBy,
	}
}
