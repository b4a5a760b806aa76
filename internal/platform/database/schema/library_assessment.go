package schema

// AssessmentTable represents the 'library.assessment' table
type AssessmentTable struct {
	Table        string
	ID           string
	Category     string
	RecordID     string
	RecordTitle  string
	Finished     string
	Wishlist     string
	Watchlist    string
	OfficialRate string
	PrivRate     string
	PublComment  string
	PrivNotes    string
	CreatedBy    string
	UpdatedBy    string
	CreatedAt    string
	UpdatedAt    string
}

// Assessment is the schema definition for library.assessment
var Assessment = AssessmentTable{
	Table:        "library.assessment",
	ID:           "id",
	Category:     "category",
	RecordID:     "recordid",
	RecordTitle:  "recordtitle",
	Finished:     "finished",
	Wishlist:     "wishlist",
	Watchlist:    "watchlist",
	OfficialRate: "officialrate",
	PrivRate:     "privrate",
	PublComment:  "publcomment",
	PrivNotes:    "privnotes",
	CreatedBy:    "createdby",
	UpdatedBy:    "updatedby",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t AssessmentTable) Columns() []string {
	return []string{
		t.ID, t.Category, t.RecordID, t.RecordTitle, t.Finished, t.Wishlist,
		t.Watchlist, t.OfficialRate, t.PrivRate, t.PublComment, t.PrivNotes,
		t.CreatedBy, t.UpdatedBy, t.CreatedAt, t.UpdatedAt,
	}
}
