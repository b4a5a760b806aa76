package assessment

import "time"

// Assessment is one principal's opinion of one catalog record. A creator
// holds at most one assessment per (category, record) pair.
type Assessment struct {
	ID           int       `json:"id"`
	Category     string    `json:"category"`
	RecordID     int       `json:"id_number"`
	RecordTitle  string    `json:"db_record"`
	Finished     bool      `json:"finished"`
	Wishlist     *string   `json:"wishlist,omitempty"`
	Watchlist    bool      `json:"watchlist"`
	OfficialRate *string   `json:"official_rate,omitempty"`
	PrivRate     *string   `json:"priv_rate,omitempty"`
	PublComment  *string   `json:"publ_comment,omitempty"`
	PrivNotes    *string   `json:"priv_notes,omitempty"`
	CreatedBy    *string   `json:"created_by,omitempty"`
	UpdatedBy    *string   `json:"updated_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateInput is the POST /add payload.
type CreateInput struct {
	Category     string  `json:"category"`
	RecordID     int     `json:"id_number"`
	Finished     *bool   `json:"finished"`
	Wishlist     *string `json:"wishlist"`
	Watchlist    *bool   `json:"watchlist"`
	OfficialRate *Rate   `json:"official_rate"`
	PrivRate     *string `json:"priv_rate"`
	PublComment  *string `json:"publ_comment"`
	PrivNotes    *string `json:"priv_notes"`
}

// UpdateInput is the PATCH payload. Nil fields are left untouched.
type UpdateInput struct {
	Finished     *bool   `json:"finished"`
	Wishlist     *string `json:"wishlist"`
	Watchlist    *bool   `json:"watchlist"`
	OfficialRate *Rate   `json:"official_rate"`
	PrivRate     *string `json:"priv_rate"`
	PublComment  *string `json:"publ_comment"`
	PrivNotes    *string `json:"priv_notes"`
}

// SearchFilter narrows a principal's own assessments. Zero values mean
// "no filter".
type SearchFilter struct {
	Category  string
	Title     string
	Wishlist  string
	PrivRate  string
	Watchlist *bool
	Finished  *bool
}
