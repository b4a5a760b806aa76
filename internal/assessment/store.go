package assessment

import "context"

type Repository interface {
	// HasAny reports whether the user has assessed anything at all.
	HasAny(ctx context.Context, username string) (bool, error)

	SearchOwn(ctx context.Context, username string, filter SearchFilter, limit, offset int) ([]*Assessment, int, error)

	// GetByRecord fetches one creator's assessment of one catalog record.
	GetByRecord(ctx context.Context, category string, recordID int, createdBy string) (*Assessment, error)

	// GetAnyByRecord fetches any creator's assessment of one catalog record.
	// Admin mutations use it when the admin has no own row.
	GetAnyByRecord(ctx context.Context, category string, recordID int) (*Assessment, error)

	// RecordTitle resolves the title of the target catalog record, or a
	// not-found error when no such record exists.
	RecordTitle(ctx context.Context, category string, recordID int) (string, error)

	Insert(ctx context.Context, assessment *Assessment) error
	Update(ctx context.Context, assessment *Assessment) error
	Delete(ctx context.Context, id int) error
}
