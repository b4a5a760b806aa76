package songs

import "context"

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]*Song, int, error)
	Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Song, int, error)
	GetByKey(ctx context.Context, title, artist, albumName string) (*Song, error)
	DistinctGenrePairs(ctx context.Context) ([]GenrePair, error)
	Insert(ctx context.Context, song *Song) error
	Update(ctx context.Context, song *Song) error
	Delete(ctx context.Context, id int) error
}
