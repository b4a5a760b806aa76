package movies

import (
	"context"

	"github.com/amwozniak/entertainment-api/pkg/date"
)

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]*Movie, int, error)
	Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Movie, int, error)
	GetByKey(ctx context.Context, title string, premiere date.Date) (*Movie, error)
	Insert(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
}
