package games

import (
	"context"

	"github.com/amwozniak/entertainment-api/pkg/date"
)

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]*Game, int, error)
	Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Game, int, error)
	GetByKey(ctx context.Context, title string, premiere date.Date, developer string) (*Game, error)
	Insert(ctx context.Context, game *Game) error
	Update(ctx context.Context, game *Game) error
	Delete(ctx context.Context, id int) error
}
