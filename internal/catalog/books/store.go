package books

import "context"

type Repository interface {
	List(ctx context.Context, limit, offset int) ([]*Book, int, error)
	Search(ctx context.Context, filter SearchFilter, limit, offset int) ([]*Book, int, error)
	GetByKey(ctx context.Context, title, author string) (*Book, error)
	Insert(ctx context.Context, book *Book) error
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id int) error
}
