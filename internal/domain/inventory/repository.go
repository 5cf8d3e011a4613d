package inventory

import "context"

type Repository interface {
	List(ctx context.Context, userID int) ([]Item, error)
	Create(ctx context.Context, userID int, item *Item) (int64, error)
	Update(ctx context.Context, userID int, item *Item) error
	Delete(ctx context.Context, userID int, itemID int64) error
}
