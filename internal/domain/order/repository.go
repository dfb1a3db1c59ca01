package order

import "context"

type Repository interface {
	Create(ctx context.Context, data CreateData) (*Order, error)
	FindByID(ctx context.Context, id string) (*Order, error)
}
