package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	// FindAllByID returns the products matching refs. Unknown ids are
	// skipped, so the result may be shorter than refs.
	FindAllByID(ctx context.Context, refs []Ref) ([]*Product, error)
	UpdateQuantity(ctx context.Context, updates []QuantityUpdate) error
}
