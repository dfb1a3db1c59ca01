package memory

import (
	"context"
	"time"

	domproduct "example.com/orderflow/internal/domain/product"
)

type ProductRepository struct {
	store *Store
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.products {
		if existing.Name == p.Name {
			return nil, domproduct.ErrNameAlreadyUsed
		}
	}
	r.store.products[p.ID] = *p
	return p, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domproduct.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domproduct.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, domproduct.ErrProductNotFound
}

// FindAllByID behaves like an SQL IN lookup: unknown ids are skipped and
// repeated ids yield a single product.
func (r *ProductRepository) FindAllByID(ctx context.Context, refs []domproduct.Ref) ([]*domproduct.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[string]bool, len(refs))
	products := make([]*domproduct.Product, 0, len(refs))
	for _, ref := range refs {
		if seen[ref.ID] {
			continue
		}
		seen[ref.ID] = true
		if p, ok := r.store.products[ref.ID]; ok {
			products = append(products, &p)
		}
	}
	return products, nil
}

// UpdateQuantity applies all updates or none.
func (r *ProductRepository) UpdateQuantity(ctx context.Context, updates []domproduct.QuantityUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range updates {
		if _, ok := r.store.products[u.ID]; !ok {
			return domproduct.ErrProductNotFound
		}
	}
	now := time.Now().UTC()
	for _, u := range updates {
		p := r.store.products[u.ID]
		p.Quantity = u.Quantity
		p.UpdatedAt = now
		r.store.products[u.ID] = p
	}
	return nil
}
