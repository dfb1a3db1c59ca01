package memory

import (
	"context"
	"strings"

	domcustomer "example.com/orderflow/internal/domain/customer"
)

type CustomerRepository struct {
	store *Store
}

func (r *CustomerRepository) Create(ctx context.Context, c *domcustomer.Customer) (*domcustomer.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.customers {
		if strings.EqualFold(existing.Email, c.Email) {
			return nil, domcustomer.ErrEmailAlreadyUsed
		}
	}
	r.store.customers[c.ID] = *c
	return c, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domcustomer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.customers[id]
	if !ok {
		return nil, domcustomer.ErrCustomerNotFound
	}
	return &c, nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domcustomer.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.customers {
		if strings.EqualFold(c.Email, email) {
			return &c, nil
		}
	}
	return nil, domcustomer.ErrCustomerNotFound
}
