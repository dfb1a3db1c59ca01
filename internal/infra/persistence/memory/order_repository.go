package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	domorder "example.com/orderflow/internal/domain/order"
)

type OrderRepository struct {
	store *Store
}

func (r *OrderRepository) Create(ctx context.Context, data domorder.CreateData) (*domorder.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	o := domorder.Order{
		ID:        uuid.NewString(),
		Customer:  data.Customer,
		Products:  make([]domorder.OrderProduct, 0, len(data.Products)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range data.Products {
		o.Products = append(o.Products, domorder.OrderProduct{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	r.store.orders[o.ID] = o

	return cloneOrder(o), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domorder.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.store.orders[id]
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func cloneOrder(o domorder.Order) *domorder.Order {
	products := make([]domorder.OrderProduct, len(o.Products))
	copy(products, o.Products)
	o.Products = products
	return &o
}
