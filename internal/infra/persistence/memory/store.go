// Package memory keeps customers, products and orders in process memory.
// It backs tests and local runs of the CLI.
package memory

import (
	"sync"

	domcustomer "example.com/orderflow/internal/domain/customer"
	domorder "example.com/orderflow/internal/domain/order"
	domproduct "example.com/orderflow/internal/domain/product"
)

type Store struct {
	mu        sync.RWMutex
	customers map[string]domcustomer.Customer
	products  map[string]domproduct.Product
	orders    map[string]domorder.Order
}

func NewStore() *Store {
	return &Store{
		customers: make(map[string]domcustomer.Customer),
		products:  make(map[string]domproduct.Product),
		orders:    make(map[string]domorder.Order),
	}
}

func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{store: s}
}

func (s *Store) Products() *ProductRepository {
	return &ProductRepository{store: s}
}

func (s *Store) Orders() *OrderRepository {
	return &OrderRepository{store: s}
}
