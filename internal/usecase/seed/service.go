// Package seed loads catalog fixtures (customers and products) into a store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	domcustomer "example.com/orderflow/internal/domain/customer"
	domproduct "example.com/orderflow/internal/domain/product"
	customeruc "example.com/orderflow/internal/usecase/customer"
	productuc "example.com/orderflow/internal/usecase/product"
)

type Catalog struct {
	Customers []CustomerFixture `yaml:"customers"`
	Products  []ProductFixture  `yaml:"products"`
}

type CustomerFixture struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type ProductFixture struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Price    string `yaml:"price"`
	Quantity int64  `yaml:"quantity"`
}

type Result struct {
	Customers int `json:"customers"`
	Products  int `json:"products"`
	Skipped   int `json:"skipped"`
}

func Decode(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return &c, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &c, nil
}

type Service struct {
	customers *customeruc.Service
	products  *productuc.Service
}

// NewService seeds through the customer and product use cases, so fixtures
// obey the same rules as customers and products created one by one.
func NewService(customerRepo domcustomer.Repository, productRepo domproduct.Repository) *Service {
	return &Service{
		customers: customeruc.NewService(customerRepo),
		products:  productuc.NewService(productRepo),
	}
}

// Apply writes the catalog entries. Entries whose id already exists are
// left untouched, so applying the same catalog twice is harmless.
func (s *Service) Apply(ctx context.Context, c *Catalog) (*Result, error) {
	res := &Result{}

	for i, f := range c.Customers {
		if f.ID != "" {
			_, err := s.customers.GetByID(ctx, f.ID)
			if err == nil {
				res.Skipped++
				continue
			}
			if !errors.Is(err, domcustomer.ErrCustomerNotFound) {
				return nil, err
			}
		}
		if _, err := s.customers.Create(ctx, customeruc.CreateCustomerInput{
			ID:    f.ID,
			Name:  f.Name,
			Email: f.Email,
		}); err != nil {
			return nil, fmt.Errorf("seed customers[%d]: %w", i, err)
		}
		res.Customers++
	}

	for i, f := range c.Products {
		price, err := decimal.NewFromString(f.Price)
		if err != nil {
			return nil, fmt.Errorf("seed products[%d]: %w: price %q", i, domproduct.ErrInvalidProduct, f.Price)
		}

		if f.ID != "" {
			_, err := s.products.GetByID(ctx, f.ID)
			if err == nil {
				res.Skipped++
				continue
			}
			if !errors.Is(err, domproduct.ErrProductNotFound) {
				return nil, err
			}
		}
		if _, err := s.products.Create(ctx, productuc.CreateProductInput{
			ID:       f.ID,
			Name:     f.Name,
			Price:    price,
			Quantity: f.Quantity,
		}); err != nil {
			return nil, fmt.Errorf("seed products[%d]: %w", i, err)
		}
		res.Products++
	}

	return res, nil
}
