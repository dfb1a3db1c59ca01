package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dom "example.com/orderflow/internal/domain/product"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProductInput describes a catalog entry. ID is generated when empty;
// Price is stored rounded to cents.
type CreateProductInput struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

func (s *Service) Create(ctx context.Context, in CreateProductInput) (*dom.Product, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", dom.ErrInvalidProduct)
	case in.Price.IsNegative():
		return nil, fmt.Errorf("%w: price must not be negative", dom.ErrInvalidProduct)
	case in.Quantity < 0:
		return nil, fmt.Errorf("%w: quantity must not be negative", dom.ErrInvalidProduct)
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, dom.ErrProductNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, dom.ErrNameAlreadyUsed
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &dom.Product{
		ID:        id,
		Name:      name,
		Price:     in.Price.Round(2),
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*dom.Product, error) {
	return s.repo.FindByID(ctx, id)
}
