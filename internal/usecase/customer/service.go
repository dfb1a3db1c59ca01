package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	dom "example.com/orderflow/internal/domain/customer"
)

type Service struct {
	repo      dom.Repository
	validator *validator.Validate
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo, validator: validator.New()}
}

// CreateCustomerInput describes a new customer. ID is generated when empty.
type CreateCustomerInput struct {
	ID    string `validate:"max=64"`
	Name  string `validate:"required,max=255"`
	Email string `validate:"required,email"`
}

func (s *Service) Create(ctx context.Context, in CreateCustomerInput) (*dom.Customer, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validator.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", dom.ErrInvalidCustomer, err)
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, dom.ErrCustomerNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, dom.ErrEmailAlreadyUsed
	}

	if in.ID == "" {
		in.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &dom.Customer{
		ID:        in.ID,
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) GetByID(ctx context.Context, id string) (*dom.Customer, error) {
	return s.repo.FindByID(ctx, id)
}
