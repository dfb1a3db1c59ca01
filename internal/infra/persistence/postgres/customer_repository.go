package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	dom "example.com/orderflow/internal/domain/customer"
)

type CustomerRepository struct {
	db DB
}

func NewCustomerRepository(db DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *dom.Customer) (*dom.Customer, error) {
	_, err := r.db.Exec(ctx, `
        INSERT INTO customers (id, name, email, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `, c.ID, c.Name, c.Email, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, dom.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*dom.Customer, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, name, email, created_at, updated_at
        FROM customers WHERE id = $1
    `, id)
	return scanCustomer(row)
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*dom.Customer, error) {
	row := r.db.QueryRow(ctx, `
        SELECT id, name, email, created_at, updated_at
        FROM customers WHERE lower(email) = lower($1)
    `, email)
	return scanCustomer(row)
}

func scanCustomer(row pgx.Row) (*dom.Customer, error) {
	var c dom.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dom.ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}
