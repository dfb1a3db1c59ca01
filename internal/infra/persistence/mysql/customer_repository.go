package mysql

import (
	"context"
	"database/sql"
	"errors"

	dom "example.com/orderflow/internal/domain/customer"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, c *dom.Customer) (*dom.Customer, error) {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO customers (id, name, email, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
    `, c.ID, c.Name, c.Email, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, dom.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*dom.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, email, created_at, updated_at
        FROM customers WHERE id = ?
    `, id)
	return scanCustomer(row)
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*dom.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, email, created_at, updated_at
        FROM customers WHERE email = ?
    `, email)
	return scanCustomer(row)
}

func scanCustomer(row *sql.Row) (*dom.Customer, error) {
	var c dom.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dom.ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}
