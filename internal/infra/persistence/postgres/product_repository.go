package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domproduct "example.com/orderflow/internal/domain/product"
)

const productColumns = `id, name, price::text, quantity, created_at, updated_at`

type ProductRepository struct {
	db DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	_, err := r.db.Exec(ctx, `
        INSERT INTO products (id, name, price, quantity, created_at, updated_at)
        VALUES ($1, $2, $3::numeric, $4, $5, $6)
    `, p.ID, p.Name, p.Price.String(), p.Quantity, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domproduct.ErrNameAlreadyUsed
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domproduct.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domproduct.ErrProductNotFound
	}
	return p, err
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domproduct.Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE name = $1`, name)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domproduct.ErrProductNotFound
	}
	return p, err
}

func (r *ProductRepository) FindAllByID(ctx context.Context, refs []domproduct.Ref) ([]*domproduct.Product, error) {
	if len(refs) == 0 {
		return []*domproduct.Product{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, domproduct.IDs(refs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domproduct.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// UpdateQuantity writes every update in one transaction. An id that matches
// no row rolls the whole batch back.
func (r *ProductRepository) UpdateQuantity(ctx context.Context, updates []domproduct.QuantityUpdate) (retErr error) {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	now := time.Now().UTC()
	for _, u := range updates {
		tag, err := tx.Exec(ctx, `UPDATE products SET quantity = $1, updated_at = $2 WHERE id = $3`, u.Quantity, now, u.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", domproduct.ErrProductNotFound, u.ID)
		}
	}

	return tx.Commit(ctx)
}

func scanProduct(row pgx.Row) (*domproduct.Product, error) {
	var p domproduct.Product
	var price string
	if err := row.Scan(&p.ID, &p.Name, &price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := parsePrice(price)
	if err != nil {
		return nil, err
	}
	p.Price = parsed
	return &p, nil
}
