package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	domproduct "example.com/orderflow/internal/domain/product"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO products (id, name, price, quantity, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, p.ID, p.Name, p.Price, p.Quantity, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, domproduct.ErrNameAlreadyUsed
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, price, quantity, created_at, updated_at
        FROM products WHERE id = ?
    `, id)
	return scanProduct(row)
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domproduct.Product, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, price, quantity, created_at, updated_at
        FROM products WHERE name = ?
    `, name)
	return scanProduct(row)
}

func (r *ProductRepository) FindAllByID(ctx context.Context, refs []domproduct.Ref) ([]*domproduct.Product, error) {
	if len(refs) == 0 {
		return []*domproduct.Product{}, nil
	}

	query := `
        SELECT id, name, price, quantity, created_at, updated_at
        FROM products
        WHERE id IN (?` + strings.Repeat(",?", len(refs)-1) + `)
    `

	args := make([]any, len(refs))
	for i, ref := range refs {
		args[i] = ref.ID
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domproduct.Product
	for rows.Next() {
		var p domproduct.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) UpdateQuantity(ctx context.Context, updates []domproduct.QuantityUpdate) (retErr error) {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
        UPDATE products SET quantity = ?, updated_at = ?
        WHERE id = ?
    `)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, u := range updates {
		res, err := stmt.ExecContext(ctx, u.Quantity, now, u.ID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", domproduct.ErrProductNotFound, u.ID)
		}
	}

	return tx.Commit()
}

func scanProduct(row *sql.Row) (*domproduct.Product, error) {
	var p domproduct.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}
