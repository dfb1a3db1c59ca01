package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	domorder "example.com/orderflow/internal/domain/order"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, data domorder.CreateData) (_ *domorder.Order, retErr error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	orderID := uuid.NewString()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO orders (id, customer_id, created_at, updated_at)
        VALUES (?, ?, ?, ?)
    `, orderID, data.Customer.ID, now, now)
	if err != nil {
		return nil, err
	}

	o := &domorder.Order{
		ID:        orderID,
		Customer:  data.Customer,
		Products:  make([]domorder.OrderProduct, 0, len(data.Products)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, item := range data.Products {
		op := domorder.OrderProduct{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO orders_products (id, order_id, position, product_id, price, quantity, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        `, op.ID, op.OrderID, i, op.ProductID, op.Price, op.Quantity, now, now)
		if err != nil {
			return nil, err
		}
		o.Products = append(o.Products, op)
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return o, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domorder.Order, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT o.id, o.created_at, o.updated_at,
               c.id, c.name, c.email, c.created_at, c.updated_at
        FROM orders o
        JOIN customers c ON c.id = o.customer_id
        WHERE o.id = ?
    `, id)

	var o domorder.Order
	c := &o.Customer
	if err := row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt,
		&c.ID, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}

	products, err := r.listOrderProducts(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Products = products
	return &o, nil
}

func (r *OrderRepository) listOrderProducts(ctx context.Context, orderID string) ([]domorder.OrderProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, order_id, product_id, price, quantity
        FROM orders_products WHERE order_id = ?
        ORDER BY position
    `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domorder.OrderProduct
	for rows.Next() {
		var p domorder.OrderProduct
		if err := rows.Scan(&p.ID, &p.OrderID, &p.ProductID, &p.Price, &p.Quantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
