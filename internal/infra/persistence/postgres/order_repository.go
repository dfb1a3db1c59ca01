package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domorder "example.com/orderflow/internal/domain/order"
)

type OrderRepository struct {
	db DB
}

func NewOrderRepository(db DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, data domorder.CreateData) (_ *domorder.Order, retErr error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	now := time.Now().UTC()
	o := &domorder.Order{
		ID:        uuid.NewString(),
		Customer:  data.Customer,
		Products:  make([]domorder.OrderProduct, 0, len(data.Products)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO orders (id, customer_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
    `, o.ID, data.Customer.ID, now, now)
	if err != nil {
		return nil, err
	}

	for i, item := range data.Products {
		op := domorder.OrderProduct{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		_, err = tx.Exec(ctx, `
            INSERT INTO orders_products (id, order_id, position, product_id, price, quantity, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8)
        `, op.ID, op.OrderID, i, op.ProductID, op.Price.String(), op.Quantity, now, now)
		if err != nil {
			return nil, err
		}
		o.Products = append(o.Products, op)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domorder.Order, error) {
	row := r.db.QueryRow(ctx, `
        SELECT o.id, o.created_at, o.updated_at,
               c.id, c.name, c.email, c.created_at, c.updated_at
        FROM orders o
        JOIN customers c ON c.id = o.customer_id
        WHERE o.id = $1
    `, id)

	var o domorder.Order
	c := &o.Customer
	if err := row.Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt,
		&c.ID, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
        SELECT id, order_id, product_id, price::text, quantity
        FROM orders_products WHERE order_id = $1
        ORDER BY position
    `, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domorder.OrderProduct
		var price string
		if err := rows.Scan(&p.ID, &p.OrderID, &p.ProductID, &price, &p.Quantity); err != nil {
			return nil, err
		}
		if p.Price, err = parsePrice(price); err != nil {
			return nil, err
		}
		o.Products = append(o.Products, p)
	}
	return &o, rows.Err()
}
