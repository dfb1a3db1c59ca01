package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domcustomer "example.com/orderflow/internal/domain/customer"
	domorder "example.com/orderflow/internal/domain/order"
)

type mockOrderRepository struct {
	orders map[string]*domorder.Order
	getErr error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{
		orders: make(map[string]*domorder.Order),
	}
}

func (m *mockOrderRepository) Create(ctx context.Context, data domorder.CreateData) (*domorder.Order, error) {
	return nil, nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*domorder.Order, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if order, ok := m.orders[id]; ok {
		cloned := *order
		return &cloned, nil
	}
	return nil, domorder.ErrOrderNotFound
}

func TestGetOrder_NotFound(t *testing.T) {
	repo := newMockOrderRepository()
	svc := NewService(repo)

	order, err := svc.GetByID(context.Background(), "missing")

	require.ErrorIs(t, err, domorder.ErrOrderNotFound)
	require.Nil(t, order)
}

func TestGetOrder_Found(t *testing.T) {
	repo := newMockOrderRepository()
	repo.orders["O1"] = &domorder.Order{
		ID:       "O1",
		Customer: domcustomer.Customer{ID: "C1", Name: "Ana"},
		Products: []domorder.OrderProduct{
			{ID: "OP1", OrderID: "O1", ProductID: "P1", Price: decimal.RequireFromString("999.99"), Quantity: 2},
		},
		CreatedAt: time.Now(),
	}
	svc := NewService(repo)

	order, err := svc.GetByID(context.Background(), "O1")

	require.NoError(t, err)
	require.NotNil(t, order)
	require.Equal(t, "O1", order.ID)
	require.Equal(t, "C1", order.Customer.ID)
	require.Len(t, order.Products, 1)
	require.Equal(t, "1999.98", order.Total().String())
}

func TestGetOrder_RepositoryError(t *testing.T) {
	repo := newMockOrderRepository()
	repo.getErr = errors.New("connection reset")
	svc := NewService(repo)

	order, err := svc.GetByID(context.Background(), "O1")

	require.EqualError(t, err, "connection reset")
	require.Nil(t, order)
}
