package order

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domcustomer "example.com/orderflow/internal/domain/customer"
	domproduct "example.com/orderflow/internal/domain/product"
)

func TestOrderTotal(t *testing.T) {
	o := &Order{Products: []OrderProduct{
		{ProductID: "P1", Price: decimal.RequireFromString("10.50"), Quantity: 3},
		{ProductID: "P2", Price: decimal.NewFromInt(20), Quantity: 2},
	}}

	require.Equal(t, "31.5", o.Products[0].Subtotal().String())
	require.Equal(t, "71.5", o.Total().String())
	require.True(t, (&Order{}).Total().IsZero())
}

func TestIsRejection(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{domcustomer.ErrCustomerNotFound, true},
		{ErrEmptyOrder, true},
		{fmt.Errorf("%w: products[0]", ErrInvalidQuantity), true},
		{domproduct.ErrProductNotFound, true},
		{fmt.Errorf("%w: product P2", domproduct.ErrInsufficientStock), true},
		{ErrOrderNotFound, false},
		{errors.New("connection reset"), false},
		{nil, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err), func(t *testing.T) {
			require.Equal(t, tt.want, IsRejection(tt.err))
		})
	}
}
