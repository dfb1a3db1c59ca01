package order

import (
	"errors"

	domcustomer "example.com/orderflow/internal/domain/customer"
	domproduct "example.com/orderflow/internal/domain/product"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order must contain at least one product")
	ErrInvalidQuantity = errors.New("product quantity must be greater than zero")
)

// IsRejection reports whether err is a business-rule rejection of a
// create-order request rather than an infrastructure failure.
func IsRejection(err error) bool {
	switch {
	case errors.Is(err, domcustomer.ErrCustomerNotFound),
		errors.Is(err, ErrEmptyOrder),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domproduct.ErrInsufficientStock):
		return true
	default:
		return false
	}
}
