package customer

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer does not exist")
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrInvalidCustomer  = errors.New("invalid customer")
)
