package product

import "errors"

var (
	ErrProductNotFound   = errors.New("products do not exist")
	ErrInsufficientStock = errors.New("insufficient product stock")
	ErrNameAlreadyUsed   = errors.New("product name already used")
	ErrInvalidProduct    = errors.New("invalid product")
)
