package order

import (
	"time"

	"github.com/shopspring/decimal"

	domcustomer "example.com/orderflow/internal/domain/customer"
)

type Order struct {
	ID        string               `json:"id"`
	Customer  domcustomer.Customer `json:"customer"`
	Products  []OrderProduct       `json:"order_products"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// OrderProduct is a line item. Price is copied from the catalog when the
// order is created and never follows later catalog changes.
type OrderProduct struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

func (p OrderProduct) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(p.Quantity))
}

func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Products {
		total = total.Add(p.Subtotal())
	}
	return total
}

// LineItem is the input for one order product.
type LineItem struct {
	ProductID string
	Price     decimal.Decimal
	Quantity  int64
}

type CreateData struct {
	Customer domcustomer.Customer
	Products []LineItem
}
