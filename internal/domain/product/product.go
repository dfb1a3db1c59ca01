package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Ref identifies a requested product and the quantity asked for it.
type Ref struct {
	ID       string
	Quantity int64
}

// QuantityUpdate sets the stock of a product to an absolute value.
type QuantityUpdate struct {
	ID       string
	Quantity int64
}

// IDs returns the product ids of refs in order.
func IDs(refs []Ref) []string {
	ids := make([]string, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids
}
