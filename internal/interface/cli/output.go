package cli

import (
	"encoding/json"
	"errors"
	"io"

	domcustomer "example.com/orderflow/internal/domain/customer"
	domorder "example.com/orderflow/internal/domain/order"
	domproduct "example.com/orderflow/internal/domain/product"
)

const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitRejected = 2
)

func writeJSON(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func mapOrder(o *domorder.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Products))
	for _, p := range o.Products {
		items = append(items, map[string]any{
			"id":         p.ID,
			"product_id": p.ProductID,
			"price":      p.Price.StringFixed(2),
			"quantity":   p.Quantity,
			"subtotal":   p.Subtotal().StringFixed(2),
		})
	}

	return map[string]any{
		"id":          o.ID,
		"customer_id": o.Customer.ID,
		"total":       o.Total().StringFixed(2),
		"created_at":  o.CreatedAt,
		"items":       items,
	}
}

func mapProduct(p *domproduct.Product) map[string]any {
	return map[string]any{
		"id":         p.ID,
		"name":       p.Name,
		"price":      p.Price.StringFixed(2),
		"quantity":   p.Quantity,
		"created_at": p.CreatedAt,
	}
}

// ExitCode maps a command error to a process exit code. Requests the
// domain refuses exit with ExitRejected; everything else is ExitFailure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case domorder.IsRejection(err),
		errors.Is(err, domorder.ErrOrderNotFound),
		errors.Is(err, domcustomer.ErrEmailAlreadyUsed),
		errors.Is(err, domcustomer.ErrInvalidCustomer),
		errors.Is(err, domproduct.ErrNameAlreadyUsed),
		errors.Is(err, domproduct.ErrInvalidProduct):
		return ExitRejected
	default:
		return ExitFailure
	}
}
