package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order — a committed purchase. The id is assigned by the store on commit;
// the row is never mutated afterwards within this service.
type Order struct {
	ID           int64       `json:"order_id"`
	CustomerName string      `json:"customer_name"`
	Phone        string      `json:"phone,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	Lines        []OrderLine `json:"items,omitempty"`
}

// OrderLine — one product quantity within an order. Price is the catalog
// price captured at order time and is never recomputed.
type OrderLine struct {
	ProductID int64           `json:"product_id"`
	Qty       int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
}

// LineInput — one requested product quantity before pricing.
type LineInput struct {
	ProductID int64
	Qty       int
}

// OrderRequest — validated intake input for creating an order.
type OrderRequest struct {
	CustomerName string
	Phone        string
	Lines        []LineInput
}

func (r OrderRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return fmt.Errorf("%w: customer name required", ErrValidation)
	}
	if len(r.Lines) == 0 {
		return fmt.Errorf("%w: at least one item required", ErrValidation)
	}
	for _, l := range r.Lines {
		if l.Qty < 1 {
			return fmt.Errorf("%w: item quantity must be positive", ErrValidation)
		}
	}
	return nil
}
