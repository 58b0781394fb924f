package domain

import "github.com/shopspring/decimal"

// CartLineItem is one cart row. Title and Price are captured when the product is first
// added and are not refreshed from the catalog afterwards.
type CartLineItem struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is Price × Quantity.
func (li CartLineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CheckoutItem is a line of the checkout request. Prices are not sent; the catalog
// service prices the order itself.
type CheckoutItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest is the body of POST /checkout.
type CheckoutRequest struct {
	Items         []CheckoutItem `json:"items"`
	CustomerEmail string         `json:"customer_email"`
}

// CheckoutResponse covers every shape POST /checkout may answer with. Which outcome it
// stands for is decided by the checkout package, not here.
type CheckoutResponse struct {
	URL     string `json:"url,omitempty"`
	Success bool   `json:"success,omitempty"`
	OrderID string `json:"order_id,omitempty"`
	Error   string `json:"error,omitempty"`
}
