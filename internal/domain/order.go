package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Order is read-only on the client; it is only listed on the admin dashboard.
type Order struct {
	ID            string          `json:"id"`
	CustomerEmail string          `json:"user_email"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty"`
}

// UnmarshalJSON also accepts "customer_email" and "_id".
func (o *Order) UnmarshalJSON(b []byte) error {
	type plain Order
	var raw struct {
		plain
		AltID    string `json:"_id"`
		AltEmail string `json:"customer_email"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*o = Order(raw.plain)
	if o.ID == "" {
		o.ID = raw.AltID
	}
	if o.CustomerEmail == "" {
		o.CustomerEmail = raw.AltEmail
	}
	return nil
}

// ItemCount is the number of distinct lines on the order.
func (o Order) ItemCount() int { return len(o.Items) }

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// User is an account on the catalog stand-in.
type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"`
}
