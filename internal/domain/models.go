package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amounts travel as JSON numbers, not quoted strings.
func init() { decimal.MarshalJSONWithoutQuotes = true }

// Product is a catalog entry as served by GET /products.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Images      []string        `json:"images"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
}

// UnmarshalJSON accepts the identifier under either "id" or "_id" and stores it in ID.
// This is the only place that knows about the alternate field.
func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	var raw struct {
		plain
		AltID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Product(raw.plain)
	if p.ID == "" {
		p.ID = raw.AltID
	}
	return nil
}

// FirstImage returns the cover image or "" when the product has none.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductPayload is the body of POST /products.
type ProductPayload struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Images      []string        `json:"images"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
}

// MarshalJSON never emits a null image list.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	out := plain(p)
	if out.Images == nil {
		out.Images = []string{}
	}
	return json.Marshal(out)
}

// Availability converts stock into IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (p Product) Availability() string {
	switch {
	case p.Stock >= 5:
		return "IN_STOCK"
	case p.Stock > 0:
		return "LOW_STOCK"
	}
	return "OUT_OF_STOCK"
}
