package catalog

import (
	"errors"
	"fmt"

	"woodenmart/internal/domain"
	"woodenmart/internal/validate"
)

// ErrInvalidDraft wraps every reason a draft cannot be submitted.
var ErrInvalidDraft = errors.New("invalid product draft")

// Draft is the product form as the user fills it in. Price is kept as typed so a
// rejected submission can be shown back unchanged.
type Draft struct {
	Title       string
	Description string
	Price       string
	Currency    string
	Images      []string
	Stock       int
	Featured    bool
}

// DefaultDraft is the empty form.
func DefaultDraft() Draft {
	return Draft{Price: "4999", Currency: "inr", Images: []string{}, Stock: 10}
}

// SetImage replaces the cover image slot, the only one the form exposes.
func (d *Draft) SetImage(url string) { d.Images = []string{url} }

// Payload converts the draft into a request body, dropping blank image entries.
func (d Draft) Payload() (domain.ProductPayload, error) {
	title, ok := validate.Title(d.Title)
	if !ok {
		return domain.ProductPayload{}, fmt.Errorf("%w: title is required", ErrInvalidDraft)
	}
	price, ok := validate.Price(d.Price)
	if !ok {
		return domain.ProductPayload{}, fmt.Errorf("%w: price %q", ErrInvalidDraft, d.Price)
	}
	cur, ok := validate.Currency(d.Currency)
	if !ok {
		return domain.ProductPayload{}, fmt.Errorf("%w: currency %q", ErrInvalidDraft, d.Currency)
	}
	if d.Stock < 0 {
		return domain.ProductPayload{}, fmt.Errorf("%w: negative stock", ErrInvalidDraft)
	}
	return domain.ProductPayload{
		Title:       title,
		Description: d.Description,
		Price:       price,
		Currency:    cur,
		Images:      validate.Images(d.Images),
		Stock:       d.Stock,
		Featured:    d.Featured,
	}, nil
}
