// Package cart aggregates line items for one storefront session.
// The only mutations are add-or-increment and clear.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"woodenmart/internal/domain"
	applog "woodenmart/internal/log"
)

// Cart keeps at most one line item per product id, in insertion order.
type Cart struct {
	mu    sync.Mutex
	items []domain.CartLineItem
}

func New() *Cart { return &Cart{} }

// Add increments the existing line for p, or appends a new line with quantity one using
// p's current title and price as the snapshot.
func (c *Cart) Add(p domain.Product) domain.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			applog.Info(nil, "cart.add", map[string]any{"product_id": p.ID, "quantity": c.items[i].Quantity})
			return c.items[i]
		}
	}
	li := domain.CartLineItem{ProductID: p.ID, Title: p.Title, Price: p.Price, Quantity: 1}
	c.items = append(c.items, li)
	applog.Info(nil, "cart.add", map[string]any{"product_id": p.ID, "quantity": 1})
	return li
}

// Items returns a copy of the current lines.
func (c *Cart) Items() []domain.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartLineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is recomputed on every call.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, li := range c.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, li := range c.items {
		n += li.Quantity
	}
	return n
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) IsEmpty() bool { return c.Len() == 0 }

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}
