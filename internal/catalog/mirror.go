// Package catalog keeps the session's copy of the product list and submits new
// products from the draft form.
package catalog

import (
	"context"
	"sync"

	"woodenmart/internal/domain"
	applog "woodenmart/internal/log"
)

const (
	MsgLoadFailed   = "Could not load products"
	MsgCreateFailed = "Could not create product"
)

// Source is the part of the catalog service the mirror needs.
type Source interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, token string, p domain.ProductPayload) error
}

// Mirror holds the last product list fetched from the service.
type Mirror struct {
	src Source

	mu       sync.RWMutex
	products []domain.Product
}

func NewMirror(src Source) *Mirror { return &Mirror{src: src} }

// Refresh replaces the whole list with the service's current one. On error the previous
// list stays in place.
func (m *Mirror) Refresh(ctx context.Context) error {
	products, err := m.src.ListProducts(ctx)
	if err != nil {
		applog.Error(nil, "catalog.refresh.fail", err, nil)
		return err
	}
	if products == nil {
		products = []domain.Product{}
	}
	m.mu.Lock()
	m.products = products
	m.mu.Unlock()
	applog.Info(nil, "catalog.refresh", map[string]any{"count": len(products)})
	return nil
}

// Products returns a copy of the mirrored list.
func (m *Mirror) Products() []domain.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out
}

func (m *Mirror) Find(id string) (domain.Product, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (m *Mirror) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products)
}

// Create submits d. The mirror is not touched; callers refresh afterwards to pick up
// the service's canonical copy. d is reset to DefaultDraft only when the service
// accepts it, so a failed attempt can be retried as is.
func (m *Mirror) Create(ctx context.Context, token string, d *Draft) error {
	payload, err := d.Payload()
	if err != nil {
		applog.Info(nil, "catalog.create.invalid", map[string]any{"err": err.Error()})
		return err
	}
	if err := m.src.CreateProduct(ctx, token, payload); err != nil {
		applog.Error(nil, "catalog.create.fail", err, map[string]any{"title": payload.Title})
		return err
	}
	applog.Audit(nil, "catalog.create", map[string]any{"title": payload.Title, "price": payload.Price.String()})
	*d = DefaultDraft()
	return nil
}
