// Package session owns the state of one storefront session and is the only entry
// point the UI uses to read or change it.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"woodenmart/internal/admin"
	"woodenmart/internal/cart"
	"woodenmart/internal/catalog"
	"woodenmart/internal/checkout"
	"woodenmart/internal/domain"
)

// ErrUnknownProduct is returned by AddToCart for ids that are not in the mirror.
var ErrUnknownProduct = errors.New("product not in catalog")

// API is everything the session needs from the catalog service.
type API interface {
	catalog.Source
	checkout.Submitter
	admin.Service
}

// UI receives blocking notifications and navigation requests.
type UI interface {
	checkout.Notifier
	checkout.Navigator
}

type Session struct {
	cart     *cart.Cart
	catalog  *catalog.Mirror
	checkout *checkout.Orchestrator
	gate     *admin.Gate
	ui       UI

	mu    sync.RWMutex
	email string
}

// New builds a session and restores a persisted admin token, if any. It does no
// network I/O; call Start for that.
func New(ctx context.Context, api API, store admin.Store, ui UI, customerEmail string) (*Session, error) {
	gate, err := admin.NewGate(ctx, api, store)
	if err != nil {
		return nil, err
	}
	return &Session{
		cart:     cart.New(),
		catalog:  catalog.NewMirror(api),
		checkout: checkout.New(api, ui, ui),
		gate:     gate,
		ui:       ui,
		email:    customerEmail,
	}, nil
}

// Start loads the catalog and, when a token was restored, the order list.
func (s *Session) Start(ctx context.Context) {
	_ = s.Refresh(ctx)
	if s.gate.IsAuthenticated() {
		_ = s.gate.LoadOrders(ctx)
	}
}

// Refresh re-reads the catalog. A failure is surfaced and the previous list is kept.
func (s *Session) Refresh(ctx context.Context) error {
	if err := s.catalog.Refresh(ctx); err != nil {
		s.ui.Notify(catalog.MsgLoadFailed)
		return err
	}
	return nil
}

func (s *Session) Products() []domain.Product { return s.catalog.Products() }

// AddToCart adds one unit of a mirrored product.
func (s *Session) AddToCart(productID string) (domain.CartLineItem, error) {
	p, ok := s.catalog.Find(productID)
	if !ok {
		return domain.CartLineItem{}, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	return s.cart.Add(p), nil
}

func (s *Session) CartItems() []domain.CartLineItem { return s.cart.Items() }
func (s *Session) Total() decimal.Decimal { return s.cart.Total() }
func (s *Session) Count() int { return s.cart.Count() }

func (s *Session) CustomerEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) SetCustomerEmail(email string) {
	s.mu.Lock()
	s.email = email
	s.mu.Unlock()
}

// Checkout submits the cart for the current customer email.
func (s *Session) Checkout(ctx context.Context) checkout.Outcome {
	return s.checkout.Checkout(ctx, s.cart, s.CustomerEmail())
}

// CreateProduct is the seller path: no login required.
func (s *Session) CreateProduct(ctx context.Context, d *catalog.Draft) error {
	return s.create(ctx, "", d)
}

// AdminCreateProduct is the dashboard quick-add; it needs an authenticated gate and
// sends the admin token along.
func (s *Session) AdminCreateProduct(ctx context.Context, d *catalog.Draft) error {
	tok := s.gate.Token()
	if tok == "" {
		return admin.ErrNotAuthenticated
	}
	return s.create(ctx, tok, d)
}

func (s *Session) create(ctx context.Context, token string, d *catalog.Draft) error {
	if err := s.catalog.Create(ctx, token, d); err != nil {
		s.ui.Notify(catalog.MsgCreateFailed)
		return err
	}
	_ = s.Refresh(ctx)
	return nil
}

// Login authenticates the admin gate. Rejections are surfaced with a generic message.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if err := s.gate.Login(ctx, email, password); err != nil {
		s.ui.Notify(admin.MsgInvalidCredentials)
		return err
	}
	return nil
}

func (s *Session) Logout(ctx context.Context) error { return s.gate.Logout(ctx) }

func (s *Session) IsAdmin() bool { return s.gate.IsAuthenticated() }
func (s *Session) AdminState() admin.State { return s.gate.State() }
func (s *Session) Orders() []domain.Order { return s.gate.Orders() }

// LoadOrders re-fetches the admin order list; on failure the previous list is kept.
func (s *Session) LoadOrders(ctx context.Context) error { return s.gate.LoadOrders(ctx) }
