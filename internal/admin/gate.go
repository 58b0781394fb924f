// Package admin gates the administrative view behind a token obtained from the
// catalog service's login endpoint.
//
// The gate only tracks whether a token is present. It never inspects the token; the
// service decides whether it is still good.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"woodenmart/internal/domain"
	applog "woodenmart/internal/log"
	"woodenmart/internal/validate"
)

// TokenKey is the local storage key the token is persisted under.
const TokenKey = "wm_token"

const MsgInvalidCredentials = "Invalid credentials"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// Store persists the token between runs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Service is the part of the catalog service the gate talks to.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
}

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

type Gate struct {
	svc   Service
	store Store

	mu     sync.RWMutex
	token  string
	orders []domain.Order
}

// NewGate restores a previously persisted token. It does not load orders; see Restore.
func NewGate(ctx context.Context, svc Service, store Store) (*Gate, error) {
	g := &Gate{svc: svc, store: store}
	tok, ok, err := store.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("restore admin token: %w", err)
	}
	if ok && tok != "" {
		g.token = tok
		applog.Info(nil, "admin.restore", nil)
	}
	return g, nil
}

func (g *Gate) State() State {
	if g.IsAuthenticated() {
		return Authenticated
	}
	return Anonymous
}

// IsAuthenticated reports whether a token is held.
func (g *Gate) IsAuthenticated() bool { return g.Token() != "" }

func (g *Gate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// Login exchanges credentials for a token, persists it and loads the order list.
// Any rejection, including an accepted response without a token, returns
// ErrInvalidCredentials and leaves the gate and the store untouched.
func (g *Gate) Login(ctx context.Context, email, password string) error {
	email, okEmail := validate.Email(email)
	if !okEmail || !validate.Password(password) {
		applog.Security(nil, "admin.login.fail", map[string]any{"email": email, "reason": "malformed"})
		return ErrInvalidCredentials
	}

	tok, err := g.svc.Login(ctx, email, password)
	if err != nil {
		applog.Security(nil, "admin.login.fail", map[string]any{"email": email, "err": err.Error()})
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	if tok == "" {
		applog.Security(nil, "admin.login.fail", map[string]any{"email": email, "reason": "empty token"})
		return ErrInvalidCredentials
	}

	if err := g.store.Set(ctx, TokenKey, tok); err != nil {
		applog.Error(nil, "admin.login.persist.fail", err, nil)
		return fmt.Errorf("persist admin token: %w", err)
	}
	g.mu.Lock()
	g.token = tok
	g.mu.Unlock()
	applog.Audit(nil, "admin.login.success", map[string]any{"email": email})

	_ = g.LoadOrders(ctx)
	return nil
}

// Logout forgets the token and the order list whatever the current state. The gate is
// Anonymous on return even if removing the stored token fails.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	g.token = ""
	g.orders = nil
	g.mu.Unlock()
	applog.Audit(nil, "admin.logout", nil)

	if err := g.store.Remove(ctx, TokenKey); err != nil {
		applog.Error(nil, "admin.logout.persist.fail", err, nil)
		return fmt.Errorf("remove admin token: %w", err)
	}
	return nil
}

// LoadOrders re-fetches the order list. A failure keeps the previous list.
func (g *Gate) LoadOrders(ctx context.Context) error {
	tok := g.Token()
	if tok == "" {
		return ErrNotAuthenticated
	}
	orders, err := g.svc.ListOrders(ctx, tok)
	if err != nil {
		applog.Error(nil, "admin.orders.load.fail", err, nil)
		return err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	g.mu.Lock()
	// a logout may have happened while the request was in flight
	if g.token == tok {
		g.orders = orders
	}
	g.mu.Unlock()
	applog.Info(nil, "admin.orders.load", map[string]any{"count": len(orders)})
	return nil
}

// Orders returns a copy of the last loaded order list.
func (g *Gate) Orders() []domain.Order {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.Order, len(g.orders))
	copy(out, g.orders)
	return out
}
