// Package api is a typed client for the catalog service's REST endpoints:
// products, checkout, login and orders.
//
// Every call runs under its own deadline (see WithTimeout) in addition to whatever the
// caller's context carries. Nothing is retried.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"woodenmart/internal/domain"
)

const maxBody = 1 << 20 // 1 MiB

// ErrUnexpectedStatus is wrapped by every *StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status")

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// Client talks to one catalog service.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration

	breaker *BreakerSettings
}

// Option configures the client.
type Option func(*Client)

// WithTimeout bounds each call. Zero keeps the default of 10s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTransport replaces the HTTP transport, e.g. to reach an in-process server.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// WithBreaker makes the client fail fast after consecutive transport or 5xx failures.
func WithBreaker(s BreakerSettings) Option {
	return func(c *Client) { c.breaker = &s }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		timeout: 10 * time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	if c.breaker != nil {
		next := c.http.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		c.http.Transport = newBreakerTransport(*c.breaker, next)
	}
	return c
}

// do sends one request and returns the status and body. Only transport failures and
// unreadable bodies are errors here; callers decide what a status means.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, b, nil
}

func ok(status int) bool { return status >= 200 && status < 300 }

func statusError(op string, status int, body []byte) error {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return &StatusError{Op: op, Status: status, Body: s}
}

// ListProducts calls GET /products.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	status, b, err := c.do(ctx, http.MethodGet, "/products", "", nil)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if !ok(status) {
		return nil, statusError("list products", status, b)
	}
	var out []domain.Product
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("list products: decoding: %w", err)
	}
	return out, nil
}

// CreateProduct calls POST /products. The created product in the response is not used;
// callers re-read the catalog instead. token may be empty.
func (c *Client) CreateProduct(ctx context.Context, token string, p domain.ProductPayload) error {
	status, b, err := c.do(ctx, http.MethodPost, "/products", token, p)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	if !ok(status) {
		return statusError("create product", status, b)
	}
	return nil
}

// Checkout calls POST /checkout. The body is decoded whatever the status, because the
// outcome is carried by its shape; only a body that is not a JSON object is an error.
func (c *Client) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResponse, error) {
	status, b, err := c.do(ctx, http.MethodPost, "/checkout", "", req)
	if err != nil {
		return domain.CheckoutResponse{}, fmt.Errorf("checkout: %w", err)
	}
	var out domain.CheckoutResponse
	if err := json.Unmarshal(b, &out); err != nil {
		if !ok(status) {
			return domain.CheckoutResponse{}, statusError("checkout", status, b)
		}
		return domain.CheckoutResponse{}, fmt.Errorf("checkout: decoding: %w", err)
	}
	return out, nil
}

// Login calls POST /auth/login and returns the session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	status, b, err := c.do(ctx, http.MethodPost, "/auth/login", "", domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if !ok(status) {
		return "", statusError("login", status, b)
	}
	var out domain.LoginResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return "", fmt.Errorf("login: decoding: %w", err)
	}
	return out.Token, nil
}

// ListOrders calls GET /orders, sending token as a bearer credential when set.
func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	status, b, err := c.do(ctx, http.MethodGet, "/orders", token, nil)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if !ok(status) {
		return nil, statusError("list orders", status, b)
	}
	var out []domain.Order
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("list orders: decoding: %w", err)
	}
	return out, nil
}
