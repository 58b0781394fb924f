package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"woodenmart/internal/domain"
	"woodenmart/internal/repos"
	"woodenmart/internal/validate"
)

var (
	ErrEmptyOrder        = errors.New("order has no items")
	ErrInvalidOrder      = errors.New("invalid order")
	ErrUnknownProduct    = errors.New("unknown product")
	ErrInsufficientStock = errors.New("insufficient stock")
)

const (
	StatusPaid           = "PAID"
	StatusPendingPayment = "PENDING_PAYMENT"
)

type OrderService struct {
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
	// PaymentURL, when set, turns every order into a redirect to the payment page.
	PaymentURL string
}

func NewOrderService(prods *repos.ProductRepo, orders *repos.OrderRepo, paymentURL string) *OrderService {
	return &OrderService{Prods: prods, Orders: orders, PaymentURL: paymentURL}
}

// Place prices the request from the catalog, reserves stock and stores the order.
// Client-side prices are never consulted. The response is a redirect when a payment
// page is configured and a simulated success otherwise.
func (s *OrderService) Place(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResponse, domain.Order, error) {
	if len(req.Items) == 0 {
		return domain.CheckoutResponse{}, domain.Order{}, ErrEmptyOrder
	}
	email, ok := validate.Email(req.CustomerEmail)
	if !ok {
		return domain.CheckoutResponse{}, domain.Order{}, fmt.Errorf("%w: customer email", ErrInvalidOrder)
	}

	// merge repeated product ids, keep first-seen order
	qty := map[string]int{}
	var ids []string
	for _, it := range req.Items {
		if _, ok := validate.ID(it.ProductID); !ok {
			return domain.CheckoutResponse{}, domain.Order{}, fmt.Errorf("%w: product id", ErrInvalidOrder)
		}
		if _, ok := validate.Qty(it.Quantity); !ok {
			return domain.CheckoutResponse{}, domain.Order{}, fmt.Errorf("%w: quantity %d", ErrInvalidOrder, it.Quantity)
		}
		if _, seen := qty[it.ProductID]; !seen {
			ids = append(ids, it.ProductID)
		}
		qty[it.ProductID] += it.Quantity
	}

	order := domain.Order{ID: uuid.NewString(), CustomerEmail: email, Status: StatusPaid, Total: decimal.Zero}
	if s.PaymentURL != "" {
		order.Status = StatusPendingPayment
	}

	// pre-check stock
	for _, id := range ids {
		p, err := s.Prods.Get(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CheckoutResponse{}, domain.Order{}, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
		}
		if err != nil {
			return domain.CheckoutResponse{}, domain.Order{}, err
		}
		if p.Stock < qty[id] {
			return domain.CheckoutResponse{}, domain.Order{}, fmt.Errorf("%w for %s (need %d, have %d)", ErrInsufficientStock, id, qty[id], p.Stock)
		}
		line := domain.OrderItem{ProductID: id, Title: p.Title, Quantity: qty[id], Price: p.Price}
		order.Items = append(order.Items, line)
		order.Total = order.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if err := s.Orders.Create(ctx, order); err != nil {
		if errors.Is(err, repos.ErrNoStock) {
			return domain.CheckoutResponse{}, domain.Order{}, fmt.Errorf("%w: %v", ErrInsufficientStock, err)
		}
		return domain.CheckoutResponse{}, domain.Order{}, err
	}

	if s.PaymentURL != "" {
		return domain.CheckoutResponse{URL: s.paymentLink(order.ID)}, order, nil
	}
	return domain.CheckoutResponse{Success: true, OrderID: order.ID}, order, nil
}

func (s *OrderService) paymentLink(orderID string) string {
	u, err := url.Parse(s.PaymentURL)
	if err != nil {
		return s.PaymentURL
	}
	q := u.Query()
	q.Set("order_id", orderID)
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *OrderService) List(ctx context.Context, limit int) ([]domain.Order, error) {
	return s.Orders.ListLatest(ctx, limit)
}
