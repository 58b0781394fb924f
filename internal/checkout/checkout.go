// Package checkout turns a cart into an order request and drives the session to one of
// three terminal outcomes: a payment redirect, a simulated success or a failure.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"woodenmart/internal/cart"
	"woodenmart/internal/domain"
	applog "woodenmart/internal/log"
)

const (
	MsgFailed      = "Checkout failed"
	msgOrderPlaced = "Payment simulated. Order placed: %s"
)

// ErrRejected is carried by a Failure outcome when the service answered but with
// neither a redirect nor a success.
var ErrRejected = errors.New("checkout rejected")

// Submitter posts an order request to the catalog service.
type Submitter interface {
	Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResponse, error)
}

// Notifier surfaces a blocking message to the user.
type Notifier interface {
	Notify(msg string)
}

// Navigator sends the user to an external page.
type Navigator interface {
	Navigate(url string)
}

type Kind int

const (
	// Skipped means the cart was empty and nothing was sent.
	Skipped Kind = iota
	Redirect
	Success
	Failure
)

func (k Kind) String() string {
	switch k {
	case Skipped:
		return "skipped"
	case Redirect:
		return "redirect"
	case Success:
		return "success"
	case Failure:
		return "failure"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

type Outcome struct {
	Kind    Kind
	URL     string
	OrderID string
	Err     error
}

// Interpret maps a checkout response to an outcome. A redirect URL wins over a success
// flag; anything else is a failure.
func Interpret(resp domain.CheckoutResponse) Outcome {
	switch {
	case resp.URL != "":
		return Outcome{Kind: Redirect, URL: resp.URL}
	case resp.Success:
		return Outcome{Kind: Success, OrderID: resp.OrderID}
	}
	err := ErrRejected
	if resp.Error != "" {
		err = fmt.Errorf("%w: %s", ErrRejected, resp.Error)
	}
	return Outcome{Kind: Failure, Err: err}
}

// Request builds the order request. Prices stay on the client.
func Request(items []domain.CartLineItem, email string) domain.CheckoutRequest {
	req := domain.CheckoutRequest{Items: make([]domain.CheckoutItem, 0, len(items)), CustomerEmail: email}
	for _, li := range items {
		req.Items = append(req.Items, domain.CheckoutItem{ProductID: li.ProductID, Quantity: li.Quantity})
	}
	return req
}

type Orchestrator struct {
	API      Submitter
	Notifier Notifier
	Nav      Navigator
}

func New(api Submitter, n Notifier, nav Navigator) *Orchestrator {
	return &Orchestrator{API: api, Notifier: n, Nav: nav}
}

// Checkout submits the cart once. The cart is cleared only after a success response has
// been observed; redirect and failure leave it as it was.
func (o *Orchestrator) Checkout(ctx context.Context, c *cart.Cart, email string) Outcome {
	items := c.Items()
	if len(items) == 0 {
		return Outcome{Kind: Skipped}
	}

	resp, err := o.API.Checkout(ctx, Request(items, email))
	if err != nil {
		applog.Error(nil, "checkout.fail", err, map[string]any{"email": email, "lines": len(items)})
		o.Notifier.Notify(MsgFailed)
		return Outcome{Kind: Failure, Err: err}
	}

	out := Interpret(resp)
	switch out.Kind {
	case Redirect:
		applog.Audit(nil, "checkout.redirect", map[string]any{"email": email, "url": out.URL})
		o.Nav.Navigate(out.URL)
	case Success:
		c.Clear()
		applog.Audit(nil, "checkout.success", map[string]any{"email": email, "order_id": out.OrderID})
		o.Notifier.Notify(fmt.Sprintf(msgOrderPlaced, out.OrderID))
	default:
		applog.Error(nil, "checkout.fail", out.Err, map[string]any{"email": email, "lines": len(items)})
		o.Notifier.Notify(MsgFailed)
	}
	return out
}
