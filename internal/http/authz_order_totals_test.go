package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"woodenmart/internal/domain"
	"woodenmart/internal/repos"
	"woodenmart/internal/server"
)

// ignore client price/total; recompute server-side
func TestOrderTotalsRecomputed(t *testing.T) {
	app, db := newApp(t, server.DefaultLimits)

	// Tampered prices and totals in the body are not part of the contract and must be ignored
	body := `{"items":[{"product_id":"teak-chair-001","quantity":2,"price":1}],"customer_email":"customer@example.com","total":2}`
	resp, out := doJSON(t, app, "POST", "/checkout", "", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on checkout, got %d body=%s", resp.StatusCode, out)
	}
	var cr domain.CheckoutResponse
	if err := json.Unmarshal(out, &cr); err != nil {
		t.Fatal(err)
	}
	if !cr.Success || cr.OrderID == "" {
		t.Fatalf("expected simulated success, got %s", out)
	}

	ord, err := repos.NewOrderRepo(db).Get(context.Background(), cr.OrderID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	// Real price is 4999; two items => 9998
	if !ord.Total.Equal(decimal.NewFromInt(9998)) {
		t.Fatalf("order total not recomputed; got %v", ord.Total)
	}
}
