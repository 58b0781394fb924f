package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"woodenmart/internal/domain"
	"woodenmart/internal/server"
)

func TestProductListNormalizedShape(t *testing.T) {
	app, _ := newApp(t, server.DefaultLimits)

	resp, body := doJSON(t, app, "GET", "/products", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var raw []map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatal(err)
	}
	if len(raw) == 0 {
		t.Fatal("no seeded products")
	}
	for _, p := range raw {
		if _, ok := p["id"].(string); !ok {
			t.Fatalf("product without id: %v", p)
		}
		if _, ok := p["price"].(float64); !ok {
			t.Fatalf("price is not a JSON number: %v", p["price"])
		}
		if _, ok := p["images"].([]any); !ok {
			t.Fatalf("images is not an array: %v", p["images"])
		}
	}
}

func TestProductCreateValidation(t *testing.T) {
	app, _ := newApp(t, server.DefaultLimits)

	bad := []string{
		`{"title":"","price":100}`,
		`{"title":"Chair","price":-5}`,
		`{"title":"Chair","price":100,"currency":"rupees"}`,
		`{"title":"Chair","price":100,"stock":-1}`,
		`{"title":` + `"` + strings.Repeat("x", 200) + `","price":1}`,
		`not json`,
	}
	for _, b := range bad {
		resp, body := doJSON(t, app, "POST", "/products", "", b)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d body=%s", b, resp.StatusCode, body)
		}
	}

	resp, body := doJSON(t, app, "POST", "/products", "", map[string]any{
		"title": "Oak Bookcase", "description": "", "price": 15999, "currency": "inr",
		"images": []string{"https://img.example/oak.jpg"}, "stock": 4, "featured": false,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", resp.StatusCode, body)
	}
	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil || p.ID == "" {
		t.Fatalf("created product lacks id: %s", body)
	}

	_, body = doJSON(t, app, "GET", "/products", "", nil)
	if !strings.Contains(string(body), p.ID) {
		t.Fatalf("created product not listed")
	}
}

func TestCheckoutValidation(t *testing.T) {
	app, _ := newApp(t, server.DefaultLimits)

	bad := []string{
		`{"items":[],"customer_email":"customer@example.com"}`,
		`{"items":[{"product_id":"teak-chair-001","quantity":1}],"customer_email":"nope"}`,
		`{"items":[{"product_id":"teak-chair-001","quantity":0}],"customer_email":"customer@example.com"}`,
		`{"items":[{"product_id":"../etc/passwd","quantity":1}],"customer_email":"customer@example.com"}`,
		`{"items":[{"product_id":"ghost","quantity":1}],"customer_email":"customer@example.com"}`,
		`{"items":[{"product_id":"walnut-shelf-001","quantity":9}],"customer_email":"customer@example.com"}`,
	}
	for _, b := range bad {
		resp, body := doJSON(t, app, "POST", "/checkout", "", b)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", b, resp.StatusCode)
		}
		var cr domain.CheckoutResponse
		if err := json.Unmarshal(body, &cr); err != nil {
			t.Fatalf("rejection is not JSON: %s", body)
		}
		if cr.Success || cr.URL != "" || cr.Error == "" {
			t.Fatalf("rejection has wrong shape: %s", body)
		}
	}
}
