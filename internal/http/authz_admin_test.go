package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"woodenmart/internal/domain"
	"woodenmart/internal/repos"
	"woodenmart/internal/server"
	"woodenmart/internal/services"
)

// GET /orders requires an ADMIN bearer token
func TestOrdersRequireAdmin(t *testing.T) {
	app, db := newApp(t, server.DefaultLimits)

	// Anonymous -> 401
	resp, _ := doJSON(t, app, "GET", "/orders", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	// Garbage token -> 401
	resp, _ = doJSON(t, app, "GET", "/orders", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %d", resp.StatusCode)
	}

	// Valid token, non-admin role -> 403
	auth := services.NewAuthService(repos.NewUserRepo(db), testConfig().JWTSecret, time.Hour)
	userTok, err := auth.Issue(&domain.User{ID: "u-seller", Email: "seller@example.com", Role: "USER"})
	if err != nil {
		t.Fatal(err)
	}
	resp, _ = doJSON(t, app, "GET", "/orders", userTok, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}

	// Admin -> 200 with a JSON array
	resp, body := doJSON(t, app, "GET", "/orders", loginToken(t, app), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin expected 200, got %d", resp.StatusCode)
	}
	var orders []domain.Order
	if err := json.Unmarshal(body, &orders); err != nil {
		t.Fatalf("orders not a JSON array: %s", body)
	}
}
