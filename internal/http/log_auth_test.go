package handlers_test

import (
	"testing"

	"woodenmart/internal/server"
)

// auth logging on success/fail
func TestAuthLogs(t *testing.T) {
	app, _ := newApp(t, server.DefaultLimits)

	entries := captureLogs(t, func() {
		doJSON(t, app, "POST", "/auth/login", "", map[string]string{"email": adminEmail, "password": "wrongpass!"})
		doJSON(t, app, "POST", "/auth/login", "", map[string]string{"email": adminEmail, "password": adminPassword})
	})

	fail, ok := findAction(entries, "auth.login.fail")
	if !ok {
		t.Fatal("missing auth.login.fail log")
	}
	if fail.Level != "warn" {
		t.Fatalf("auth.login.fail level = %s", fail.Level)
	}
	if fail.Fields["email"] != adminEmail {
		t.Fatalf("auth.login.fail missing email: %v", fail.Fields)
	}
	for _, e := range entries {
		for _, v := range e.Fields {
			if s, _ := v.(string); s == "wrongpass!" || s == adminPassword {
				t.Fatalf("password leaked into log: %+v", e)
			}
		}
	}

	succ, ok := findAction(entries, "auth.login.success")
	if !ok {
		t.Fatal("missing auth.login.success log")
	}
	if succ.Level != "audit" || succ.Fields["role"] != "ADMIN" {
		t.Fatalf("bad success entry: %+v", succ)
	}
}
