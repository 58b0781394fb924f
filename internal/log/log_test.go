package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	oldW, oldF := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(oldW)
		log.SetFlags(oldF)
	})
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) entry {
	t.Helper()
	var e entry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &e); err != nil {
		t.Fatalf("not JSON: %q: %v", buf.String(), err)
	}
	return e
}

func TestLevels(t *testing.T) {
	cases := []struct {
		name  string
		write func()
		level string
	}{
		{"info", func() { Info(nil, "a", nil) }, "info"},
		{"audit", func() { Audit(nil, "a", nil) }, "audit"},
		{"security", func() { Security(nil, "a", nil) }, "warn"},
		{"error", func() { Error(nil, "a", errors.New("boom"), nil) }, "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := capture(t)
			tc.write()
			if e := decode(t, buf); e.Level != tc.level {
				t.Fatalf("level = %s, want %s", e.Level, tc.level)
			}
		})
	}
}

func TestNilContextOmitsRequestFields(t *testing.T) {
	buf := capture(t)
	Error(nil, "checkout.fail", errors.New("timeout"), map[string]any{"lines": 2})

	e := decode(t, buf)
	if e.Action != "checkout.fail" || e.Err != "timeout" || e.Fields["lines"] != float64(2) {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if strings.Contains(buf.String(), `"path"`) || strings.Contains(buf.String(), `"req_id"`) {
		t.Fatalf("request fields should be omitted: %s", buf.String())
	}
}

func TestRequestFields(t *testing.T) {
	buf := capture(t)
	app := fiber.New()
	app.Use(requestid.New())
	app.Get("/orders", func(c *fiber.Ctx) error {
		c.Status(fiber.StatusForbidden)
		Security(c, "access.denied.admin", nil)
		return nil
	})
	if _, err := app.Test(httptest.NewRequest("GET", "/orders", nil)); err != nil {
		t.Fatal(err)
	}

	e := decode(t, buf)
	if e.Method != "GET" || e.Path != "/orders" || e.Status != fiber.StatusForbidden {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.ReqID == "" {
		t.Fatal("missing req_id")
	}
}

func TestSetupWritesFile(t *testing.T) {
	oldW := log.Writer()
	t.Cleanup(func() { log.SetOutput(oldW) })

	path := filepath.Join(t.TempDir(), "app.log")
	c, err := Setup(path, false)
	if err != nil {
		t.Fatal(err)
	}
	Audit(nil, "order.place", nil)
	_ = c.Close()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"action":"order.place"`) {
		t.Fatalf("log file missing entry: %s", b)
	}
}

func TestSetupEmptyPath(t *testing.T) {
	c, err := Setup("", false)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}
