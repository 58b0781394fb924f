package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestTransportServesApp(t *testing.T) {
	app := fiber.New()
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	client := &http.Client{Transport: Transport(app)}
	resp, err := client.Get("http://catalog.test/ping")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "pong" {
		t.Fatalf("got %d %q", resp.StatusCode, body)
	}
}

func TestTransportHonoursContext(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	app := fiber.New()
	app.Get("/slow", func(c *fiber.Ctx) error {
		<-release
		return c.SendStatus(fiber.StatusOK)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://catalog.test/slow", nil)
	_, err := Transport(app).RoundTrip(req)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("want deadline exceeded, got %v", err)
	}
}
