// Package server assembles the catalog stand-in: the five storefront endpoints on a
// fiber app backed by sqlite.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"woodenmart/internal/config"
	"woodenmart/internal/http/handlers"
	applog "woodenmart/internal/log"
	"woodenmart/internal/repos"
	"woodenmart/internal/services"
)

// Limits applied per client IP.
type Limits struct {
	Requests      int
	RequestWindow time.Duration
	Logins        int
	LoginWindow   time.Duration
}

var DefaultLimits = Limits{Requests: 120, RequestWindow: time.Minute, Logins: 5, LoginWindow: 10 * time.Minute}

// ErrorHandler logs the failure and answers with a generic JSON body. Only the status
// of a *fiber.Error is passed through; its message never is.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, map[string]any{"status": code})
	msg := "Something went wrong. Please try again."
	if code < fiber.StatusInternalServerError {
		msg = clientMessage(code)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func clientMessage(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "not found"
	case fiber.StatusRequestEntityTooLarge:
		return "request too large"
	case fiber.StatusMethodNotAllowed:
		return "method not allowed"
	}
	return "bad request"
}

// New seeds the admin account and returns the app with every route mounted.
func New(db *sqlx.DB, cfg config.Config, lim Limits) (*fiber.App, error) {
	if err := repos.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}
	authSvc := services.NewAuthService(repos.NewUserRepo(db), cfg.JWTSecret, cfg.TokenTTL)
	deps := handlers.NewDeps(db, cfg, authSvc)

	app := fiber.New(fiber.Config{
		AppName:               "woodenmart-catalog",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization,X-Request-ID",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        lim.Requests,
		Expiration: lim.RequestWindow,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	// ---------- Routes ----------
	app.Get("/products", deps.ProductHandler.List)
	app.Post("/products", deps.ProductHandler.Create)
	app.Post("/checkout", deps.OrderHandler.Checkout)

	// Auth routes (login throttled)
	app.Post("/auth/login", limiter.New(limiter.Config{
		Max:        lim.Logins,
		Expiration: lim.LoginWindow,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)

	// Admin
	app.Get("/orders", handlers.RequireAdmin(authSvc), deps.AdminHandler.Orders)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	return app, nil
}
