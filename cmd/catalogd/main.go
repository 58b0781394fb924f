// Command catalogd runs the catalog service the storefront talks to: products,
// checkout, admin login and the order list, backed by SQLite.
package main

import (
	"log"

	"github.com/fatih/color"

	"woodenmart/internal/config"
	applog "woodenmart/internal/log"
	"woodenmart/internal/repos"
	"woodenmart/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	closer, err := applog.Setup(cfg.LogFile, true)
	if err != nil {
		log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
	} else {
		defer closer.Close()
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	app, err := server.New(db, cfg, server.DefaultLimits)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.JWTSecret == "change-me" {
		color.Yellow("[warn] JWT_SECRET is the built-in default; set it before exposing the service")
	}
	color.New(color.FgGreen, color.Bold).Printf("woodenmart catalog listening on :%s\n", cfg.Port)
	if cfg.PaymentURL != "" {
		color.Cyan("checkout redirects to %s", cfg.PaymentURL)
	}

	log.Fatal(app.Listen(":" + cfg.Port))
}
