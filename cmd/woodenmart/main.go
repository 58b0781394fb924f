// Command woodenmart is the storefront: browse the catalog, fill a cart, check out,
// list products for sale and, after logging in, review orders.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"woodenmart/internal/api"
	"woodenmart/internal/config"
	applog "woodenmart/internal/log"
	"woodenmart/internal/session"
	"woodenmart/internal/storage"
)

const banner = `
 _ _ _           _            _____           _
| | | |___ ___ _| |___ ___   |     |___ ___ _| |_
| | | | . | . | . | -_|   |  | | | | .'|  _|_   _|
|_____|___|___|___|___|_|_|  |_|_|_|__,|_|   |_|
`

// terminalUI shows notices inline and prints navigation targets for the user to open.
type terminalUI struct{}

func (terminalUI) Notify(msg string) { color.New(color.FgYellow, color.Bold).Printf("! %s\n", msg) }

func (terminalUI) Navigate(url string) {
	color.Cyan("-> continue to payment: %s", url)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}

	closer, err := applog.Setup(cfg.LogFile, false)
	if err != nil {
		log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
	} else {
		defer closer.Close()
	}

	store, err := storage.Open(cfg.StoreDSN)
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	client := api.New(cfg.BackendURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithBreaker(api.BreakerSettings{Failures: uint32(cfg.BreakerFailures), Cooldown: cfg.BreakerCooldown}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := session.New(ctx, client, store, terminalUI{}, cfg.CustomerEmail)
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}

	color.New(color.FgGreen).Print(banner)
	fmt.Printf("catalog: %s\n", cfg.BackendURL)
	s.Start(ctx)

	r := &repl{s: s, in: bufio.NewScanner(os.Stdin), out: os.Stdout}
	r.run(ctx)
}
