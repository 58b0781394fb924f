package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"woodenmart/internal/catalog"
	"woodenmart/internal/checkout"
	"woodenmart/internal/domain"
	"woodenmart/internal/money"
	"woodenmart/internal/session"
)

type repl struct {
	s   *session.Session
	in  *bufio.Scanner
	out io.Writer
}

func (r *repl) run(ctx context.Context) {
	cyan := color.New(color.FgCyan)
	r.help()
	for {
		if ctx.Err() != nil {
			return
		}
		prompt := "shop"
		if r.s.IsAdmin() {
			prompt = "shop(admin)"
		}
		cyan.Fprintf(r.out, "%s [%d]> ", prompt, r.s.Count())
		if !r.in.Scan() {
			return
		}
		fields := strings.Fields(r.in.Text())
		if len(fields) == 0 {
			continue
		}
		if !r.dispatch(ctx, fields[0], fields[1:]) {
			return
		}
	}
}

// dispatch runs one command; false means quit.
func (r *repl) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "products", "ls":
		r.products()
	case "refresh":
		if err := r.s.Refresh(ctx); err == nil {
			r.products()
		}
	case "add":
		if len(args) != 1 {
			color.Red("usage: add <product-id>")
			return true
		}
		li, err := r.s.AddToCart(args[0])
		if err != nil {
			color.Red("%v", err)
			return true
		}
		color.Green("added %s (x%d)", li.Title, li.Quantity)
	case "cart":
		r.cart()
	case "total":
		fmt.Fprintf(r.out, "%d item(s), %s\n", r.s.Count(), money.INR(r.s.Total()))
	case "email":
		if len(args) == 1 {
			r.s.SetCustomerEmail(args[0])
		}
		fmt.Fprintf(r.out, "customer email: %s\n", r.s.CustomerEmail())
	case "checkout":
		if out := r.s.Checkout(ctx); out.Kind == checkout.Skipped {
			fmt.Fprintln(r.out, "cart is empty")
		}
	case "login":
		if len(args) != 2 {
			color.Red("usage: login <email> <password>")
			return true
		}
		if err := r.s.Login(ctx, args[0], args[1]); err == nil {
			color.Green("logged in, %d order(s)", len(r.s.Orders()))
		}
	case "logout":
		if err := r.s.Logout(ctx); err != nil {
			color.Red("%v", err)
		}
		fmt.Fprintln(r.out, "logged out")
	case "orders":
		r.orders(ctx)
	case "sell":
		if d, ok := r.draft(); ok {
			if err := r.s.CreateProduct(ctx, &d); err == nil {
				color.Green("listed")
			}
		}
	case "quick-add":
		if !r.s.IsAdmin() {
			color.Red("login first")
			return true
		}
		if d, ok := r.draft(); ok {
			if err := r.s.AdminCreateProduct(ctx, &d); err == nil {
				color.Green("created")
			}
		}
	case "help", "?":
		r.help()
	case "quit", "exit":
		return false
	default:
		color.Red("unknown command %q, try help", cmd)
	}
	return true
}

func (r *repl) help() {
	fmt.Fprint(r.out, `commands:
  products | refresh          show the catalog
  add <id>                    add one unit to the cart
  cart | total                show the cart
  email [addr]                show or set the customer email
  checkout                    place the order
  sell                        list a product for sale
  login <email> <password>    admin login
  orders | quick-add | logout admin dashboard
  quit
`)
}

func (r *repl) products() {
	ps := r.s.Products()
	if len(ps) == 0 {
		fmt.Fprintln(r.out, "no products")
		return
	}
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE\tSTOCK\t")
	for _, p := range ps {
		title := p.Title
		if p.Featured {
			title += " *"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", p.ID, title, money.Format(p.Currency, p.Price), availability(p))
	}
	w.Flush()
}

func availability(p domain.Product) string {
	switch p.Availability() {
	case "IN_STOCK":
		return color.GreenString("in stock")
	case "LOW_STOCK":
		return color.YellowString("only %d left", p.Stock)
	}
	return color.RedString("sold out")
}

func (r *repl) cart() {
	items := r.s.CartItems()
	if len(items) == 0 {
		fmt.Fprintln(r.out, "cart is empty")
		return
	}
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	for _, li := range items {
		fmt.Fprintf(w, "%s\tx%d\t%s\t\n", li.Title, li.Quantity, money.INR(li.Subtotal()))
	}
	fmt.Fprintf(w, "TOTAL\t%d\t%s\t\n", r.s.Count(), money.INR(r.s.Total()))
	w.Flush()
}

func (r *repl) orders(ctx context.Context) {
	if !r.s.IsAdmin() {
		color.Red("login first")
		return
	}
	if err := r.s.LoadOrders(ctx); err != nil {
		color.Red("could not load orders: %v", err)
	}
	list := r.s.Orders()
	if len(list) == 0 {
		fmt.Fprintln(r.out, "no orders")
		return
	}
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tEMAIL\tITEMS\tTOTAL\t")
	for _, o := range list {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t\n", o.ID, o.CustomerEmail, o.ItemCount(), money.INR(o.Total))
	}
	w.Flush()
}

// draft prompts for each product field; blank answers keep the defaults.
func (r *repl) draft() (catalog.Draft, bool) {
	d := catalog.DefaultDraft()
	ask := func(label, def string) (string, bool) {
		fmt.Fprintf(r.out, "  %s [%s]: ", label, def)
		if !r.in.Scan() {
			return "", false
		}
		if v := strings.TrimSpace(r.in.Text()); v != "" {
			return v, true
		}
		return def, true
	}

	var ok bool
	if d.Title, ok = ask("title", d.Title); !ok {
		return d, false
	}
	if d.Description, ok = ask("description", d.Description); !ok {
		return d, false
	}
	if d.Price, ok = ask("price", d.Price); !ok {
		return d, false
	}
	if d.Currency, ok = ask("currency", d.Currency); !ok {
		return d, false
	}
	img, ok := ask("image url", "")
	if !ok {
		return d, false
	}
	if img != "" {
		d.SetImage(img)
	}
	stock, ok := ask("stock", strconv.Itoa(d.Stock))
	if !ok {
		return d, false
	}
	n, err := strconv.Atoi(stock)
	if err != nil {
		color.Red("stock must be a whole number")
		return d, false
	}
	d.Stock = n
	feat, ok := ask("featured (y/n)", "n")
	if !ok {
		return d, false
	}
	d.Featured = strings.HasPrefix(strings.ToLower(feat), "y")
	return d, true
}
