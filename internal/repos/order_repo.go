package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"woodenmart/internal/domain"
)

// ErrNoStock is returned by Create when a line would take stock below zero.
var ErrNoStock = errors.New("insufficient stock")

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type orderRow struct {
	ID            string          `db:"id"`
	CustomerEmail string          `db:"customer_email"`
	Total         decimal.Decimal `db:"total"`
	Status        string          `db:"status"`
	CreatedAt     string          `db:"created_at"`
}

type orderItemRow struct {
	OrderID   string          `db:"order_id"`
	ProductID string          `db:"product_id"`
	Title     string          `db:"title"`
	Qty       int             `db:"qty"`
	Price     decimal.Decimal `db:"price"`
}

// Create decrements stock for every line and inserts the order, all in one
// transaction. Nothing is written when any line lacks stock.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - ?
			WHERE id = ? AND stock >= ?
		`, it.Quantity, it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return fmt.Errorf("%w for %s", ErrNoStock, it.ProductID)
		}
	}

	if _, err := tx.ExecContext(ctx, `
	  INSERT INTO orders (id, customer_email, total, status, created_at)
	  VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, o.ID, o.CustomerEmail, o.Total.String(), o.Status); err != nil {
		return err
	}
	for _, it := range o.Items {
		if _, err := tx.ExecContext(ctx, `
		  INSERT INTO order_items(order_id, product_id, title, qty, price)
		  VALUES(?, ?, ?, ?, ?)
		`, o.ID, it.ProductID, it.Title, it.Quantity, it.Price.String()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListLatest returns the newest orders with their lines.
func (r *OrderRepo) ListLatest(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, `
		SELECT id, customer_email, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC, id
		LIMIT ?
	`, limit); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	query, args, err := sqlx.In(`
		SELECT order_id, product_id, title, qty, price
		FROM order_items
		WHERE order_id IN (?)
		ORDER BY title
	`, ids)
	if err != nil {
		return nil, err
	}
	var items []orderItemRow
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	byOrder := map[string][]domain.OrderItem{}
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], domain.OrderItem{
			ProductID: it.ProductID, Title: it.Title, Quantity: it.Qty, Price: it.Price,
		})
	}

	for _, row := range rows {
		lines := byOrder[row.ID]
		if lines == nil {
			lines = []domain.OrderItem{}
		}
		out = append(out, domain.Order{
			ID:            row.ID,
			CustomerEmail: row.CustomerEmail,
			Items:         lines,
			Total:         row.Total,
			Status:        row.Status,
			CreatedAt:     row.CreatedAt,
		})
	}
	return out, nil
}

func (r *OrderRepo) Get(ctx context.Context, id string) (domain.Order, error) {
	var row orderRow
	if err := r.db.GetContext(ctx, &row, `
		SELECT id, customer_email, total, status, created_at
		FROM orders WHERE id = ?
	`, id); err != nil {
		return domain.Order{}, err
	}
	var items []orderItemRow
	if err := r.db.SelectContext(ctx, &items, `
		SELECT order_id, product_id, title, qty, price
		FROM order_items WHERE order_id = ?
		ORDER BY title
	`, id); err != nil {
		return domain.Order{}, err
	}
	o := domain.Order{
		ID: row.ID, CustomerEmail: row.CustomerEmail, Total: row.Total,
		Status: row.Status, CreatedAt: row.CreatedAt, Items: []domain.OrderItem{},
	}
	for _, it := range items {
		o.Items = append(o.Items, domain.OrderItem{ProductID: it.ProductID, Title: it.Title, Quantity: it.Qty, Price: it.Price})
	}
	return o, nil
}
