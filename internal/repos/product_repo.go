package repos

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"woodenmart/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID          string          `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Currency    string          `db:"currency"`
	ImagesJSON  string          `db:"images_json"`
	Stock       int             `db:"stock"`
	Featured    bool            `db:"featured"`
}

func (r productRow) product() domain.Product {
	p := domain.Product{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Currency:    r.Currency,
		Stock:       r.Stock,
		Featured:    r.Featured,
	}
	if err := json.Unmarshal([]byte(r.ImagesJSON), &p.Images); err != nil || p.Images == nil {
		p.Images = []string{}
	}
	return p
}

const productCols = `id, title, description, price, currency, images_json, stock, featured`

// List returns featured products first, then newest first.
func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	err := r.db.SelectContext(ctx, &rows, `
  SELECT `+productCols+`
  FROM products
  ORDER BY featured DESC, created_at DESC, title
`)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.product())
	}
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var row productRow
	err := r.db.GetContext(ctx, &row, `
  SELECT `+productCols+`
  FROM products
  WHERE id = ?
`, id)
	if err != nil {
		return domain.Product{}, err
	}
	return row.product(), nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) error {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	  INSERT INTO products(id, title, description, price, currency, images_json, stock, featured, created_at)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.Title, p.Description, p.Price.String(), p.Currency, string(b), p.Stock, p.Featured)
	return err
}

// Stock returns the units on hand for a product.
func (r *ProductRepo) Stock(ctx context.Context, id string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT stock FROM products WHERE id = ?`, id)
	return n, err
}
