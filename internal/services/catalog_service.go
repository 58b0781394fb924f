package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"woodenmart/internal/domain"
	"woodenmart/internal/repos"
	"woodenmart/internal/validate"
)

var ErrInvalidProduct = errors.New("invalid product")

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id string) (domain.Product, error) {
	return s.Prods.Get(ctx, id)
}

// Create assigns an id and applies defaults before storing the product.
func (s *CatalogService) Create(ctx context.Context, in domain.ProductPayload) (domain.Product, error) {
	title, ok := validate.Title(in.Title)
	if !ok {
		return domain.Product{}, ErrInvalidProduct
	}
	if in.Price.IsNegative() || in.Stock < 0 {
		return domain.Product{}, ErrInvalidProduct
	}
	cur, ok := validate.Currency(in.Currency)
	if !ok {
		return domain.Product{}, ErrInvalidProduct
	}

	p := domain.Product{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		Price:       in.Price,
		Currency:    cur,
		Images:      validate.Images(in.Images),
		Stock:       in.Stock,
		Featured:    in.Featured,
	}
	if err := s.Prods.Create(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
