package handlers

import (
	"woodenmart/internal/config"
	"woodenmart/internal/repos"
	"woodenmart/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler *ProductHandler
	OrderHandler   *OrderHandler
	AdminHandler   *AdminHandler
	AuthHandler    *AuthHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	orderSvc := services.NewOrderService(prodRepo, orderRepo, cfg.PaymentURL)

	return &Deps{
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc},
		AdminHandler:   &AdminHandler{Order: orderSvc},
		AuthHandler:    &AuthHandler{Auth: auth},
	}
}
