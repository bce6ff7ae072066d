package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/lxxjn0/jwp-refactoring/internal/apperr"
	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/internal/pricing"
	"github.com/lxxjn0/jwp-refactoring/internal/storage"
)

// MenuService creates menus and checks their price against their products.
type MenuService struct {
	store storage.Store
}

// Create validates and persists a menu with its lines.
//
// The menu price may not exceed the sum of quantity x product price over its
// lines, evaluated against current product prices. Menus are not revalidated when
// product prices change later.
func (s *MenuService) Create(ctx context.Context, menu *models.Menu) (*models.Menu, error) {
	if err := pricing.CheckPrice(menu.Price); err != nil {
		return nil, apperr.Wrap(err, apperr.KindInvalidMenuPrice, err.Error(), "price", priceString(menu.Price))
	}

	m := *menu
	m.ID = ""
	m.MenuProducts = make([]models.MenuProduct, len(menu.MenuProducts))
	copy(m.MenuProducts, menu.MenuProducts)

	err := s.store.WithTransaction(ctx, func(tx storage.Repository) error {
		if _, err := lookup(ctx, tx.GetMenuGroup, "menu group", m.MenuGroupID); err != nil {
			return err
		}
		if len(m.MenuProducts) == 0 {
			return apperr.New(apperr.KindEmptyMenuLines, "menu must have at least one product")
		}

		lines := make([]pricing.Line, 0, len(m.MenuProducts))
		for i := range m.MenuProducts {
			mp := &m.MenuProducts[i]
			if mp.Quantity <= 0 {
				return apperr.New(apperr.KindInvalidQuantity, "menu product quantity must be positive",
					"product_id", mp.ProductID, "quantity", mp.Quantity)
			}
			product, err := lookup(ctx, tx.GetProduct, "product", mp.ProductID)
			if err != nil {
				return err
			}
			mp.Seq = 0
			lines = append(lines, pricing.Line{UnitPrice: product.Price.Decimal, Quantity: mp.Quantity})
		}

		total, err := pricing.CheckBundlePrice(m.Price, lines)
		if errors.Is(err, pricing.ErrPriceExceeds) {
			return apperr.Wrap(err, apperr.KindInvalidMenuPrice, "menu price exceeds the sum of its products",
				"price", m.Price.Decimal, "total", total)
		}
		if err != nil {
			return apperr.Wrap(err, apperr.KindInvalidMenuPrice, err.Error())
		}

		return tx.CreateMenu(ctx, &m)
	})
	if err := settle(err); err != nil {
		return nil, err
	}

	slog.Debug("Menu created", "menu_id", m.ID, "menu_group_id", m.MenuGroupID, "lines", len(m.MenuProducts))
	return &m, nil
}

// List returns every menu with its lines.
func (s *MenuService) List(ctx context.Context) ([]*models.Menu, error) {
	return s.store.ListMenus(ctx)
}

func priceString(p decimal.NullDecimal) string {
	if !p.Valid {
		return "null"
	}
	return p.Decimal.String()
}
