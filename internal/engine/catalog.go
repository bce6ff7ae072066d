package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lxxjn0/jwp-refactoring/internal/apperr"
	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/internal/pricing"
	"github.com/lxxjn0/jwp-refactoring/internal/storage"
)

// ProductService manages products.
type ProductService struct {
	store storage.Store
}

// Create persists a product. The price must be present and non-negative.
func (s *ProductService) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := pricing.CheckPrice(product.Price); err != nil {
		return nil, apperr.Wrap(err, apperr.KindInvalidProductPrice, err.Error(), "price", priceString(product.Price))
	}

	p := *product
	p.ID = ""
	if err := s.store.CreateProduct(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	slog.Debug("Product created", "product_id", p.ID, "price", p.Price.Decimal)
	return &p, nil
}

// List returns every product.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	return s.store.ListProducts(ctx)
}

// MenuGroupService manages menu groups.
type MenuGroupService struct {
	store storage.Store
}

// Create persists a menu group.
func (s *MenuGroupService) Create(ctx context.Context, group *models.MenuGroup) (*models.MenuGroup, error) {
	g := *group
	g.ID = ""
	if err := s.store.CreateMenuGroup(ctx, &g); err != nil {
		return nil, fmt.Errorf("failed to create menu group: %w", err)
	}
	return &g, nil
}

// List returns every menu group.
func (s *MenuGroupService) List(ctx context.Context) ([]*models.MenuGroup, error) {
	return s.store.ListMenuGroups(ctx)
}
