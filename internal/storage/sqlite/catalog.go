package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
)

// CreateProduct persists a new product.
func (s *queries) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	_, err := s.q.ExecContext(ctx,
		"INSERT INTO products (id, name, price) VALUES (?, ?, ?)",
		p.ID, p.Name, p.Price.Decimal.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product by ID.
func (s *queries) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p := &models.Product{}
	var price string
	err := s.q.QueryRowContext(ctx,
		"SELECT id, name, price FROM products WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if p.Price, err = parsePrice(price); err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts returns every product in insertion order.
func (s *queries) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.q.QueryContext(ctx, "SELECT id, name, price FROM products ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		var price string
		if err := rows.Scan(&p.ID, &p.Name, &price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if p.Price, err = parsePrice(price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// CreateMenuGroup persists a new menu group.
func (s *queries) CreateMenuGroup(ctx context.Context, g *models.MenuGroup) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}

	_, err := s.q.ExecContext(ctx, "INSERT INTO menu_groups (id, name) VALUES (?, ?)", g.ID, g.Name)
	if err != nil {
		return fmt.Errorf("failed to insert menu group: %w", err)
	}
	return nil
}

// GetMenuGroup retrieves a menu group by ID.
func (s *queries) GetMenuGroup(ctx context.Context, id string) (*models.MenuGroup, error) {
	g := &models.MenuGroup{}
	err := s.q.QueryRowContext(ctx, "SELECT id, name FROM menu_groups WHERE id = ?", id).Scan(&g.ID, &g.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("menu group", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu group: %w", err)
	}
	return g, nil
}

// ListMenuGroups returns every menu group in insertion order.
func (s *queries) ListMenuGroups(ctx context.Context) ([]*models.MenuGroup, error) {
	rows, err := s.q.QueryContext(ctx, "SELECT id, name FROM menu_groups ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list menu groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.MenuGroup
	for rows.Next() {
		g := &models.MenuGroup{}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan menu group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu groups: %w", err)
	}
	return groups, nil
}

func parsePrice(s string) (decimal.NullDecimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("failed to parse stored price %q: %w", s, err)
	}
	return decimal.NewNullDecimal(d), nil
}
