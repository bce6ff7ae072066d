package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
)

func (s *queries) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := s.q.Exec(ctx,
		"INSERT INTO products (id, name, price) VALUES ($1, $2, $3::numeric)",
		p.ID, p.Name, p.Price.Decimal.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", mapError(err))
	}
	return nil
}

func (s *queries) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p := &models.Product{}
	var price string
	err := s.q.QueryRow(ctx,
		"SELECT id, name, price::text FROM products WHERE id = $1", id,
	).Scan(&p.ID, &p.Name, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", mapError(err))
	}
	if p.Price, err = parsePrice(price); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *queries) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := s.q.Query(ctx, "SELECT id, name, price::text FROM products ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", mapError(err))
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
		return nil, fmt.Errorf("failed to iterate products: %w", mapError(err))
	}
	return products, nil
}

func (s *queries) CreateMenuGroup(ctx context.Context, g *models.MenuGroup) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	_, err := s.q.Exec(ctx, "INSERT INTO menu_groups (id, name) VALUES ($1, $2)", g.ID, g.Name)
	if err != nil {
		return fmt.Errorf("failed to insert menu group: %w", mapError(err))
	}
	return nil
}

func (s *queries) GetMenuGroup(ctx context.Context, id string) (*models.MenuGroup, error) {
	g := &models.MenuGroup{}
	err := s.q.QueryRow(ctx, "SELECT id, name FROM menu_groups WHERE id = $1", id).Scan(&g.ID, &g.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("menu group", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu group: %w", mapError(err))
	}
	return g, nil
}

func (s *queries) ListMenuGroups(ctx context.Context) ([]*models.MenuGroup, error) {
	rows, err := s.q.Query(ctx, "SELECT id, name FROM menu_groups ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list menu groups: %w", mapError(err))
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
		return nil, fmt.Errorf("failed to iterate menu groups: %w", mapError(err))
	}
	return groups, nil
}

func (s *queries) CreateMenu(ctx context.Context, m *models.Menu) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	return s.atomic(ctx, func(q querier) error {
		_, err := q.Exec(ctx,
			"INSERT INTO menus (id, name, price, menu_group_id) VALUES ($1, $2, $3::numeric, $4)",
			m.ID, m.Name, m.Price.Decimal.String(), m.MenuGroupID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert menu: %w", mapError(err))
		}

		for i := range m.MenuProducts {
			mp := &m.MenuProducts[i]
			mp.MenuID = m.ID
			err := q.QueryRow(ctx,
				"INSERT INTO menu_products (menu_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING seq",
				mp.MenuID, mp.ProductID, mp.Quantity,
			).Scan(&mp.Seq)
			if err != nil {
				return fmt.Errorf("failed to insert menu product: %w", mapError(err))
			}
		}
		return nil
	})
}

func (s *queries) GetMenu(ctx context.Context, id string) (*models.Menu, error) {
	m := &models.Menu{}
	var price string
	err := s.q.QueryRow(ctx,
		"SELECT id, name, price::text, menu_group_id FROM menus WHERE id = $1", id,
	).Scan(&m.ID, &m.Name, &price, &m.MenuGroupID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("menu", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", mapError(err))
	}
	if m.Price, err = parsePrice(price); err != nil {
		return nil, err
	}
	if m.MenuProducts, err = s.menuProducts(ctx, m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *queries) ListMenus(ctx context.Context) ([]*models.Menu, error) {
	rows, err := s.q.Query(ctx, "SELECT id, name, price::text, menu_group_id FROM menus ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", mapError(err))
	}

	var menus []*models.Menu
	for rows.Next() {
		m := &models.Menu{}
		var price string
		if err := rows.Scan(&m.ID, &m.Name, &price, &m.MenuGroupID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		if m.Price, err = parsePrice(price); err != nil {
			rows.Close()
			return nil, err
		}
		menus = append(menus, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menus: %w", mapError(err))
	}

	for _, m := range menus {
		if m.MenuProducts, err = s.menuProducts(ctx, m.ID); err != nil {
			return nil, err
		}
	}
	return menus, nil
}

func (s *queries) menuProducts(ctx context.Context, menuID string) ([]models.MenuProduct, error) {
	rows, err := s.q.Query(ctx,
		"SELECT seq, menu_id, product_id, quantity FROM menu_products WHERE menu_id = $1 ORDER BY seq",
		menuID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu products: %w", mapError(err))
	}
	defer rows.Close()

	var products []models.MenuProduct
	for rows.Next() {
		var mp models.MenuProduct
		if err := rows.Scan(&mp.Seq, &mp.MenuID, &mp.ProductID, &mp.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan menu product: %w", err)
		}
		products = append(products, mp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu products: %w", mapError(err))
	}
	return products, nil
}

func parsePrice(s string) (decimal.NullDecimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("failed to parse stored price %q: %w", s, err)
	}
	return decimal.NewNullDecimal(d), nil
}
