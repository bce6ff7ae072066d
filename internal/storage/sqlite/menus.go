package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
)

// CreateMenu persists a new menu and its product lines.
func (s *queries) CreateMenu(ctx context.Context, m *models.Menu) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}

	return s.atomic(ctx, func(q querier) error {
		_, err := q.ExecContext(ctx,
			"INSERT INTO menus (id, name, price, menu_group_id) VALUES (?, ?, ?, ?)",
			m.ID, m.Name, m.Price.Decimal.String(), m.MenuGroupID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert menu: %w", err)
		}

		for i := range m.MenuProducts {
			line := &m.MenuProducts[i]
			line.MenuID = m.ID
			res, err := q.ExecContext(ctx,
				"INSERT INTO menu_products (menu_id, product_id, quantity) VALUES (?, ?, ?)",
				line.MenuID, line.ProductID, line.Quantity,
			)
			if err != nil {
				return fmt.Errorf("failed to insert menu product: %w", err)
			}
			if line.Seq, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("failed to read menu product seq: %w", err)
			}
		}
		return nil
	})
}

// GetMenu retrieves a menu by ID, including its product lines.
func (s *queries) GetMenu(ctx context.Context, id string) (*models.Menu, error) {
	m := &models.Menu{}
	var price string
	err := s.q.QueryRowContext(ctx,
		"SELECT id, name, price, menu_group_id FROM menus WHERE id = ?", id,
	).Scan(&m.ID, &m.Name, &price, &m.MenuGroupID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("menu", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	if m.Price, err = parsePrice(price); err != nil {
		return nil, err
	}

	if m.MenuProducts, err = s.menuProducts(ctx, m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

// ListMenus returns every menu with its product lines.
func (s *queries) ListMenus(ctx context.Context) ([]*models.Menu, error) {
	rows, err := s.q.QueryContext(ctx, "SELECT id, name, price, menu_group_id FROM menus ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
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
		return nil, fmt.Errorf("failed to iterate menus: %w", err)
	}

	// Lines are loaded after the outer rows are closed; the pool has one connection.
	for _, m := range menus {
		if m.MenuProducts, err = s.menuProducts(ctx, m.ID); err != nil {
			return nil, err
		}
	}
	return menus, nil
}

func (s *queries) menuProducts(ctx context.Context, menuID string) ([]models.MenuProduct, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT seq, menu_id, product_id, quantity FROM menu_products WHERE menu_id = ? ORDER BY seq",
		menuID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu products: %w", err)
	}
	defer rows.Close()

	var lines []models.MenuProduct
	for rows.Next() {
		var line models.MenuProduct
		if err := rows.Scan(&line.Seq, &line.MenuID, &line.ProductID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan menu product: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu products: %w", err)
	}
	return lines, nil
}
