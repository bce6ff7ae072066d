package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/internal/storage"
)

const tableColumns = "id, table_group_id, number_of_guests, empty, version"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrderTable(row rowScanner) (*models.OrderTable, error) {
	t := &models.OrderTable{}
	var groupID sql.NullString
	if err := row.Scan(&t.ID, &groupID, &t.NumberOfGuests, &t.Empty, &t.Version); err != nil {
		return nil, err
	}
	t.TableGroupID = groupID.String
	return t, nil
}

// CreateOrderTable persists a new table at version 1.
func (s *queries) CreateOrderTable(ctx context.Context, t *models.OrderTable) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.Version = 1

	_, err := s.q.ExecContext(ctx,
		"INSERT INTO order_tables ("+tableColumns+") VALUES (?, ?, ?, ?, ?)",
		t.ID, nullString(t.TableGroupID), t.NumberOfGuests, t.Empty, t.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order table: %w", err)
	}
	return nil
}

// GetOrderTable retrieves a table by ID.
func (s *queries) GetOrderTable(ctx context.Context, id string) (*models.OrderTable, error) {
	t, err := scanOrderTable(s.q.QueryRowContext(ctx,
		"SELECT "+tableColumns+" FROM order_tables WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("order table", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order table: %w", err)
	}
	return t, nil
}

// ListOrderTables returns every table in insertion order.
func (s *queries) ListOrderTables(ctx context.Context) ([]*models.OrderTable, error) {
	return s.listOrderTables(ctx, "SELECT "+tableColumns+" FROM order_tables ORDER BY rowid")
}

// ListOrderTablesByGroup returns the member tables of a group.
func (s *queries) ListOrderTablesByGroup(ctx context.Context, groupID string) ([]*models.OrderTable, error) {
	return s.listOrderTables(ctx,
		"SELECT "+tableColumns+" FROM order_tables WHERE table_group_id = ? ORDER BY rowid", groupID)
}

func (s *queries) listOrderTables(ctx context.Context, query string, args ...any) ([]*models.OrderTable, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list order tables: %w", err)
	}
	defer rows.Close()

	var tables []*models.OrderTable
	for rows.Next() {
		t, err := scanOrderTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order table: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order tables: %w", err)
	}
	return tables, nil
}

// UpdateOrderTable writes the table if nobody changed it since it was read.
func (s *queries) UpdateOrderTable(ctx context.Context, t *models.OrderTable) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE order_tables
		 SET table_group_id = ?, number_of_guests = ?, empty = ?, version = version + 1
		 WHERE id = ? AND version = ?`,
		nullString(t.TableGroupID), t.NumberOfGuests, t.Empty, t.ID, t.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update order table: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		if _, err := s.GetOrderTable(ctx, t.ID); err != nil {
			return err
		}
		return fmt.Errorf("order table %s changed since version %d: %w", t.ID, t.Version, storage.ErrConflict)
	}

	t.Version++
	return nil
}

// CreateTableGroup persists a new group record.
func (s *queries) CreateTableGroup(ctx context.Context, g *models.TableGroup) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.CreatedDate.IsZero() {
		g.CreatedDate = time.Now()
	}

	_, err := s.q.ExecContext(ctx,
		"INSERT INTO table_groups (id, created_date) VALUES (?, ?)",
		g.ID, g.CreatedDate.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert table group: %w", err)
	}
	return nil
}

// GetTableGroup retrieves a group by ID with its member tables.
func (s *queries) GetTableGroup(ctx context.Context, id string) (*models.TableGroup, error) {
	g := &models.TableGroup{}
	var created int64
	err := s.q.QueryRowContext(ctx,
		"SELECT id, created_date FROM table_groups WHERE id = ?", id,
	).Scan(&g.ID, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("table group", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table group: %w", err)
	}
	g.CreatedDate = time.UnixMilli(created)

	if err := s.loadMembers(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ListTableGroups returns every group with its member tables.
func (s *queries) ListTableGroups(ctx context.Context) ([]*models.TableGroup, error) {
	rows, err := s.q.QueryContext(ctx, "SELECT id, created_date FROM table_groups ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list table groups: %w", err)
	}

	var groups []*models.TableGroup
	for rows.Next() {
		g := &models.TableGroup{}
		var created int64
		if err := rows.Scan(&g.ID, &created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan table group: %w", err)
		}
		g.CreatedDate = time.UnixMilli(created)
		groups = append(groups, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table groups: %w", err)
	}

	for _, g := range groups {
		if err := s.loadMembers(ctx, g); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (s *queries) loadMembers(ctx context.Context, g *models.TableGroup) error {
	members, err := s.ListOrderTablesByGroup(ctx, g.ID)
	if err != nil {
		return err
	}
	g.OrderTables = make([]models.OrderTable, len(members))
	for i, t := range members {
		g.OrderTables[i] = *t
	}
	return nil
}

// DeleteTableGroup removes a group record.
func (s *queries) DeleteTableGroup(ctx context.Context, id string) error {
	res, err := s.q.ExecContext(ctx, "DELETE FROM table_groups WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete table group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound("table group", id)
	}
	return nil
}
