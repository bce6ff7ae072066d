package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/internal/storage"
)

const tableColumns = "id, table_group_id, number_of_guests, empty, version"

func scanOrderTable(row pgx.Row) (*models.OrderTable, error) {
	t := &models.OrderTable{}
	var groupID *string
	if err := row.Scan(&t.ID, &groupID, &t.NumberOfGuests, &t.Empty, &t.Version); err != nil {
		return nil, err
	}
	if groupID != nil {
		t.TableGroupID = *groupID
	}
	return t, nil
}

func (s *queries) CreateOrderTable(ctx context.Context, t *models.OrderTable) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	t.Version = 1

	_, err := s.q.Exec(ctx,
		"INSERT INTO order_tables ("+tableColumns+") VALUES ($1, $2, $3, $4, $5)",
		t.ID, nullString(t.TableGroupID), t.NumberOfGuests, t.Empty, t.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order table: %w", mapError(err))
	}
	return nil
}

func (s *queries) GetOrderTable(ctx context.Context, id string) (*models.OrderTable, error) {
	t, err := scanOrderTable(s.q.QueryRow(ctx,
		"SELECT "+tableColumns+" FROM order_tables WHERE id = $1", id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("order table", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order table: %w", mapError(err))
	}
	return t, nil
}

func (s *queries) ListOrderTables(ctx context.Context) ([]*models.OrderTable, error) {
	return s.listOrderTables(ctx, "SELECT "+tableColumns+" FROM order_tables ORDER BY created_at, id")
}

func (s *queries) ListOrderTablesByGroup(ctx context.Context, groupID string) ([]*models.OrderTable, error) {
	return s.listOrderTables(ctx,
		"SELECT "+tableColumns+" FROM order_tables WHERE table_group_id = $1 ORDER BY created_at, id", groupID)
}

func (s *queries) listOrderTables(ctx context.Context, query string, args ...any) ([]*models.OrderTable, error) {
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list order tables: %w", mapError(err))
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
		return nil, fmt.Errorf("failed to iterate order tables: %w", mapError(err))
	}
	return tables, nil
}

func (s *queries) UpdateOrderTable(ctx context.Context, t *models.OrderTable) error {
	tag, err := s.q.Exec(ctx,
		`UPDATE order_tables
		 SET table_group_id = $1, number_of_guests = $2, empty = $3, version = version + 1
		 WHERE id = $4 AND version = $5`,
		nullString(t.TableGroupID), t.NumberOfGuests, t.Empty, t.ID, t.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update order table: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetOrderTable(ctx, t.ID); err != nil {
			return err
		}
		return fmt.Errorf("order table %s changed since version %d: %w", t.ID, t.Version, storage.ErrConflict)
	}

	t.Version++
	return nil
}

func (s *queries) CreateTableGroup(ctx context.Context, g *models.TableGroup) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.CreatedDate.IsZero() {
		g.CreatedDate = time.Now()
	}

	_, err := s.q.Exec(ctx,
		"INSERT INTO table_groups (id, created_date) VALUES ($1, $2)", g.ID, g.CreatedDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert table group: %w", mapError(err))
	}
	return nil
}

func (s *queries) GetTableGroup(ctx context.Context, id string) (*models.TableGroup, error) {
	g := &models.TableGroup{}
	err := s.q.QueryRow(ctx,
		"SELECT id, created_date FROM table_groups WHERE id = $1", id,
	).Scan(&g.ID, &g.CreatedDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("table group", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table group: %w", mapError(err))
	}

	if err := s.loadMembers(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *queries) ListTableGroups(ctx context.Context) ([]*models.TableGroup, error) {
	rows, err := s.q.Query(ctx, "SELECT id, created_date FROM table_groups ORDER BY created_date, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list table groups: %w", mapError(err))
	}
	groups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.TableGroup, error) {
		g := &models.TableGroup{}
		return g, row.Scan(&g.ID, &g.CreatedDate)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan table groups: %w", mapError(err))
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

func (s *queries) DeleteTableGroup(ctx context.Context, id string) error {
	tag, err := s.q.Exec(ctx, "DELETE FROM table_groups WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete table group: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return notFound("table group", id)
	}
	return nil
}
