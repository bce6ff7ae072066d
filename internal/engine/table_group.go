package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lxxjn0/jwp-refactoring/internal/apperr"
	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/internal/storage"
)

const minGroupSize = 2

// TableGroupService combines tables into groups and dissolves them.
type TableGroupService struct {
	store storage.Store
	now   func() time.Time
}

// Group creates a table group from at least two distinct empty, ungrouped tables.
// Members become occupied and point at the new group. Duplicate ids are collapsed.
//
// Either every member is claimed or none is. When another request claims one of
// the tables first, Group fails with TableNotAvailable.
func (s *TableGroupService) Group(ctx context.Context, tableIDs []string) (*models.TableGroup, error) {
	ids := distinct(tableIDs)
	if len(ids) < minGroupSize {
		return nil, apperr.New(apperr.KindInvalidGroupSize, "a group needs at least two distinct tables",
			"tables", len(ids))
	}

	var group *models.TableGroup
	err := s.store.WithTransaction(ctx, func(tx storage.Repository) error {
		tables := make([]*models.OrderTable, 0, len(ids))
		for _, id := range ids {
			t, err := lookup(ctx, tx.GetOrderTable, "order table", id)
			if err != nil {
				return err
			}
			tables = append(tables, t)
		}

		for _, t := range tables {
			if !t.Empty || t.Grouped() {
				return apperr.New(apperr.KindTableNotAvailable, "table is occupied or already grouped",
					"table_id", t.ID, "empty", t.Empty, "table_group_id", t.TableGroupID)
			}
		}

		g := &models.TableGroup{CreatedDate: s.now()}
		if err := tx.CreateTableGroup(ctx, g); err != nil {
			return fmt.Errorf("failed to create table group: %w", err)
		}

		for _, t := range tables {
			t.TableGroupID = g.ID
			t.Empty = false
			if err := tx.UpdateOrderTable(ctx, t); err != nil {
				return err
			}
			g.OrderTables = append(g.OrderTables, *t)
		}
		group = g
		return nil
	})
	if errors.Is(err, storage.ErrConflict) {
		return nil, apperr.Wrap(err, apperr.KindTableNotAvailable, "table was claimed by another request")
	}
	if err := settle(err); err != nil {
		return nil, err
	}

	slog.Debug("Tables grouped", "table_group_id", group.ID, "tables", group.TableIDs())
	return group, nil
}

// Ungroup dissolves a group. It is rejected while any member has a COOKING or MEAL
// order. Members keep their occupancy flag; the group record is deleted.
func (s *TableGroupService) Ungroup(ctx context.Context, groupID string) error {
	err := s.store.WithTransaction(ctx, func(tx storage.Repository) error {
		group, err := lookup(ctx, tx.GetTableGroup, "table group", groupID)
		if err != nil {
			return err
		}

		ids := group.TableIDs()
		active, err := tx.HasOrderInStatus(ctx, ids, models.NonTerminalStatuses)
		if err != nil {
			return fmt.Errorf("failed to check orders: %w", err)
		}
		if active {
			return apperr.New(apperr.KindGroupHasActiveOrder, "a member table has an order in progress",
				"table_group_id", group.ID)
		}

		for i := range group.OrderTables {
			t := &group.OrderTables[i]
			t.TableGroupID = ""
			if err := tx.UpdateOrderTable(ctx, t); err != nil {
				return err
			}
		}

		if err := tx.DeleteTableGroup(ctx, group.ID); err != nil {
			return fmt.Errorf("failed to delete table group: %w", err)
		}
		return nil
	})
	if err := settle(err); err != nil {
		return err
	}

	slog.Debug("Tables ungrouped", "table_group_id", groupID)
	return nil
}

// List returns every group with its member tables.
func (s *TableGroupService) List(ctx context.Context) ([]*models.TableGroup, error) {
	return s.store.ListTableGroups(ctx)
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
