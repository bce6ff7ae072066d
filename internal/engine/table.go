package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lxxjn0/jwp-refactoring/internal/apperr"
	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/internal/storage"
)

// TableService governs a single table's occupancy and guest count.
type TableService struct {
	store storage.Store
}

// Create persists a new table. It never starts out in a group.
func (s *TableService) Create(ctx context.Context, table *models.OrderTable) (*models.OrderTable, error) {
	if table.NumberOfGuests < 0 {
		return nil, apperr.New(apperr.KindInvalidGuestCount, "number of guests must not be negative",
			"number_of_guests", table.NumberOfGuests)
	}

	t := models.OrderTable{NumberOfGuests: table.NumberOfGuests, Empty: table.Empty}
	if err := s.store.CreateOrderTable(ctx, &t); err != nil {
		return nil, fmt.Errorf("failed to create order table: %w", err)
	}
	return &t, nil
}

// List returns every table.
func (s *TableService) List(ctx context.Context) ([]*models.OrderTable, error) {
	return s.store.ListOrderTables(ctx)
}

// ChangeEmpty sets a table's occupancy flag.
//
// Grouped tables are rejected: their occupancy changes only through ungrouping.
// A table with a COOKING or MEAL order cannot be emptied.
func (s *TableService) ChangeEmpty(ctx context.Context, tableID string, empty bool) (*models.OrderTable, error) {
	var table *models.OrderTable
	err := s.store.WithTransaction(ctx, func(tx storage.Repository) error {
		t, err := lookup(ctx, tx.GetOrderTable, "order table", tableID)
		if err != nil {
			return err
		}
		if t.Grouped() {
			return apperr.New(apperr.KindTableGrouped, "table belongs to a group",
				"table_id", t.ID, "table_group_id", t.TableGroupID)
		}

		if empty {
			active, err := tx.HasOrderInStatus(ctx, []string{t.ID}, models.NonTerminalStatuses)
			if err != nil {
				return fmt.Errorf("failed to check orders: %w", err)
			}
			if active {
				return apperr.New(apperr.KindTableHasActiveOrder, "table has an order in progress", "table_id", t.ID)
			}
		}

		t.Empty = empty
		if err := tx.UpdateOrderTable(ctx, t); err != nil {
			return err
		}
		table = t
		return nil
	})
	if err := settle(err); err != nil {
		return nil, err
	}

	slog.Debug("Table occupancy changed", "table_id", table.ID, "empty", table.Empty)
	return table, nil
}

// ChangeNumberOfGuests sets the guest count of an occupied table.
func (s *TableService) ChangeNumberOfGuests(ctx context.Context, tableID string, guests int) (*models.OrderTable, error) {
	if guests < 0 {
		return nil, apperr.New(apperr.KindInvalidGuestCount, "number of guests must not be negative",
			"table_id", tableID, "number_of_guests", guests)
	}

	var table *models.OrderTable
	err := s.store.WithTransaction(ctx, func(tx storage.Repository) error {
		t, err := lookup(ctx, tx.GetOrderTable, "order table", tableID)
		if err != nil {
			return err
		}
		if t.Empty {
			return apperr.New(apperr.KindTableIsEmpty, "cannot seat guests at an empty table", "table_id", t.ID)
		}

		t.NumberOfGuests = guests
		if err := tx.UpdateOrderTable(ctx, t); err != nil {
			return err
		}
		table = t
		return nil
	})
	if err := settle(err); err != nil {
		return nil, err
	}

	slog.Debug("Table guests changed", "table_id", table.ID, "number_of_guests", table.NumberOfGuests)
	return table, nil
}
