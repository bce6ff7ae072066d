package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lxxjn0/jwp-refactoring/internal/apperr"
	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/internal/storage"
	"github.com/lxxjn0/jwp-refactoring/internal/storage/memory"
)

func TestTableGroupService_Group(t *testing.T) {
	ctx := context.Background()

	t.Run("claims every member", func(t *testing.T) {
		f := newFixture(t)
		a, b := f.table(t, true), f.table(t, true)

		group, err := f.engine.TableGroups.Group(ctx, []string{a.ID, b.ID})
		if err != nil {
			t.Fatalf("Group failed: %v", err)
		}
		if !group.CreatedDate.Equal(fixedNow) {
			t.Errorf("Expected created date %v, got %v", fixedNow, group.CreatedDate)
		}
		if len(group.OrderTables) != 2 {
			t.Fatalf("Expected 2 members, got %d", len(group.OrderTables))
		}

		tables, _ := f.engine.Tables.List(ctx)
		for _, table := range tables {
			if table.Empty {
				t.Errorf("Table %s: expected occupied", table.ID)
			}
			if table.TableGroupID != group.ID {
				t.Errorf("Table %s: expected group %s, got %q", table.ID, group.ID, table.TableGroupID)
			}
		}
	})

	t.Run("single table", func(t *testing.T) {
		f := newFixture(t)
		a := f.table(t, true)

		_, err := f.engine.TableGroups.Group(ctx, []string{a.ID})
		assertKind(t, err, apperr.KindInvalidGroupSize)
	})

	t.Run("duplicate ids count once", func(t *testing.T) {
		f := newFixture(t)
		a := f.table(t, true)

		_, err := f.engine.TableGroups.Group(ctx, []string{a.ID, a.ID})
		assertKind(t, err, apperr.KindInvalidGroupSize)
	})

	t.Run("unknown table", func(t *testing.T) {
		f := newFixture(t)
		a := f.table(t, true)

		_, err := f.engine.TableGroups.Group(ctx, []string{a.ID, "missing"})
		assertKind(t, err, apperr.KindReferenceNotFound)
	})

	t.Run("occupied table leaves others untouched", func(t *testing.T) {
		f := newFixture(t)
		a, b := f.table(t, true), f.table(t, false)

		_, err := f.engine.TableGroups.Group(ctx, []string{a.ID, b.ID})
		assertKind(t, err, apperr.KindTableNotAvailable)

		tables, _ := f.engine.Tables.List(ctx)
		for _, table := range tables {
			if table.Grouped() {
				t.Errorf("Table %s: expected no group after failed grouping", table.ID)
			}
		}
		if !tables[0].Empty {
			t.Error("Expected first table to remain empty")
		}
	})

	t.Run("table already in another group", func(t *testing.T) {
		f := newFixture(t)
		a, b, c := f.table(t, true), f.table(t, true), f.table(t, true)
		if _, err := f.engine.TableGroups.Group(ctx, []string{a.ID, b.ID}); err != nil {
			t.Fatalf("Group failed: %v", err)
		}

		_, err := f.engine.TableGroups.Group(ctx, []string{b.ID, c.ID})
		assertKind(t, err, apperr.KindTableNotAvailable)
	})
}

func TestTableGroupService_ConcurrentGroupsClaimOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	shared := f.table(t, true)

	const workers = 10
	others := make([]*models.OrderTable, workers)
	for i := range others {
		others[i] = f.table(t, true)
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.TableGroups.Group(ctx, []string{shared.ID, others[i].ID})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperr.KindOf(err) != apperr.KindTableNotAvailable:
			t.Errorf("Expected TableNotAvailable, got %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("Expected exactly one group to claim the shared table, got %d", succeeded)
	}

	groups, _ := f.engine.TableGroups.List(ctx)
	if len(groups) != 1 {
		t.Errorf("Expected 1 persisted group, got %d", len(groups))
	}
}

func TestTableGroupService_Ungroup(t *testing.T) {
	ctx := context.Background()

	t.Run("active order blocks ungrouping until completed", func(t *testing.T) {
		f := newFixture(t)
		a, b := f.table(t, true), f.table(t, true)
		group, err := f.engine.TableGroups.Group(ctx, []string{a.ID, b.ID})
		if err != nil {
			t.Fatalf("Group failed: %v", err)
		}
		order := f.order(t, a.ID)

		err = f.engine.TableGroups.Ungroup(ctx, group.ID)
		assertKind(t, err, apperr.KindGroupHasActiveOrder)

		if _, err := f.engine.Orders.ChangeStatus(ctx, order.ID, models.OrderStatusMeal); err != nil {
			t.Fatalf("ChangeStatus failed: %v", err)
		}
		err = f.engine.TableGroups.Ungroup(ctx, group.ID)
		assertKind(t, err, apperr.KindGroupHasActiveOrder)

		if _, err := f.engine.Orders.ChangeStatus(ctx, order.ID, models.OrderStatusCompletion); err != nil {
			t.Fatalf("ChangeStatus failed: %v", err)
		}
		if err := f.engine.TableGroups.Ungroup(ctx, group.ID); err != nil {
			t.Fatalf("Ungroup failed: %v", err)
		}

		tables, _ := f.engine.Tables.List(ctx)
		for _, table := range tables {
			if table.Grouped() {
				t.Errorf("Table %s: expected group to be cleared", table.ID)
			}
			if table.Empty {
				t.Errorf("Table %s: expected occupancy to be left as-is", table.ID)
			}
		}

		groups, _ := f.engine.TableGroups.List(ctx)
		if len(groups) != 0 {
			t.Errorf("Expected group record to be deleted, got %d", len(groups))
		}
	})

	t.Run("unknown group", func(t *testing.T) {
		f := newFixture(t)
		err := f.engine.TableGroups.Ungroup(ctx, "missing")
		assertKind(t, err, apperr.KindReferenceNotFound)
	})

	t.Run("ungrouped tables can be emptied and regrouped", func(t *testing.T) {
		f := newFixture(t)
		a, b := f.table(t, true), f.table(t, true)
		group, err := f.engine.TableGroups.Group(ctx, []string{a.ID, b.ID})
		if err != nil {
			t.Fatalf("Group failed: %v", err)
		}
		if err := f.engine.TableGroups.Ungroup(ctx, group.ID); err != nil {
			t.Fatalf("Ungroup failed: %v", err)
		}

		for _, id := range []string{a.ID, b.ID} {
			if _, err := f.engine.Tables.ChangeEmpty(ctx, id, true); err != nil {
				t.Fatalf("ChangeEmpty failed: %v", err)
			}
		}
		if _, err := f.engine.TableGroups.Group(ctx, []string{a.ID, b.ID}); err != nil {
			t.Errorf("Expected regrouping to succeed, got %v", err)
		}
	})
}

// racingStore loses every table write inside a transaction, as when another
// request commits a claim on the same table first.
type racingStore struct {
	*memory.Store
}

func (s racingStore) WithTransaction(ctx context.Context, fn func(tx storage.Repository) error) error {
	return s.Store.WithTransaction(ctx, func(tx storage.Repository) error {
		return fn(racingRepository{tx})
	})
}

type racingRepository struct {
	storage.Repository
}

func (racingRepository) UpdateOrderTable(ctx context.Context, t *models.OrderTable) error {
	return fmt.Errorf("order table %s: %w", t.ID, storage.ErrConflict)
}

func TestTableGroupService_LostWriteRace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b := f.table(t, true), f.table(t, true)
	occupied := f.table(t, false)

	store := f.engine.Products.store.(*memory.Store)
	racing := New(racingStore{store}, WithClock(func() time.Time { return fixedNow }))

	t.Run("group reports table not available", func(t *testing.T) {
		_, err := racing.TableGroups.Group(ctx, []string{a.ID, b.ID})
		assertKind(t, err, apperr.KindTableNotAvailable)
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected cause to be ErrConflict, got %v", err)
		}

		groups, err := f.engine.TableGroups.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(groups) != 0 {
			t.Errorf("Expected no group to persist, got %d", len(groups))
		}
		for _, id := range []string{a.ID, b.ID} {
			table, err := store.GetOrderTable(ctx, id)
			if err != nil {
				t.Fatalf("GetOrderTable failed: %v", err)
			}
			if !table.Empty || table.Grouped() {
				t.Errorf("Table %s: expected untouched, got %+v", id, table)
			}
		}
	})

	t.Run("change empty reports conflict", func(t *testing.T) {
		_, err := racing.Tables.ChangeEmpty(ctx, occupied.ID, true)
		assertKind(t, err, apperr.KindConflict)
	})

	t.Run("change guests reports conflict", func(t *testing.T) {
		_, err := racing.Tables.ChangeNumberOfGuests(ctx, occupied.ID, 4)
		assertKind(t, err, apperr.KindConflict)
	})
}
