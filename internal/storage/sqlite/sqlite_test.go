package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "kitchenpos-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func TestSQLiteStore_Catalog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	product := &models.Product{Name: "Fried chicken", Price: price("16000.50")}
	if err := store.CreateProduct(ctx, product); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if product.ID == "" {
		t.Fatal("Expected product ID to be generated")
	}

	t.Run("GetProduct keeps decimal precision", func(t *testing.T) {
		got, err := store.GetProduct(ctx, product.ID)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if !got.Price.Decimal.Equal(product.Price.Decimal) {
			t.Errorf("Price: expected %s, got %s", product.Price.Decimal, got.Price.Decimal)
		}
		if got.Name != product.Name {
			t.Errorf("Name: expected %q, got %q", product.Name, got.Name)
		}
	})

	t.Run("GetProduct returns ErrNotFound for unknown id", func(t *testing.T) {
		_, err := store.GetProduct(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CreateMenu stores menu products", func(t *testing.T) {
		group := &models.MenuGroup{Name: "Two chickens"}
		if err := store.CreateMenuGroup(ctx, group); err != nil {
			t.Fatalf("CreateMenuGroup failed: %v", err)
		}

		menu := &models.Menu{
			Name:         "Double fried",
			Price:        price("30000"),
			MenuGroupID:  group.ID,
			MenuProducts: []models.MenuProduct{{ProductID: product.ID, Quantity: 2}},
		}
		if err := store.CreateMenu(ctx, menu); err != nil {
			t.Fatalf("CreateMenu failed: %v", err)
		}
		if menu.MenuProducts[0].Seq == 0 {
			t.Error("Expected menu product seq to be assigned")
		}

		menus, err := store.ListMenus(ctx)
		if err != nil {
			t.Fatalf("ListMenus failed: %v", err)
		}
		if len(menus) != 1 {
			t.Fatalf("Expected 1 menu, got %d", len(menus))
		}
		if len(menus[0].MenuProducts) != 1 || menus[0].MenuProducts[0].Quantity != 2 {
			t.Errorf("Unexpected menu products: %+v", menus[0].MenuProducts)
		}
		if menus[0].MenuProducts[0].MenuID != menu.ID {
			t.Errorf("Expected menu product to reference %s, got %s", menu.ID, menus[0].MenuProducts[0].MenuID)
		}
	})
}

func TestSQLiteStore_Tables(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := &models.OrderTable{Empty: true}
	b := &models.OrderTable{Empty: true}
	for _, table := range []*models.OrderTable{a, b} {
		if err := store.CreateOrderTable(ctx, table); err != nil {
			t.Fatalf("CreateOrderTable failed: %v", err)
		}
		if table.Version != 1 {
			t.Errorf("Expected version 1, got %d", table.Version)
		}
	}

	t.Run("UpdateOrderTable rejects a stale version", func(t *testing.T) {
		first, _ := store.GetOrderTable(ctx, a.ID)
		second, _ := store.GetOrderTable(ctx, a.ID)

		first.NumberOfGuests = 3
		if err := store.UpdateOrderTable(ctx, first); err != nil {
			t.Fatalf("UpdateOrderTable failed: %v", err)
		}
		if first.Version != 2 {
			t.Errorf("Expected version 2 after update, got %d", first.Version)
		}

		second.NumberOfGuests = 5
		err := store.UpdateOrderTable(ctx, second)
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("Expected ErrConflict, got %v", err)
		}
	})

	t.Run("UpdateOrderTable returns ErrNotFound for unknown id", func(t *testing.T) {
		err := store.UpdateOrderTable(ctx, &models.OrderTable{ID: "missing", Version: 1})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("group membership round-trips and clears on delete", func(t *testing.T) {
		group := &models.TableGroup{CreatedDate: time.UnixMilli(1700000000000)}
		if err := store.CreateTableGroup(ctx, group); err != nil {
			t.Fatalf("CreateTableGroup failed: %v", err)
		}

		for _, id := range []string{a.ID, b.ID} {
			table, err := store.GetOrderTable(ctx, id)
			if err != nil {
				t.Fatalf("GetOrderTable failed: %v", err)
			}
			table.TableGroupID = group.ID
			table.Empty = false
			if err := store.UpdateOrderTable(ctx, table); err != nil {
				t.Fatalf("UpdateOrderTable failed: %v", err)
			}
		}

		got, err := store.GetTableGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetTableGroup failed: %v", err)
		}
		if len(got.OrderTables) != 2 {
			t.Fatalf("Expected 2 member tables, got %d", len(got.OrderTables))
		}
		if !got.CreatedDate.Equal(group.CreatedDate) {
			t.Errorf("CreatedDate: expected %v, got %v", group.CreatedDate, got.CreatedDate)
		}

		if err := store.DeleteTableGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteTableGroup failed: %v", err)
		}
		table, _ := store.GetOrderTable(ctx, a.ID)
		if table.TableGroupID != "" {
			t.Errorf("Expected group to be cleared, got %q", table.TableGroupID)
		}
	})
}

func TestSQLiteStore_Orders(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.MenuGroup{Name: "Singles"}
	product := &models.Product{Name: "Seasoned chicken", Price: price("16000")}
	table := &models.OrderTable{}
	if err := store.CreateMenuGroup(ctx, group); err != nil {
		t.Fatalf("CreateMenuGroup failed: %v", err)
	}
	if err := store.CreateProduct(ctx, product); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if err := store.CreateOrderTable(ctx, table); err != nil {
		t.Fatalf("CreateOrderTable failed: %v", err)
	}
	menu := &models.Menu{
		Name:         "Seasoned",
		Price:        price("16000"),
		MenuGroupID:  group.ID,
		MenuProducts: []models.MenuProduct{{ProductID: product.ID, Quantity: 1}},
	}
	if err := store.CreateMenu(ctx, menu); err != nil {
		t.Fatalf("CreateMenu failed: %v", err)
	}

	order := &models.Order{
		OrderTableID:   table.ID,
		OrderStatus:    models.OrderStatusCooking,
		OrderLineItems: []models.OrderLineItem{{MenuID: menu.ID, Quantity: 2}},
	}
	if err := store.CreateOrder(ctx, order); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	t.Run("GetOrder returns line items", func(t *testing.T) {
		got, err := store.GetOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("GetOrder failed: %v", err)
		}
		if got.OrderStatus != models.OrderStatusCooking {
			t.Errorf("Expected COOKING, got %s", got.OrderStatus)
		}
		if len(got.OrderLineItems) != 1 || got.OrderLineItems[0].OrderID != order.ID {
			t.Errorf("Unexpected line items: %+v", got.OrderLineItems)
		}
	})

	t.Run("HasOrderInStatus follows status updates", func(t *testing.T) {
		active, err := store.HasOrderInStatus(ctx, []string{table.ID}, models.NonTerminalStatuses)
		if err != nil {
			t.Fatalf("HasOrderInStatus failed: %v", err)
		}
		if !active {
			t.Error("Expected an active order")
		}

		if err := store.UpdateOrderStatus(ctx, order.ID, models.OrderStatusCompletion); err != nil {
			t.Fatalf("UpdateOrderStatus failed: %v", err)
		}

		active, err = store.HasOrderInStatus(ctx, []string{table.ID}, models.NonTerminalStatuses)
		if err != nil {
			t.Fatalf("HasOrderInStatus failed: %v", err)
		}
		if active {
			t.Error("Expected no active order after completion")
		}
	})

	t.Run("WithTransaction rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.WithTransaction(ctx, func(tx storage.Repository) error {
			if err := tx.CreateProduct(ctx, &models.Product{Name: "Ghost", Price: price("1")}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected boom, got %v", err)
		}

		products, err := store.ListProducts(ctx)
		if err != nil {
			t.Fatalf("ListProducts failed: %v", err)
		}
		if len(products) != 1 {
			t.Errorf("Expected rollback to leave 1 product, got %d", len(products))
		}
	})
}

func TestSQLiteStore_Staff(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	staff := models.NewStaff("host@example.com", "Host", "hash")
	if err := store.CreateStaff(ctx, staff); err != nil {
		t.Fatalf("CreateStaff failed: %v", err)
	}

	got, err := store.GetStaffByEmail(ctx, "host@example.com")
	if err != nil {
		t.Fatalf("GetStaffByEmail failed: %v", err)
	}
	if got.ID != staff.ID {
		t.Errorf("Expected ID %s, got %s", staff.ID, got.ID)
	}

	if err := store.CreateStaff(ctx, models.NewStaff("host@example.com", "Other", "hash")); err == nil {
		t.Error("Expected duplicate email to fail")
	}

	if _, err := store.GetStaffByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
