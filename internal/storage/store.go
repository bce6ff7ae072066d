// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
)

var (
	// ErrNotFound is returned (wrapped) when an id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned (wrapped) when a write lost a race with another
	// writer: an optimistic version check failed or the database aborted the
	// transaction as non-serializable.
	ErrConflict = errors.New("conflicting concurrent write")
)

// Repository is the set of per-record operations. Implementations fill in IDs on
// create and return copies, so callers never share memory with the store.
type Repository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)

	CreateMenuGroup(ctx context.Context, group *models.MenuGroup) error
	GetMenuGroup(ctx context.Context, id string) (*models.MenuGroup, error)
	ListMenuGroups(ctx context.Context) ([]*models.MenuGroup, error)

	// CreateMenu persists the menu together with its MenuProducts.
	CreateMenu(ctx context.Context, menu *models.Menu) error
	GetMenu(ctx context.Context, id string) (*models.Menu, error)
	ListMenus(ctx context.Context) ([]*models.Menu, error)

	CreateOrderTable(ctx context.Context, table *models.OrderTable) error
	GetOrderTable(ctx context.Context, id string) (*models.OrderTable, error)
	ListOrderTables(ctx context.Context) ([]*models.OrderTable, error)
	ListOrderTablesByGroup(ctx context.Context, groupID string) ([]*models.OrderTable, error)

	// UpdateOrderTable writes table if its stored Version still equals table.Version,
	// then increments table.Version. A mismatch returns ErrConflict.
	UpdateOrderTable(ctx context.Context, table *models.OrderTable) error

	// CreateTableGroup persists the group record only; membership is written
	// through UpdateOrderTable.
	CreateTableGroup(ctx context.Context, group *models.TableGroup) error

	// GetTableGroup returns the group with OrderTables populated.
	GetTableGroup(ctx context.Context, id string) (*models.TableGroup, error)
	ListTableGroups(ctx context.Context) ([]*models.TableGroup, error)
	DeleteTableGroup(ctx context.Context, id string) error

	// CreateOrder persists the order together with its OrderLineItems.
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)

	// UpdateOrderStatus overwrites the status of an existing order.
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error

	// HasOrderInStatus reports whether any order placed on one of tableIDs is in
	// one of statuses.
	HasOrderInStatus(ctx context.Context, tableIDs []string, statuses []models.OrderStatus) (bool, error)

	CreateStaff(ctx context.Context, staff *models.Staff) error

	// GetStaffByEmail returns ErrNotFound when no account uses email.
	GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error)
	GetStaffByID(ctx context.Context, id string) (*models.Staff, error)
}

// Store is a Repository with a transactional scope.
// This abstraction allows swapping storage backends (memory, SQLite, PostgreSQL)
// without changing the engine.
type Store interface {
	Repository

	// WithTransaction runs fn against a Repository bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise. fn must
	// use only the Repository it is given.
	WithTransaction(ctx context.Context, fn func(tx Repository) error) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
