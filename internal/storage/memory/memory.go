// Package memory provides an in-memory implementation of storage.Store.
//
// Transactions take the store lock, work on a copy of the state and swap it in on
// commit, so they are fully serialized and a failed transaction leaves no trace.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store in memory.
type Store struct {
	mu sync.Mutex
	st *state
}

// New creates an empty Store.
func New() *Store {
	return &Store{st: newState()}
}

// WithTransaction runs fn against a private copy of the state and commits it if fn
// succeeds. Calling methods of s from inside fn deadlocks; use tx.
func (s *Store) WithTransaction(ctx context.Context, fn func(tx storage.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.st.clone()
	if err := fn(draft); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.st = draft
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }

func locked[T any](s *Store, fn func(st *state) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func lockedErr(s *Store, fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return lockedErr(s, func(st *state) error { return st.CreateProduct(ctx, p) })
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return locked(s, func(st *state) (*models.Product, error) { return st.GetProduct(ctx, id) })
}

func (s *Store) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return locked(s, func(st *state) ([]*models.Product, error) { return st.ListProducts(ctx) })
}

func (s *Store) CreateMenuGroup(ctx context.Context, g *models.MenuGroup) error {
	return lockedErr(s, func(st *state) error { return st.CreateMenuGroup(ctx, g) })
}

func (s *Store) GetMenuGroup(ctx context.Context, id string) (*models.MenuGroup, error) {
	return locked(s, func(st *state) (*models.MenuGroup, error) { return st.GetMenuGroup(ctx, id) })
}

func (s *Store) ListMenuGroups(ctx context.Context) ([]*models.MenuGroup, error) {
	return locked(s, func(st *state) ([]*models.MenuGroup, error) { return st.ListMenuGroups(ctx) })
}

func (s *Store) CreateMenu(ctx context.Context, m *models.Menu) error {
	return lockedErr(s, func(st *state) error { return st.CreateMenu(ctx, m) })
}

func (s *Store) GetMenu(ctx context.Context, id string) (*models.Menu, error) {
	return locked(s, func(st *state) (*models.Menu, error) { return st.GetMenu(ctx, id) })
}

func (s *Store) ListMenus(ctx context.Context) ([]*models.Menu, error) {
	return locked(s, func(st *state) ([]*models.Menu, error) { return st.ListMenus(ctx) })
}

func (s *Store) CreateOrderTable(ctx context.Context, t *models.OrderTable) error {
	return lockedErr(s, func(st *state) error { return st.CreateOrderTable(ctx, t) })
}

func (s *Store) GetOrderTable(ctx context.Context, id string) (*models.OrderTable, error) {
	return locked(s, func(st *state) (*models.OrderTable, error) { return st.GetOrderTable(ctx, id) })
}

func (s *Store) ListOrderTables(ctx context.Context) ([]*models.OrderTable, error) {
	return locked(s, func(st *state) ([]*models.OrderTable, error) { return st.ListOrderTables(ctx) })
}

func (s *Store) ListOrderTablesByGroup(ctx context.Context, groupID string) ([]*models.OrderTable, error) {
	return locked(s, func(st *state) ([]*models.OrderTable, error) { return st.ListOrderTablesByGroup(ctx, groupID) })
}

func (s *Store) UpdateOrderTable(ctx context.Context, t *models.OrderTable) error {
	return lockedErr(s, func(st *state) error { return st.UpdateOrderTable(ctx, t) })
}

func (s *Store) CreateTableGroup(ctx context.Context, g *models.TableGroup) error {
	return lockedErr(s, func(st *state) error { return st.CreateTableGroup(ctx, g) })
}

func (s *Store) GetTableGroup(ctx context.Context, id string) (*models.TableGroup, error) {
	return locked(s, func(st *state) (*models.TableGroup, error) { return st.GetTableGroup(ctx, id) })
}

func (s *Store) ListTableGroups(ctx context.Context) ([]*models.TableGroup, error) {
	return locked(s, func(st *state) ([]*models.TableGroup, error) { return st.ListTableGroups(ctx) })
}

func (s *Store) DeleteTableGroup(ctx context.Context, id string) error {
	return lockedErr(s, func(st *state) error { return st.DeleteTableGroup(ctx, id) })
}

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	return lockedErr(s, func(st *state) error { return st.CreateOrder(ctx, o) })
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return locked(s, func(st *state) (*models.Order, error) { return st.GetOrder(ctx, id) })
}

func (s *Store) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return locked(s, func(st *state) ([]*models.Order, error) { return st.ListOrders(ctx) })
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return lockedErr(s, func(st *state) error { return st.UpdateOrderStatus(ctx, id, status) })
}

func (s *Store) HasOrderInStatus(ctx context.Context, tableIDs []string, statuses []models.OrderStatus) (bool, error) {
	return locked(s, func(st *state) (bool, error) { return st.HasOrderInStatus(ctx, tableIDs, statuses) })
}

func (s *Store) CreateStaff(ctx context.Context, staff *models.Staff) error {
	return lockedErr(s, func(st *state) error { return st.CreateStaff(ctx, staff) })
}

func (s *Store) GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	return locked(s, func(st *state) (*models.Staff, error) { return st.GetStaffByEmail(ctx, email) })
}

func (s *Store) GetStaffByID(ctx context.Context, id string) (*models.Staff, error) {
	return locked(s, func(st *state) (*models.Staff, error) { return st.GetStaffByID(ctx, id) })
}

// state holds every record. Stored values are never mutated in place, so a clone
// only needs to copy the maps and order slices.
type state struct {
	products     map[string]models.Product
	productIDs   []string
	menuGroups   map[string]models.MenuGroup
	menuGroupIDs []string
	menus        map[string]models.Menu
	menuIDs      []string
	tables       map[string]models.OrderTable
	tableIDs     []string
	groups       map[string]models.TableGroup
	groupIDs     []string
	orders       map[string]models.Order
	orderIDs     []string
	staff        map[string]models.Staff
	lineSeq      int64
}

var _ storage.Repository = (*state)(nil)

func newState() *state {
	return &state{
		products:   map[string]models.Product{},
		menuGroups: map[string]models.MenuGroup{},
		menus:      map[string]models.Menu{},
		tables:     map[string]models.OrderTable{},
		groups:     map[string]models.TableGroup{},
		orders:     map[string]models.Order{},
		staff:      map[string]models.Staff{},
	}
}

func (st *state) clone() *state {
	return &state{
		products:     cloneMap(st.products),
		productIDs:   slices.Clone(st.productIDs),
		menuGroups:   cloneMap(st.menuGroups),
		menuGroupIDs: slices.Clone(st.menuGroupIDs),
		menus:        cloneMap(st.menus),
		menuIDs:      slices.Clone(st.menuIDs),
		tables:       cloneMap(st.tables),
		tableIDs:     slices.Clone(st.tableIDs),
		groups:       cloneMap(st.groups),
		groupIDs:     slices.Clone(st.groupIDs),
		orders:       cloneMap(st.orders),
		orderIDs:     slices.Clone(st.orderIDs),
		staff:        cloneMap(st.staff),
		lineSeq:      st.lineSeq,
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func notFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, storage.ErrNotFound)
}

func newID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func (st *state) nextSeq() int64 {
	st.lineSeq++
	return st.lineSeq
}

func (st *state) CreateProduct(ctx context.Context, p *models.Product) error {
	p.ID = newID(p.ID)
	st.products[p.ID] = *p
	st.productIDs = append(st.productIDs, p.ID)
	return nil
}

func (st *state) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, ok := st.products[id]
	if !ok {
		return nil, notFound("product", id)
	}
	return &p, nil
}

func (st *state) ListProducts(ctx context.Context) ([]*models.Product, error) {
	out := make([]*models.Product, 0, len(st.productIDs))
	for _, id := range st.productIDs {
		p := st.products[id]
		out = append(out, &p)
	}
	return out, nil
}

func (st *state) CreateMenuGroup(ctx context.Context, g *models.MenuGroup) error {
	g.ID = newID(g.ID)
	st.menuGroups[g.ID] = *g
	st.menuGroupIDs = append(st.menuGroupIDs, g.ID)
	return nil
}

func (st *state) GetMenuGroup(ctx context.Context, id string) (*models.MenuGroup, error) {
	g, ok := st.menuGroups[id]
	if !ok {
		return nil, notFound("menu group", id)
	}
	return &g, nil
}

func (st *state) ListMenuGroups(ctx context.Context) ([]*models.MenuGroup, error) {
	out := make([]*models.MenuGroup, 0, len(st.menuGroupIDs))
	for _, id := range st.menuGroupIDs {
		g := st.menuGroups[id]
		out = append(out, &g)
	}
	return out, nil
}

func (st *state) CreateMenu(ctx context.Context, m *models.Menu) error {
	m.ID = newID(m.ID)
	for i := range m.MenuProducts {
		m.MenuProducts[i].Seq = st.nextSeq()
		m.MenuProducts[i].MenuID = m.ID
	}
	stored := *m
	stored.MenuProducts = slices.Clone(m.MenuProducts)
	st.menus[m.ID] = stored
	st.menuIDs = append(st.menuIDs, m.ID)
	return nil
}

func (st *state) GetMenu(ctx context.Context, id string) (*models.Menu, error) {
	m, ok := st.menus[id]
	if !ok {
		return nil, notFound("menu", id)
	}
	m.MenuProducts = slices.Clone(m.MenuProducts)
	return &m, nil
}

func (st *state) ListMenus(ctx context.Context) ([]*models.Menu, error) {
	out := make([]*models.Menu, 0, len(st.menuIDs))
	for _, id := range st.menuIDs {
		m, _ := st.GetMenu(ctx, id)
		out = append(out, m)
	}
	return out, nil
}

func (st *state) CreateOrderTable(ctx context.Context, t *models.OrderTable) error {
	t.ID = newID(t.ID)
	t.Version = 1
	st.tables[t.ID] = *t
	st.tableIDs = append(st.tableIDs, t.ID)
	return nil
}

func (st *state) GetOrderTable(ctx context.Context, id string) (*models.OrderTable, error) {
	t, ok := st.tables[id]
	if !ok {
		return nil, notFound("order table", id)
	}
	return &t, nil
}

func (st *state) ListOrderTables(ctx context.Context) ([]*models.OrderTable, error) {
	out := make([]*models.OrderTable, 0, len(st.tableIDs))
	for _, id := range st.tableIDs {
		t := st.tables[id]
		out = append(out, &t)
	}
	return out, nil
}

func (st *state) ListOrderTablesByGroup(ctx context.Context, groupID string) ([]*models.OrderTable, error) {
	var out []*models.OrderTable
	for _, id := range st.tableIDs {
		t := st.tables[id]
		if t.TableGroupID == groupID {
			out = append(out, &t)
		}
	}
	return out, nil
}

func (st *state) UpdateOrderTable(ctx context.Context, t *models.OrderTable) error {
	current, ok := st.tables[t.ID]
	if !ok {
		return notFound("order table", t.ID)
	}
	if current.Version != t.Version {
		return fmt.Errorf("order table %s at version %d, expected %d: %w",
			t.ID, current.Version, t.Version, storage.ErrConflict)
	}
	t.Version++
	st.tables[t.ID] = *t
	return nil
}

func (st *state) CreateTableGroup(ctx context.Context, g *models.TableGroup) error {
	g.ID = newID(g.ID)
	if g.CreatedDate.IsZero() {
		g.CreatedDate = time.Now()
	}
	stored := *g
	stored.OrderTables = nil
	st.groups[g.ID] = stored
	st.groupIDs = append(st.groupIDs, g.ID)
	return nil
}

func (st *state) GetTableGroup(ctx context.Context, id string) (*models.TableGroup, error) {
	g, ok := st.groups[id]
	if !ok {
		return nil, notFound("table group", id)
	}
	members, _ := st.ListOrderTablesByGroup(ctx, id)
	g.OrderTables = make([]models.OrderTable, len(members))
	for i, t := range members {
		g.OrderTables[i] = *t
	}
	return &g, nil
}

func (st *state) ListTableGroups(ctx context.Context) ([]*models.TableGroup, error) {
	out := make([]*models.TableGroup, 0, len(st.groupIDs))
	for _, id := range st.groupIDs {
		g, _ := st.GetTableGroup(ctx, id)
		out = append(out, g)
	}
	return out, nil
}

func (st *state) DeleteTableGroup(ctx context.Context, id string) error {
	if _, ok := st.groups[id]; !ok {
		return notFound("table group", id)
	}
	delete(st.groups, id)
	st.groupIDs = slices.DeleteFunc(st.groupIDs, func(v string) bool { return v == id })
	return nil
}

func (st *state) CreateOrder(ctx context.Context, o *models.Order) error {
	o.ID = newID(o.ID)
	for i := range o.OrderLineItems {
		o.OrderLineItems[i].Seq = st.nextSeq()
		o.OrderLineItems[i].OrderID = o.ID
	}
	stored := *o
	stored.OrderLineItems = slices.Clone(o.OrderLineItems)
	st.orders[o.ID] = stored
	st.orderIDs = append(st.orderIDs, o.ID)
	return nil
}

func (st *state) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, ok := st.orders[id]
	if !ok {
		return nil, notFound("order", id)
	}
	o.OrderLineItems = slices.Clone(o.OrderLineItems)
	return &o, nil
}

func (st *state) ListOrders(ctx context.Context) ([]*models.Order, error) {
	out := make([]*models.Order, 0, len(st.orderIDs))
	for _, id := range st.orderIDs {
		o, _ := st.GetOrder(ctx, id)
		out = append(out, o)
	}
	return out, nil
}

func (st *state) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	o, ok := st.orders[id]
	if !ok {
		return notFound("order", id)
	}
	o.OrderStatus = status
	st.orders[id] = o
	return nil
}

func (st *state) HasOrderInStatus(ctx context.Context, tableIDs []string, statuses []models.OrderStatus) (bool, error) {
	for _, o := range st.orders {
		if slices.Contains(tableIDs, o.OrderTableID) && slices.Contains(statuses, o.OrderStatus) {
			return true, nil
		}
	}
	return false, nil
}

func (st *state) CreateStaff(ctx context.Context, staff *models.Staff) error {
	staff.ID = newID(staff.ID)
	for _, existing := range st.staff {
		if existing.Email == staff.Email {
			return fmt.Errorf("failed to create staff: email %s already registered", staff.Email)
		}
	}
	st.staff[staff.ID] = *staff
	return nil
}

func (st *state) GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	for _, s := range st.staff {
		if s.Email == email {
			return &s, nil
		}
	}
	return nil, notFound("staff", email)
}

func (st *state) GetStaffByID(ctx context.Context, id string) (*models.Staff, error) {
	s, ok := st.staff[id]
	if !ok {
		return nil, notFound("staff", id)
	}
	return &s, nil
}
