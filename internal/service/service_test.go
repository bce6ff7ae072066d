package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/lxxjn0/jwp-refactoring/internal/auth"
	"github.com/lxxjn0/jwp-refactoring/internal/engine"
	"github.com/lxxjn0/jwp-refactoring/internal/middleware"
	"github.com/lxxjn0/jwp-refactoring/internal/storage/sqlite"
	"github.com/lxxjn0/jwp-refactoring/pkg/api"
)

// setupTestServer serves every service over a temp SQLite database. With a
// non-nil jwtManager, kitchen procedures require a session token.
func setupTestServer(t *testing.T, jwtManager *auth.JWTManager) (*httptest.Server, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "kitchenpos-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	var (
		authSvc *AuthService
		opts    []connect.HandlerOption
	)
	if jwtManager != nil {
		authSvc = NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, slog.Default())
		opts = append(opts, connect.WithInterceptors(middleware.RequireAuth(jwtManager, api.PublicProcedures...)))
	}

	mux := http.NewServeMux()
	Mount(mux, engine.New(store), authSvc, opts...)
	server := httptest.NewServer(mux)

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return server, cleanup
}

func setupTestClient(t *testing.T) (*api.Client, func()) {
	t.Helper()
	server, cleanup := setupTestServer(t, nil)
	return api.NewClient(http.DefaultClient, server.URL), cleanup
}

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func assertRejected(t *testing.T, err error, code connect.Code, kind string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if got := connect.CodeOf(err); got != code {
		t.Errorf("expected code %v, got %v (%v)", code, got, err)
	}
	if got := api.ErrorKind(err); got != kind {
		t.Errorf("expected kind %q, got %q", kind, got)
	}
}

// seedMenu creates a product priced 18000, a menu group, and a one-product menu.
func seedMenu(t *testing.T, client *api.Client) (*api.Product, *api.MenuGroup, *api.Menu) {
	t.Helper()
	ctx := context.Background()

	productResp, err := client.CreateProduct.CallUnary(ctx, connect.NewRequest(&api.CreateProductRequest{
		Name:  "Garlic Chicken",
		Price: price("18000"),
	}))
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	groupResp, err := client.CreateMenuGroup.CallUnary(ctx, connect.NewRequest(&api.CreateMenuGroupRequest{
		Name: "Chicken Set",
	}))
	if err != nil {
		t.Fatalf("CreateMenuGroup failed: %v", err)
	}
	menuResp, err := client.CreateMenu.CallUnary(ctx, connect.NewRequest(&api.CreateMenuRequest{
		Name:         "Garlic Chicken Set",
		Price:        price("18000"),
		MenuGroupID:  groupResp.Msg.MenuGroup.ID,
		MenuProducts: []*api.MenuProduct{{ProductID: productResp.Msg.Product.ID, Quantity: 1}},
	}))
	if err != nil {
		t.Fatalf("CreateMenu failed: %v", err)
	}
	return productResp.Msg.Product, groupResp.Msg.MenuGroup, menuResp.Msg.Menu
}

func createTable(t *testing.T, client *api.Client, empty bool) *api.OrderTable {
	t.Helper()
	resp, err := client.CreateTable.CallUnary(context.Background(), connect.NewRequest(&api.CreateTableRequest{
		Empty: &empty,
	}))
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	return resp.Msg.OrderTable
}

func TestCreateMenu(t *testing.T) {
	client, cleanup := setupTestClient(t)
	defer cleanup()
	ctx := context.Background()

	product, group, menu := seedMenu(t, client)
	if menu.ID == "" {
		t.Fatal("expected menu ID to be assigned")
	}
	if !menu.Price.Decimal.Equal(decimal.NewFromInt(18000)) {
		t.Errorf("expected price 18000, got %s", menu.Price.Decimal)
	}

	_, err := client.CreateMenu.CallUnary(ctx, connect.NewRequest(&api.CreateMenuRequest{
		Name:         "Overpriced",
		Price:        price("19000"),
		MenuGroupID:  group.ID,
		MenuProducts: []*api.MenuProduct{{ProductID: product.ID, Quantity: 1}},
	}))
	assertRejected(t, err, connect.CodeInvalidArgument, "InvalidMenuPrice")

	_, err = client.CreateMenu.CallUnary(ctx, connect.NewRequest(&api.CreateMenuRequest{
		Name:         "Lost",
		Price:        price("1000"),
		MenuGroupID:  "missing",
		MenuProducts: []*api.MenuProduct{{ProductID: product.ID, Quantity: 1}},
	}))
	assertRejected(t, err, connect.CodeNotFound, "ReferenceNotFound")

	list, err := client.ListMenus.CallUnary(ctx, connect.NewRequest(&api.ListMenusRequest{}))
	if err != nil {
		t.Fatalf("ListMenus failed: %v", err)
	}
	if len(list.Msg.Menus) != 1 {
		t.Fatalf("expected 1 menu, got %d", len(list.Msg.Menus))
	}
	if len(list.Msg.Menus[0].MenuProducts) != 1 {
		t.Errorf("expected menu products to be listed, got %d", len(list.Msg.Menus[0].MenuProducts))
	}
}

func TestCreateProduct_NullPrice(t *testing.T) {
	client, cleanup := setupTestClient(t)
	defer cleanup()

	_, err := client.CreateProduct.CallUnary(context.Background(), connect.NewRequest(&api.CreateProductRequest{
		Name: "Free lunch",
	}))
	assertRejected(t, err, connect.CodeInvalidArgument, "InvalidProductPrice")
}

func TestCreateTable_DefaultsToEmpty(t *testing.T) {
	client, cleanup := setupTestClient(t)
	defer cleanup()

	resp, err := client.CreateTable.CallUnary(context.Background(), connect.NewRequest(&api.CreateTableRequest{}))
	if err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}
	if !resp.Msg.OrderTable.Empty {
		t.Error("expected new table to be empty")
	}
}

func TestTableGroupLifecycle(t *testing.T) {
	client, cleanup := setupTestClient(t)
	defer cleanup()
	ctx := context.Background()

	_, _, menu := seedMenu(t, client)
	a, b := createTable(t, client, true), createTable(t, client, true)

	groupResp, err := client.CreateTableGroup.CallUnary(ctx, connect.NewRequest(&api.CreateTableGroupRequest{
		OrderTableIDs: []string{a.ID, b.ID},
	}))
	if err != nil {
		t.Fatalf("CreateTableGroup failed: %v", err)
	}
	group := groupResp.Msg.TableGroup
	for _, member := range group.OrderTables {
		if member.Empty || member.TableGroupID != group.ID {
			t.Errorf("unexpected member state: %+v", member)
		}
	}

	_, err = client.ChangeEmpty.CallUnary(ctx, connect.NewRequest(&api.ChangeEmptyRequest{
		OrderTableID: a.ID,
		Empty:        true,
	}))
	assertRejected(t, err, connect.CodeFailedPrecondition, "TableGrouped")

	orderResp, err := client.CreateOrder.CallUnary(ctx, connect.NewRequest(&api.CreateOrderRequest{
		OrderTableID:   a.ID,
		OrderLineItems: []*api.OrderLineItem{{MenuID: menu.ID, Quantity: 1}},
	}))
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if orderResp.Msg.Order.OrderStatus != "COOKING" {
		t.Errorf("expected COOKING, got %s", orderResp.Msg.Order.OrderStatus)
	}

	_, err = client.Ungroup.CallUnary(ctx, connect.NewRequest(&api.UngroupRequest{TableGroupID: group.ID}))
	assertRejected(t, err, connect.CodeFailedPrecondition, "GroupHasActiveOrder")

	_, err = client.ChangeOrderStatus.CallUnary(ctx, connect.NewRequest(&api.ChangeOrderStatusRequest{
		OrderID:     orderResp.Msg.Order.ID,
		OrderStatus: "COMPLETION",
	}))
	if err != nil {
		t.Fatalf("ChangeOrderStatus failed: %v", err)
	}

	if _, err := client.Ungroup.CallUnary(ctx, connect.NewRequest(&api.UngroupRequest{TableGroupID: group.ID})); err != nil {
		t.Fatalf("Ungroup failed: %v", err)
	}

	tables, err := client.ListTables.CallUnary(ctx, connect.NewRequest(&api.ListTablesRequest{}))
	if err != nil {
		t.Fatalf("ListTables failed: %v", err)
	}
	for _, table := range tables.Msg.OrderTables {
		if table.TableGroupID != "" {
			t.Errorf("table %s: expected group to be cleared", table.ID)
		}
	}
}

func TestCreateTableGroup_SingleTable(t *testing.T) {
	client, cleanup := setupTestClient(t)
	defer cleanup()

	a := createTable(t, client, true)
	_, err := client.CreateTableGroup.CallUnary(context.Background(), connect.NewRequest(&api.CreateTableGroupRequest{
		OrderTableIDs: []string{a.ID},
	}))
	assertRejected(t, err, connect.CodeInvalidArgument, "InvalidGroupSize")
}

func TestOrderLifecycle(t *testing.T) {
	client, cleanup := setupTestClient(t)
	defer cleanup()
	ctx := context.Background()

	_, _, menu := seedMenu(t, client)
	table := createTable(t, client, false)
	emptyTable := createTable(t, client, true)

	_, err := client.CreateOrder.CallUnary(ctx, connect.NewRequest(&api.CreateOrderRequest{
		OrderTableID:   emptyTable.ID,
		OrderLineItems: []*api.OrderLineItem{{MenuID: menu.ID, Quantity: 1}},
	}))
	assertRejected(t, err, connect.CodeFailedPrecondition, "TableIsEmpty")

	_, err = client.CreateOrder.CallUnary(ctx, connect.NewRequest(&api.CreateOrderRequest{
		OrderTableID: table.ID,
	}))
	assertRejected(t, err, connect.CodeInvalidArgument, "EmptyOrderLines")

	orderResp, err := client.CreateOrder.CallUnary(ctx, connect.NewRequest(&api.CreateOrderRequest{
		OrderTableID:   table.ID,
		OrderLineItems: []*api.OrderLineItem{{MenuID: menu.ID, Quantity: 1}},
	}))
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	orderID := orderResp.Msg.Order.ID
	if orderResp.Msg.Order.OrderedTime.IsZero() {
		t.Error("expected ordered time to be set")
	}

	change := func(status string) error {
		_, err := client.ChangeOrderStatus.CallUnary(ctx, connect.NewRequest(&api.ChangeOrderStatusRequest{
			OrderID:     orderID,
			OrderStatus: status,
		}))
		return err
	}

	assertRejected(t, change("SERVED"), connect.CodeInvalidArgument, "InvalidStatusTransition")
	if err := change("COMPLETION"); err != nil {
		t.Fatalf("ChangeOrderStatus failed: %v", err)
	}
	assertRejected(t, change("MEAL"), connect.CodeFailedPrecondition, "OrderAlreadyCompleted")

	_, err = client.ChangeOrderStatus.CallUnary(ctx, connect.NewRequest(&api.ChangeOrderStatusRequest{
		OrderID:     "missing",
		OrderStatus: "MEAL",
	}))
	assertRejected(t, err, connect.CodeNotFound, "ReferenceNotFound")

	orders, err := client.ListOrders.CallUnary(ctx, connect.NewRequest(&api.ListOrdersRequest{}))
	if err != nil {
		t.Fatalf("ListOrders failed: %v", err)
	}
	if len(orders.Msg.Orders) != 1 || len(orders.Msg.Orders[0].OrderLineItems) != 1 {
		t.Errorf("unexpected orders: %+v", orders.Msg.Orders)
	}
}

func TestAuthRequired(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	server, cleanup := setupTestServer(t, jwtManager)
	defer cleanup()
	ctx := context.Background()

	anonymous := api.NewClient(http.DefaultClient, server.URL)

	_, err := anonymous.ListTables.CallUnary(ctx, connect.NewRequest(&api.ListTablesRequest{}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}

	reg, err := anonymous.Register.CallUnary(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "host@example.com",
		DisplayName: "Host",
		Password:    "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Msg.Token == "" {
		t.Fatal("expected token from Register")
	}

	_, err = anonymous.Login.CallUnary(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "host@example.com",
		Password: "wrong-password",
	}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("expected Unauthenticated for bad password, got %v", err)
	}

	login, err := anonymous.Login.CallUnary(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "host@example.com",
		Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	staffClient := api.NewClient(http.DefaultClient, server.URL, api.WithBearerToken(login.Msg.Token))
	if _, err := staffClient.ListTables.CallUnary(ctx, connect.NewRequest(&api.ListTablesRequest{})); err != nil {
		t.Errorf("expected authenticated call to succeed, got %v", err)
	}
}
