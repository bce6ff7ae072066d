package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// ProductServiceHandler is implemented by the server side of ProductService.
type ProductServiceHandler interface {
	CreateProduct(context.Context, *connect.Request[CreateProductRequest]) (*connect.Response[CreateProductResponse], error)
	ListProducts(context.Context, *connect.Request[ListProductsRequest]) (*connect.Response[ListProductsResponse], error)
}

type MenuGroupServiceHandler interface {
	CreateMenuGroup(context.Context, *connect.Request[CreateMenuGroupRequest]) (*connect.Response[CreateMenuGroupResponse], error)
	ListMenuGroups(context.Context, *connect.Request[ListMenuGroupsRequest]) (*connect.Response[ListMenuGroupsResponse], error)
}

type MenuServiceHandler interface {
	CreateMenu(context.Context, *connect.Request[CreateMenuRequest]) (*connect.Response[CreateMenuResponse], error)
	ListMenus(context.Context, *connect.Request[ListMenusRequest]) (*connect.Response[ListMenusResponse], error)
}

type TableServiceHandler interface {
	CreateTable(context.Context, *connect.Request[CreateTableRequest]) (*connect.Response[CreateTableResponse], error)
	ListTables(context.Context, *connect.Request[ListTablesRequest]) (*connect.Response[ListTablesResponse], error)
	ChangeEmpty(context.Context, *connect.Request[ChangeEmptyRequest]) (*connect.Response[ChangeEmptyResponse], error)
	ChangeNumberOfGuests(context.Context, *connect.Request[ChangeNumberOfGuestsRequest]) (*connect.Response[ChangeNumberOfGuestsResponse], error)
}

type TableGroupServiceHandler interface {
	CreateTableGroup(context.Context, *connect.Request[CreateTableGroupRequest]) (*connect.Response[CreateTableGroupResponse], error)
	ListTableGroups(context.Context, *connect.Request[ListTableGroupsRequest]) (*connect.Response[ListTableGroupsResponse], error)
	Ungroup(context.Context, *connect.Request[UngroupRequest]) (*connect.Response[UngroupResponse], error)
}

type OrderServiceHandler interface {
	CreateOrder(context.Context, *connect.Request[CreateOrderRequest]) (*connect.Response[CreateOrderResponse], error)
	ListOrders(context.Context, *connect.Request[ListOrdersRequest]) (*connect.Response[ListOrdersResponse], error)
	ChangeOrderStatus(context.Context, *connect.Request[ChangeOrderStatusRequest]) (*connect.Response[ChangeOrderStatusResponse], error)
}

type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// routes dispatches a service's procedures. It returns the service path prefix
// for mounting on a mux.
func routes(service string, handlers map[string]http.Handler) (string, http.Handler) {
	return "/" + service + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

func NewProductServiceHandler(svc ProductServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return routes(ProductServiceName, map[string]http.Handler{
		ProductServiceCreateProductProcedure: connect.NewUnaryHandler(ProductServiceCreateProductProcedure, svc.CreateProduct, opts...),
		ProductServiceListProductsProcedure:  connect.NewUnaryHandler(ProductServiceListProductsProcedure, svc.ListProducts, opts...),
	})
}

func NewMenuGroupServiceHandler(svc MenuGroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return routes(MenuGroupServiceName, map[string]http.Handler{
		MenuGroupServiceCreateMenuGroupProcedure: connect.NewUnaryHandler(MenuGroupServiceCreateMenuGroupProcedure, svc.CreateMenuGroup, opts...),
		MenuGroupServiceListMenuGroupsProcedure:  connect.NewUnaryHandler(MenuGroupServiceListMenuGroupsProcedure, svc.ListMenuGroups, opts...),
	})
}

func NewMenuServiceHandler(svc MenuServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return routes(MenuServiceName, map[string]http.Handler{
		MenuServiceCreateMenuProcedure: connect.NewUnaryHandler(MenuServiceCreateMenuProcedure, svc.CreateMenu, opts...),
		MenuServiceListMenusProcedure:  connect.NewUnaryHandler(MenuServiceListMenusProcedure, svc.ListMenus, opts...),
	})
}

func NewTableServiceHandler(svc TableServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return routes(TableServiceName, map[string]http.Handler{
		TableServiceCreateTableProcedure:          connect.NewUnaryHandler(TableServiceCreateTableProcedure, svc.CreateTable, opts...),
		TableServiceListTablesProcedure:           connect.NewUnaryHandler(TableServiceListTablesProcedure, svc.ListTables, opts...),
		TableServiceChangeEmptyProcedure:          connect.NewUnaryHandler(TableServiceChangeEmptyProcedure, svc.ChangeEmpty, opts...),
		TableServiceChangeNumberOfGuestsProcedure: connect.NewUnaryHandler(TableServiceChangeNumberOfGuestsProcedure, svc.ChangeNumberOfGuests, opts...),
	})
}

func NewTableGroupServiceHandler(svc TableGroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return routes(TableGroupServiceName, map[string]http.Handler{
		TableGroupServiceCreateTableGroupProcedure: connect.NewUnaryHandler(TableGroupServiceCreateTableGroupProcedure, svc.CreateTableGroup, opts...),
		TableGroupServiceListTableGroupsProcedure:  connect.NewUnaryHandler(TableGroupServiceListTableGroupsProcedure, svc.ListTableGroups, opts...),
		TableGroupServiceUngroupProcedure:          connect.NewUnaryHandler(TableGroupServiceUngroupProcedure, svc.Ungroup, opts...),
	})
}

func NewOrderServiceHandler(svc OrderServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return routes(OrderServiceName, map[string]http.Handler{
		OrderServiceCreateOrderProcedure:       connect.NewUnaryHandler(OrderServiceCreateOrderProcedure, svc.CreateOrder, opts...),
		OrderServiceListOrdersProcedure:        connect.NewUnaryHandler(OrderServiceListOrdersProcedure, svc.ListOrders, opts...),
		OrderServiceChangeOrderStatusProcedure: connect.NewUnaryHandler(OrderServiceChangeOrderStatusProcedure, svc.ChangeOrderStatus, opts...),
	})
}

func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return routes(AuthServiceName, map[string]http.Handler{
		AuthServiceRegisterProcedure: connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceLoginProcedure:    connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
	})
}
