package api

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"
)

// Client calls every kitchen POS procedure. Each field is a unary Connect client;
// invoke it with CallUnary.
type Client struct {
	CreateProduct *connect.Client[CreateProductRequest, CreateProductResponse]
	ListProducts  *connect.Client[ListProductsRequest, ListProductsResponse]

	CreateMenuGroup *connect.Client[CreateMenuGroupRequest, CreateMenuGroupResponse]
	ListMenuGroups  *connect.Client[ListMenuGroupsRequest, ListMenuGroupsResponse]

	CreateMenu *connect.Client[CreateMenuRequest, CreateMenuResponse]
	ListMenus  *connect.Client[ListMenusRequest, ListMenusResponse]

	CreateTable          *connect.Client[CreateTableRequest, CreateTableResponse]
	ListTables           *connect.Client[ListTablesRequest, ListTablesResponse]
	ChangeEmpty          *connect.Client[ChangeEmptyRequest, ChangeEmptyResponse]
	ChangeNumberOfGuests *connect.Client[ChangeNumberOfGuestsRequest, ChangeNumberOfGuestsResponse]

	CreateTableGroup *connect.Client[CreateTableGroupRequest, CreateTableGroupResponse]
	ListTableGroups  *connect.Client[ListTableGroupsRequest, ListTableGroupsResponse]
	Ungroup          *connect.Client[UngroupRequest, UngroupResponse]

	CreateOrder       *connect.Client[CreateOrderRequest, CreateOrderResponse]
	ListOrders        *connect.Client[ListOrdersRequest, ListOrdersResponse]
	ChangeOrderStatus *connect.Client[ChangeOrderStatusRequest, ChangeOrderStatusResponse]

	Register *connect.Client[RegisterRequest, RegisterResponse]
	Login    *connect.Client[LoginRequest, LoginResponse]
}

// NewClient creates a Client for the server at baseURL, e.g. "http://localhost:8080".
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)

	return &Client{
		CreateProduct: connect.NewClient[CreateProductRequest, CreateProductResponse](httpClient, baseURL+ProductServiceCreateProductProcedure, opts...),
		ListProducts:  connect.NewClient[ListProductsRequest, ListProductsResponse](httpClient, baseURL+ProductServiceListProductsProcedure, opts...),

		CreateMenuGroup: connect.NewClient[CreateMenuGroupRequest, CreateMenuGroupResponse](httpClient, baseURL+MenuGroupServiceCreateMenuGroupProcedure, opts...),
		ListMenuGroups:  connect.NewClient[ListMenuGroupsRequest, ListMenuGroupsResponse](httpClient, baseURL+MenuGroupServiceListMenuGroupsProcedure, opts...),

		CreateMenu: connect.NewClient[CreateMenuRequest, CreateMenuResponse](httpClient, baseURL+MenuServiceCreateMenuProcedure, opts...),
		ListMenus:  connect.NewClient[ListMenusRequest, ListMenusResponse](httpClient, baseURL+MenuServiceListMenusProcedure, opts...),

		CreateTable:          connect.NewClient[CreateTableRequest, CreateTableResponse](httpClient, baseURL+TableServiceCreateTableProcedure, opts...),
		ListTables:           connect.NewClient[ListTablesRequest, ListTablesResponse](httpClient, baseURL+TableServiceListTablesProcedure, opts...),
		ChangeEmpty:          connect.NewClient[ChangeEmptyRequest, ChangeEmptyResponse](httpClient, baseURL+TableServiceChangeEmptyProcedure, opts...),
		ChangeNumberOfGuests: connect.NewClient[ChangeNumberOfGuestsRequest, ChangeNumberOfGuestsResponse](httpClient, baseURL+TableServiceChangeNumberOfGuestsProcedure, opts...),

		CreateTableGroup: connect.NewClient[CreateTableGroupRequest, CreateTableGroupResponse](httpClient, baseURL+TableGroupServiceCreateTableGroupProcedure, opts...),
		ListTableGroups:  connect.NewClient[ListTableGroupsRequest, ListTableGroupsResponse](httpClient, baseURL+TableGroupServiceListTableGroupsProcedure, opts...),
		Ungroup:          connect.NewClient[UngroupRequest, UngroupResponse](httpClient, baseURL+TableGroupServiceUngroupProcedure, opts...),

		CreateOrder:       connect.NewClient[CreateOrderRequest, CreateOrderResponse](httpClient, baseURL+OrderServiceCreateOrderProcedure, opts...),
		ListOrders:        connect.NewClient[ListOrdersRequest, ListOrdersResponse](httpClient, baseURL+OrderServiceListOrdersProcedure, opts...),
		ChangeOrderStatus: connect.NewClient[ChangeOrderStatusRequest, ChangeOrderStatusResponse](httpClient, baseURL+OrderServiceChangeOrderStatusProcedure, opts...),

		Register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		Login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
	}
}

// WithBearerToken attaches "Authorization: Bearer <token>" to every request.
func WithBearerToken(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}))
}

// ErrorKind returns the failure kind attached to a Connect error, or "".
func ErrorKind(err error) string {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return ""
	}
	return connectErr.Meta().Get(ErrorKindHeader)
}
