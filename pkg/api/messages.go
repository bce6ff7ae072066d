package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Price decimal.NullDecimal `json:"price"`
}

type CreateProductRequest struct {
	Name  string              `json:"name"`
	Price decimal.NullDecimal `json:"price"`
}

type CreateProductResponse struct {
	Product *Product `json:"product"`
}

type ListProductsRequest struct{}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
}

type MenuGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateMenuGroupRequest struct {
	Name string `json:"name"`
}

type CreateMenuGroupResponse struct {
	MenuGroup *MenuGroup `json:"menuGroup"`
}

type ListMenuGroupsRequest struct{}

type ListMenuGroupsResponse struct {
	MenuGroups []*MenuGroup `json:"menuGroups"`
}

// MenuProduct is one line of a menu. Seq and MenuID are assigned by the server.
type MenuProduct struct {
	Seq       int64  `json:"seq,omitempty"`
	MenuID    string `json:"menuId,omitempty"`
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

type Menu struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Price        decimal.NullDecimal `json:"price"`
	MenuGroupID  string              `json:"menuGroupId"`
	MenuProducts []*MenuProduct      `json:"menuProducts"`
}

type CreateMenuRequest struct {
	Name         string              `json:"name"`
	Price        decimal.NullDecimal `json:"price"`
	MenuGroupID  string              `json:"menuGroupId"`
	MenuProducts []*MenuProduct      `json:"menuProducts"`
}

type CreateMenuResponse struct {
	Menu *Menu `json:"menu"`
}

type ListMenusRequest struct{}

type ListMenusResponse struct {
	Menus []*Menu `json:"menus"`
}

type OrderTable struct {
	ID             string `json:"id"`
	TableGroupID   string `json:"tableGroupId,omitempty"`
	NumberOfGuests int    `json:"numberOfGuests"`
	Empty          bool   `json:"empty"`
}

// CreateTableRequest opens a table. Empty defaults to true when omitted.
type CreateTableRequest struct {
	NumberOfGuests int   `json:"numberOfGuests"`
	Empty          *bool `json:"empty,omitempty"`
}

type CreateTableResponse struct {
	OrderTable *OrderTable `json:"orderTable"`
}

type ListTablesRequest struct{}

type ListTablesResponse struct {
	OrderTables []*OrderTable `json:"orderTables"`
}

type ChangeEmptyRequest struct {
	OrderTableID string `json:"orderTableId"`
	Empty        bool   `json:"empty"`
}

type ChangeEmptyResponse struct {
	OrderTable *OrderTable `json:"orderTable"`
}

type ChangeNumberOfGuestsRequest struct {
	OrderTableID   string `json:"orderTableId"`
	NumberOfGuests int    `json:"numberOfGuests"`
}

type ChangeNumberOfGuestsResponse struct {
	OrderTable *OrderTable `json:"orderTable"`
}

type TableGroup struct {
	ID          string        `json:"id"`
	CreatedDate time.Time     `json:"createdDate"`
	OrderTables []*OrderTable `json:"orderTables"`
}

type CreateTableGroupRequest struct {
	OrderTableIDs []string `json:"orderTableIds"`
}

type CreateTableGroupResponse struct {
	TableGroup *TableGroup `json:"tableGroup"`
}

type ListTableGroupsRequest struct{}

type ListTableGroupsResponse struct {
	TableGroups []*TableGroup `json:"tableGroups"`
}

type UngroupRequest struct {
	TableGroupID string `json:"tableGroupId"`
}

type UngroupResponse struct{}

// OrderLineItem is one line of an order. Seq and OrderID are assigned by the server.
type OrderLineItem struct {
	Seq      int64  `json:"seq,omitempty"`
	OrderID  string `json:"orderId,omitempty"`
	MenuID   string `json:"menuId"`
	Quantity int64  `json:"quantity"`
}

type Order struct {
	ID             string           `json:"id"`
	OrderTableID   string           `json:"orderTableId"`
	OrderStatus    string           `json:"orderStatus"`
	OrderedTime    time.Time        `json:"orderedTime"`
	OrderLineItems []*OrderLineItem `json:"orderLineItems"`
}

type CreateOrderRequest struct {
	OrderTableID   string           `json:"orderTableId"`
	OrderLineItems []*OrderLineItem `json:"orderLineItems"`
}

type CreateOrderResponse struct {
	Order *Order `json:"order"`
}

type ListOrdersRequest struct{}

type ListOrdersResponse struct {
	Orders []*Order `json:"orders"`
}

// ChangeOrderStatusRequest moves an order to COOKING, MEAL or COMPLETION.
type ChangeOrderStatusRequest struct {
	OrderID     string `json:"orderId"`
	OrderStatus string `json:"orderStatus"`
}

type ChangeOrderStatusResponse struct {
	Order *Order `json:"order"`
}

type Staff struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Staff     *Staff    `json:"staff"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Staff     *Staff    `json:"staff"`
}
