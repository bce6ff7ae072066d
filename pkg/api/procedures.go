package api

// Service names.
const (
	ProductServiceName    = "kitchenpos.v1.ProductService"
	MenuGroupServiceName  = "kitchenpos.v1.MenuGroupService"
	MenuServiceName       = "kitchenpos.v1.MenuService"
	TableServiceName      = "kitchenpos.v1.TableService"
	TableGroupServiceName = "kitchenpos.v1.TableGroupService"
	OrderServiceName      = "kitchenpos.v1.OrderService"
	AuthServiceName       = "kitchenpos.v1.AuthService"
)

// Fully-qualified procedure names. These are the HTTP paths of each RPC.
const (
	ProductServiceCreateProductProcedure = "/" + ProductServiceName + "/CreateProduct"
	ProductServiceListProductsProcedure  = "/" + ProductServiceName + "/ListProducts"

	MenuGroupServiceCreateMenuGroupProcedure = "/" + MenuGroupServiceName + "/CreateMenuGroup"
	MenuGroupServiceListMenuGroupsProcedure  = "/" + MenuGroupServiceName + "/ListMenuGroups"

	MenuServiceCreateMenuProcedure = "/" + MenuServiceName + "/CreateMenu"
	MenuServiceListMenusProcedure  = "/" + MenuServiceName + "/ListMenus"

	TableServiceCreateTableProcedure          = "/" + TableServiceName + "/CreateTable"
	TableServiceListTablesProcedure           = "/" + TableServiceName + "/ListTables"
	TableServiceChangeEmptyProcedure          = "/" + TableServiceName + "/ChangeEmpty"
	TableServiceChangeNumberOfGuestsProcedure = "/" + TableServiceName + "/ChangeNumberOfGuests"

	TableGroupServiceCreateTableGroupProcedure = "/" + TableGroupServiceName + "/CreateTableGroup"
	TableGroupServiceListTableGroupsProcedure  = "/" + TableGroupServiceName + "/ListTableGroups"
	TableGroupServiceUngroupProcedure          = "/" + TableGroupServiceName + "/Ungroup"

	OrderServiceCreateOrderProcedure       = "/" + OrderServiceName + "/CreateOrder"
	OrderServiceListOrdersProcedure        = "/" + OrderServiceName + "/ListOrders"
	OrderServiceChangeOrderStatusProcedure = "/" + OrderServiceName + "/ChangeOrderStatus"

	AuthServiceRegisterProcedure = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure    = "/" + AuthServiceName + "/Login"
)

// PublicProcedures can be called without a session token.
var PublicProcedures = []string{
	AuthServiceRegisterProcedure,
	AuthServiceLoginProcedure,
}
