package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/lxxjn0/jwp-refactoring/internal/engine"
	"github.com/lxxjn0/jwp-refactoring/pkg/api"
)

// Mount registers every kitchen service on mux. authSvc may be nil when staff
// accounts are disabled.
func Mount(mux *http.ServeMux, e *engine.Engine, authSvc *AuthService, opts ...connect.HandlerOption) {
	mux.Handle(api.NewProductServiceHandler(NewProductService(e.Products), opts...))
	mux.Handle(api.NewMenuGroupServiceHandler(NewMenuGroupService(e.MenuGroups), opts...))
	mux.Handle(api.NewMenuServiceHandler(NewMenuService(e.Menus), opts...))
	mux.Handle(api.NewTableServiceHandler(NewTableService(e.Tables), opts...))
	mux.Handle(api.NewTableGroupServiceHandler(NewTableGroupService(e.TableGroups), opts...))
	mux.Handle(api.NewOrderServiceHandler(NewOrderService(e.Orders), opts...))
	if authSvc != nil {
		mux.Handle(api.NewAuthServiceHandler(authSvc, opts...))
	}
}
