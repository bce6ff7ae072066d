// Package service implements the Connect handlers of the kitchen POS. Handlers
// translate wire messages into engine calls and engine failures into Connect errors.
package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/lxxjn0/jwp-refactoring/internal/engine"
	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/pkg/api"
)

// ProductService implements api.ProductServiceHandler.
type ProductService struct {
	products *engine.ProductService
}

var _ api.ProductServiceHandler = (*ProductService)(nil)

func NewProductService(products *engine.ProductService) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *connect.Request[api.CreateProductRequest]) (*connect.Response[api.CreateProductResponse], error) {
	slog.Info("CreateProduct request received", "name", req.Msg.Name)

	product, err := s.products.Create(ctx, &models.Product{Name: req.Msg.Name, Price: req.Msg.Price})
	if err != nil {
		return nil, toConnectError("CreateProduct", err)
	}
	return connect.NewResponse(&api.CreateProductResponse{Product: productToAPI(product)}), nil
}

func (s *ProductService) ListProducts(ctx context.Context, req *connect.Request[api.ListProductsRequest]) (*connect.Response[api.ListProductsResponse], error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, toConnectError("ListProducts", err)
	}

	out := make([]*api.Product, len(products))
	for i, p := range products {
		out[i] = productToAPI(p)
	}
	return connect.NewResponse(&api.ListProductsResponse{Products: out}), nil
}

// MenuGroupService implements api.MenuGroupServiceHandler.
type MenuGroupService struct {
	groups *engine.MenuGroupService
}

var _ api.MenuGroupServiceHandler = (*MenuGroupService)(nil)

func NewMenuGroupService(groups *engine.MenuGroupService) *MenuGroupService {
	return &MenuGroupService{groups: groups}
}

func (s *MenuGroupService) CreateMenuGroup(ctx context.Context, req *connect.Request[api.CreateMenuGroupRequest]) (*connect.Response[api.CreateMenuGroupResponse], error) {
	slog.Info("CreateMenuGroup request received", "name", req.Msg.Name)

	group, err := s.groups.Create(ctx, &models.MenuGroup{Name: req.Msg.Name})
	if err != nil {
		return nil, toConnectError("CreateMenuGroup", err)
	}
	return connect.NewResponse(&api.CreateMenuGroupResponse{MenuGroup: menuGroupToAPI(group)}), nil
}

func (s *MenuGroupService) ListMenuGroups(ctx context.Context, req *connect.Request[api.ListMenuGroupsRequest]) (*connect.Response[api.ListMenuGroupsResponse], error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, toConnectError("ListMenuGroups", err)
	}

	out := make([]*api.MenuGroup, len(groups))
	for i, g := range groups {
		out[i] = menuGroupToAPI(g)
	}
	return connect.NewResponse(&api.ListMenuGroupsResponse{MenuGroups: out}), nil
}

// MenuService implements api.MenuServiceHandler.
type MenuService struct {
	menus *engine.MenuService
}

var _ api.MenuServiceHandler = (*MenuService)(nil)

func NewMenuService(menus *engine.MenuService) *MenuService {
	return &MenuService{menus: menus}
}

func (s *MenuService) CreateMenu(ctx context.Context, req *connect.Request[api.CreateMenuRequest]) (*connect.Response[api.CreateMenuResponse], error) {
	slog.Info("CreateMenu request received",
		"name", req.Msg.Name,
		"menu_group_id", req.Msg.MenuGroupID,
		"lines", len(req.Msg.MenuProducts),
	)

	menu, err := s.menus.Create(ctx, &models.Menu{
		Name:         req.Msg.Name,
		Price:        req.Msg.Price,
		MenuGroupID:  req.Msg.MenuGroupID,
		MenuProducts: menuProductsFromAPI(req.Msg.MenuProducts),
	})
	if err != nil {
		return nil, toConnectError("CreateMenu", err)
	}
	return connect.NewResponse(&api.CreateMenuResponse{Menu: menuToAPI(menu)}), nil
}

func (s *MenuService) ListMenus(ctx context.Context, req *connect.Request[api.ListMenusRequest]) (*connect.Response[api.ListMenusResponse], error) {
	menus, err := s.menus.List(ctx)
	if err != nil {
		return nil, toConnectError("ListMenus", err)
	}

	out := make([]*api.Menu, len(menus))
	for i, m := range menus {
		out[i] = menuToAPI(m)
	}
	return connect.NewResponse(&api.ListMenusResponse{Menus: out}), nil
}
