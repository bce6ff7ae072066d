package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/lxxjn0/jwp-refactoring/internal/engine"
	"github.com/lxxjn0/jwp-refactoring/internal/middleware"
	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/pkg/api"
)

// OrderService implements api.OrderServiceHandler.
type OrderService struct {
	orders *engine.OrderService
}

var _ api.OrderServiceHandler = (*OrderService)(nil)

func NewOrderService(orders *engine.OrderService) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) CreateOrder(ctx context.Context, req *connect.Request[api.CreateOrderRequest]) (*connect.Response[api.CreateOrderResponse], error) {
	slog.Info("CreateOrder request received",
		"table_id", req.Msg.OrderTableID,
		"lines", len(req.Msg.OrderLineItems),
		"staff_id", middleware.GetStaffID(ctx),
	)

	order, err := s.orders.Create(ctx, &models.Order{
		OrderTableID:   req.Msg.OrderTableID,
		OrderLineItems: orderLineItemsFromAPI(req.Msg.OrderLineItems),
	})
	if err != nil {
		return nil, toConnectError("CreateOrder", err)
	}
	return connect.NewResponse(&api.CreateOrderResponse{Order: orderToAPI(order)}), nil
}

func (s *OrderService) ListOrders(ctx context.Context, req *connect.Request[api.ListOrdersRequest]) (*connect.Response[api.ListOrdersResponse], error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, toConnectError("ListOrders", err)
	}

	out := make([]*api.Order, len(orders))
	for i, o := range orders {
		out[i] = orderToAPI(o)
	}
	return connect.NewResponse(&api.ListOrdersResponse{Orders: out}), nil
}

func (s *OrderService) ChangeOrderStatus(ctx context.Context, req *connect.Request[api.ChangeOrderStatusRequest]) (*connect.Response[api.ChangeOrderStatusResponse], error) {
	slog.Info("ChangeOrderStatus request received",
		"order_id", req.Msg.OrderID,
		"status", req.Msg.OrderStatus,
		"staff_id", middleware.GetStaffID(ctx),
	)

	order, err := s.orders.ChangeStatus(ctx, req.Msg.OrderID, models.OrderStatus(req.Msg.OrderStatus))
	if err != nil {
		return nil, toConnectError("ChangeOrderStatus", err)
	}
	return connect.NewResponse(&api.ChangeOrderStatusResponse{Order: orderToAPI(order)}), nil
}
