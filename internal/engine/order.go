package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/lxxjn0/jwp-refactoring/internal/apperr"
	"github.com/lxxjn0/jwp-refactoring/internal/models"
	"github.com/lxxjn0/jwp-refactoring/internal/storage"
)

// OrderService places orders on tables and moves them through their lifecycle.
type OrderService struct {
	store  storage.Store
	now    func() time.Time
	strict bool
}

// Create places an order on an occupied table. Every line must name an existing
// menu with a positive quantity. The order starts COOKING.
func (s *OrderService) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if len(order.OrderLineItems) == 0 {
		return nil, apperr.New(apperr.KindEmptyOrderLines, "order must have at least one line")
	}
	for _, item := range order.OrderLineItems {
		if item.Quantity <= 0 {
			return nil, apperr.New(apperr.KindInvalidQuantity, "order line quantity must be positive",
				"menu_id", item.MenuID, "quantity", item.Quantity)
		}
	}

	o := models.Order{
		OrderTableID:   order.OrderTableID,
		OrderStatus:    models.OrderStatusCooking,
		OrderedTime:    s.now(),
		OrderLineItems: make([]models.OrderLineItem, len(order.OrderLineItems)),
	}
	for i, item := range order.OrderLineItems {
		o.OrderLineItems[i] = models.OrderLineItem{MenuID: item.MenuID, Quantity: item.Quantity}
	}

	err := s.store.WithTransaction(ctx, func(tx storage.Repository) error {
		for _, item := range o.OrderLineItems {
			if _, err := lookup(ctx, tx.GetMenu, "menu", item.MenuID); err != nil {
				return err
			}
		}

		table, err := lookup(ctx, tx.GetOrderTable, "order table", o.OrderTableID)
		if err != nil {
			return err
		}
		if table.Empty {
			return apperr.New(apperr.KindTableIsEmpty, "cannot order at an empty table", "table_id", table.ID)
		}

		return tx.CreateOrder(ctx, &o)
	})
	if err := settle(err); err != nil {
		return nil, err
	}

	slog.Debug("Order created", "order_id", o.ID, "table_id", o.OrderTableID, "lines", len(o.OrderLineItems))
	return &o, nil
}

// List returns every order with its line items.
func (s *OrderService) List(ctx context.Context) ([]*models.Order, error) {
	return s.store.ListOrders(ctx)
}

// ChangeStatus moves an order to status. A COMPLETION order can never change
// again, not even to COMPLETION. Otherwise any recognized status is accepted,
// unless strict sequencing is enabled, in which case only the next step is.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	next, parseErr := models.ParseOrderStatus(string(status))

	var order *models.Order
	err := s.store.WithTransaction(ctx, func(tx storage.Repository) error {
		o, err := lookup(ctx, tx.GetOrder, "order", orderID)
		if err != nil {
			return err
		}
		if o.OrderStatus.Terminal() {
			return apperr.New(apperr.KindOrderAlreadyCompleted, "order is already completed", "order_id", o.ID)
		}
		if parseErr != nil {
			return apperr.Wrap(parseErr, apperr.KindInvalidStatusTransition, "unknown order status",
				"order_id", o.ID, "status", string(status))
		}
		if !o.OrderStatus.CanTransitionTo(next, s.strict) {
			return apperr.New(apperr.KindInvalidStatusTransition, "order status must advance one step at a time",
				"order_id", o.ID, "from", o.OrderStatus, "to", next)
		}

		if err := tx.UpdateOrderStatus(ctx, o.ID, next); err != nil {
			return err
		}
		o.OrderStatus = next
		order = o
		return nil
	})
	if err := settle(err); err != nil {
		return nil, err
	}

	slog.Debug("Order status changed", "order_id", order.ID, "status", order.OrderStatus)
	return order, nil
}
