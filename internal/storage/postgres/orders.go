package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
)

const orderColumns = "id, order_table_id, order_status, ordered_time"

func (s *queries) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.OrderedTime.IsZero() {
		o.OrderedTime = time.Now()
	}

	return s.atomic(ctx, func(q querier) error {
		_, err := q.Exec(ctx,
			"INSERT INTO orders ("+orderColumns+") VALUES ($1, $2, $3, $4)",
			o.ID, o.OrderTableID, string(o.OrderStatus), o.OrderedTime,
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", mapError(err))
		}

		for i := range o.OrderLineItems {
			item := &o.OrderLineItems[i]
			item.OrderID = o.ID
			err := q.QueryRow(ctx,
				"INSERT INTO order_line_items (order_id, menu_id, quantity) VALUES ($1, $2, $3) RETURNING seq",
				item.OrderID, item.MenuID, item.Quantity,
			).Scan(&item.Seq)
			if err != nil {
				return fmt.Errorf("failed to insert order line item: %w", mapError(err))
			}
		}
		return nil
	})
}

func scanOrder(row pgx.Row) (*models.Order, error) {
	o := &models.Order{}
	var status string
	if err := row.Scan(&o.ID, &o.OrderTableID, &status, &o.OrderedTime); err != nil {
		return nil, err
	}
	o.OrderStatus = models.OrderStatus(status)
	return o, nil
}

func (s *queries) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := scanOrder(s.q.QueryRow(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", mapError(err))
	}
	if o.OrderLineItems, err = s.orderLineItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *queries) ListOrders(ctx context.Context) ([]*models.Order, error) {
	rows, err := s.q.Query(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY ordered_time, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", mapError(err))
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan orders: %w", mapError(err))
	}

	for _, o := range orders {
		if o.OrderLineItems, err = s.orderLineItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *queries) orderLineItems(ctx context.Context, orderID string) ([]models.OrderLineItem, error) {
	rows, err := s.q.Query(ctx,
		"SELECT seq, order_id, menu_id, quantity FROM order_line_items WHERE order_id = $1 ORDER BY seq",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get order line items: %w", mapError(err))
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OrderLineItem, error) {
		var item models.OrderLineItem
		return item, row.Scan(&item.Seq, &item.OrderID, &item.MenuID, &item.Quantity)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan order line items: %w", mapError(err))
	}
	return items, nil
}

func (s *queries) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	tag, err := s.q.Exec(ctx, "UPDATE orders SET order_status = $1 WHERE id = $2", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return notFound("order", id)
	}
	return nil
}

func (s *queries) HasOrderInStatus(ctx context.Context, tableIDs []string, statuses []models.OrderStatus) (bool, error) {
	if len(tableIDs) == 0 || len(statuses) == 0 {
		return false, nil
	}

	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}

	var exists bool
	err := s.q.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE order_table_id = ANY($1) AND order_status = ANY($2))`,
		tableIDs, names,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check orders in status: %w", mapError(err))
	}
	return exists, nil
}
