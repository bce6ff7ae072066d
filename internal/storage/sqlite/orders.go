package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lxxjn0/jwp-refactoring/internal/models"
)

// CreateOrder persists a new order and its line items.
func (s *queries) CreateOrder(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.OrderedTime.IsZero() {
		o.OrderedTime = time.Now()
	}

	return s.atomic(ctx, func(q querier) error {
		_, err := q.ExecContext(ctx,
			"INSERT INTO orders (id, order_table_id, order_status, ordered_time) VALUES (?, ?, ?, ?)",
			o.ID, o.OrderTableID, string(o.OrderStatus), o.OrderedTime.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		for i := range o.OrderLineItems {
			item := &o.OrderLineItems[i]
			item.OrderID = o.ID
			res, err := q.ExecContext(ctx,
				"INSERT INTO order_line_items (order_id, menu_id, quantity) VALUES (?, ?, ?)",
				item.OrderID, item.MenuID, item.Quantity,
			)
			if err != nil {
				return fmt.Errorf("failed to insert order line item: %w", err)
			}
			if item.Seq, err = res.LastInsertId(); err != nil {
				return fmt.Errorf("failed to read order line item seq: %w", err)
			}
		}
		return nil
	})
}

func scanOrder(row rowScanner) (*models.Order, error) {
	o := &models.Order{}
	var status string
	var ordered int64
	if err := row.Scan(&o.ID, &o.OrderTableID, &status, &ordered); err != nil {
		return nil, err
	}
	o.OrderStatus = models.OrderStatus(status)
	o.OrderedTime = time.UnixMilli(ordered)
	return o, nil
}

// GetOrder retrieves an order by ID, including its line items.
func (s *queries) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	o, err := scanOrder(s.q.QueryRowContext(ctx,
		"SELECT id, order_table_id, order_status, ordered_time FROM orders WHERE id = ?", id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if o.OrderLineItems, err = s.orderLineItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// ListOrders returns every order with its line items.
func (s *queries) ListOrders(ctx context.Context) ([]*models.Order, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT id, order_table_id, order_status, ordered_time FROM orders ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	var orders []*models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	for _, o := range orders {
		if o.OrderLineItems, err = s.orderLineItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *queries) orderLineItems(ctx context.Context, orderID string) ([]models.OrderLineItem, error) {
	rows, err := s.q.QueryContext(ctx,
		"SELECT seq, order_id, menu_id, quantity FROM order_line_items WHERE order_id = ? ORDER BY seq",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get order line items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderLineItem
	for rows.Next() {
		var item models.OrderLineItem
		if err := rows.Scan(&item.Seq, &item.OrderID, &item.MenuID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan order line item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order line items: %w", err)
	}
	return items, nil
}

// UpdateOrderStatus overwrites the status of an order.
func (s *queries) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	res, err := s.q.ExecContext(ctx, "UPDATE orders SET order_status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound("order", id)
	}
	return nil
}

// HasOrderInStatus reports whether an order on any of tableIDs is in one of statuses.
func (s *queries) HasOrderInStatus(ctx context.Context, tableIDs []string, statuses []models.OrderStatus) (bool, error) {
	if len(tableIDs) == 0 || len(statuses) == 0 {
		return false, nil
	}

	args := make([]any, 0, len(tableIDs)+len(statuses))
	for _, id := range tableIDs {
		args = append(args, id)
	}
	for _, st := range statuses {
		args = append(args, string(st))
	}

	query := `SELECT EXISTS (
		SELECT 1 FROM orders
		WHERE order_table_id IN (` + placeholders(len(tableIDs)) + `)
		AND order_status IN (` + placeholders(len(statuses)) + `))`

	var exists bool
	if err := s.q.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check orders in status: %w", err)
	}
	return exists, nil
}
