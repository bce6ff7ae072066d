package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusCooking    OrderStatus = "COOKING"
	OrderStatusMeal       OrderStatus = "MEAL"
	OrderStatusCompletion OrderStatus = "COMPLETION"
)

// NonTerminalStatuses are the statuses of orders that are still being served.
var NonTerminalStatuses = []OrderStatus{OrderStatusCooking, OrderStatusMeal}

// ParseOrderStatus converts a wire value to an OrderStatus. Matching is case-insensitive.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}

// Valid reports whether s is one of the recognized statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCooking, OrderStatusMeal, OrderStatusCompletion:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompletion
}

// Next returns the status that follows s in strict sequence, or "" if s is terminal.
func (s OrderStatus) Next() OrderStatus {
	switch s {
	case OrderStatusCooking:
		return OrderStatusMeal
	case OrderStatusMeal:
		return OrderStatusCompletion
	}
	return ""
}

// CanTransitionTo reports whether an order in status s may be moved to next.
//
// Any recognized status is reachable from a non-terminal one, including moving
// backwards (MEAL -> COOKING) or skipping MEAL. With strict set, only the single step
// returned by Next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus, strict bool) bool {
	if s.Terminal() || !next.Valid() {
		return false
	}
	if strict {
		return next == s.Next()
	}
	return true
}

// Order is a set of menus ordered for one table.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string `json:"id"`

	// OrderTableID references the table the order was placed on.
	OrderTableID string `json:"orderTableId"`

	// OrderStatus is the current lifecycle state. New orders start COOKING.
	OrderStatus OrderStatus `json:"orderStatus"`

	// OrderedTime is when the order was created.
	OrderedTime time.Time `json:"orderedTime"`

	// OrderLineItems are the ordered menu lines.
	OrderLineItems []OrderLineItem `json:"orderLineItems"`
}

// OrderLineItem is one line of an order: a menu and how many of it.
type OrderLineItem struct {
	// Seq is the storage-assigned line number, unique per order.
	Seq int64 `json:"seq"`

	OrderID string `json:"orderId"`
	MenuID  string `json:"menuId"`

	// Quantity must be positive.
	Quantity int64 `json:"quantity"`
}
