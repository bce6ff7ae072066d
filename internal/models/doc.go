// Package models defines the record types of the kitchen POS.
//
// # Records
//
//   - Product: a sellable item with a price
//   - MenuGroup: a label that menus are filed under
//   - Menu: a priced bundle of products (MenuProduct lines)
//   - OrderTable: a dining table and its occupancy
//   - TableGroup: two or more tables combined for shared service
//   - Order: a set of menus ordered for a table (OrderLineItem lines)
//   - Staff: an employee account used for authentication
//
// # Design Principles
//
// 1. Records reference each other by ID strings, never by pointer. Relationships are
// resolved by the engine through the storage layer.
// 2. Records carry no behavior beyond small value checks. Cross-record rules live in
// internal/engine.
// 3. Money is decimal.Decimal; never float64.
package models
