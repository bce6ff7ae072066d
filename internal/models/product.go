package models

import "github.com/shopspring/decimal"

// Product is a single sellable item.
type Product struct {
	// ID is the unique identifier for the product (UUID format).
	ID string `json:"id"`

	// Name is the display name (e.g., "Garlic Chicken").
	Name string `json:"name"`

	// Price is the unit price. Invalid (null) prices are rejected on creation.
	Price decimal.NullDecimal `json:"price"`
}

// MenuGroup is a label menus are filed under (e.g., "Chicken Set").
type MenuGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
