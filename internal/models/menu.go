package models

import "github.com/shopspring/decimal"

// Menu is a priced bundle of products.
//
// A menu's price may not exceed the sum of its lines (quantity x product price) as
// evaluated when the menu is created. Later product price changes do not revalidate it.
type Menu struct {
	// ID is the unique identifier for the menu (UUID format).
	ID string `json:"id"`

	// Name is the display name of the menu.
	Name string `json:"name"`

	// Price is the selling price of the whole bundle.
	Price decimal.NullDecimal `json:"price"`

	// MenuGroupID references the MenuGroup this menu is filed under.
	MenuGroupID string `json:"menuGroupId"`

	// MenuProducts are the ordered product lines of the menu.
	MenuProducts []MenuProduct `json:"menuProducts"`
}

// MenuProduct is one line of a menu: a product and how many of it.
type MenuProduct struct {
	// Seq is the storage-assigned line number, unique per menu.
	Seq int64 `json:"seq"`

	MenuID    string `json:"menuId"`
	ProductID string `json:"productId"`

	// Quantity must be positive.
	Quantity int64 `json:"quantity"`
}
