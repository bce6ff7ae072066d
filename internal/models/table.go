package models

import "time"

// OrderTable is a dining table.
type OrderTable struct {
	// ID is the unique identifier for the table (UUID format).
	ID string `json:"id"`

	// TableGroupID references the group this table belongs to.
	// Empty when the table is not grouped. A grouped table's occupancy can only
	// change through ungrouping.
	TableGroupID string `json:"tableGroupId,omitempty"`

	// NumberOfGuests is the number of seated guests. Only meaningful while occupied.
	NumberOfGuests int `json:"numberOfGuests"`

	// Empty is the occupancy flag; false means the table is in service.
	Empty bool `json:"empty"`

	// Version is incremented on every update and used for optimistic locking.
	Version int64 `json:"version"`
}

// Grouped reports whether the table belongs to a table group.
func (t *OrderTable) Grouped() bool {
	return t.TableGroupID != ""
}

// TableGroup is a set of two or more tables combined for shared service.
type TableGroup struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// CreatedDate is when the tables were grouped.
	CreatedDate time.Time `json:"createdDate"`

	// OrderTables are the member tables. Populated on reads; the membership itself
	// is stored on each OrderTable.TableGroupID.
	OrderTables []OrderTable `json:"orderTables"`
}

// TableIDs returns the IDs of the member tables.
func (g *TableGroup) TableIDs() []string {
	ids := make([]string, len(g.OrderTables))
	for i, t := range g.OrderTables {
		ids[i] = t.ID
	}
	return ids
}
