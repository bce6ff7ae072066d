package sqlite

import "database/sql"

// schema sets up the database. It runs on startup to ensure tables exist.
// Prices are stored as TEXT decimals so no precision is lost.
// IMPORTANT: table_groups must be created BEFORE order_tables due to the foreign key.
const schema = `
CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS menu_groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS menus (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price TEXT NOT NULL,
    menu_group_id TEXT NOT NULL,
    FOREIGN KEY (menu_group_id) REFERENCES menu_groups(id)
);

CREATE TABLE IF NOT EXISTS menu_products (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    menu_id TEXT NOT NULL,
    product_id TEXT NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity > 0),
    FOREIGN KEY (menu_id) REFERENCES menus(id) ON DELETE CASCADE,
    FOREIGN KEY (product_id) REFERENCES products(id)
);

CREATE TABLE IF NOT EXISTS table_groups (
    id TEXT PRIMARY KEY,
    created_date INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS order_tables (
    id TEXT PRIMARY KEY,
    table_group_id TEXT,
    number_of_guests INTEGER NOT NULL DEFAULT 0,
    empty INTEGER NOT NULL DEFAULT 1,
    version INTEGER NOT NULL DEFAULT 1,
    FOREIGN KEY (table_group_id) REFERENCES table_groups(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS orders (
    id TEXT PRIMARY KEY,
    order_table_id TEXT NOT NULL,
    order_status TEXT NOT NULL CHECK (order_status IN ('COOKING', 'MEAL', 'COMPLETION')),
    ordered_time INTEGER NOT NULL,
    FOREIGN KEY (order_table_id) REFERENCES order_tables(id)
);

CREATE TABLE IF NOT EXISTS order_line_items (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id TEXT NOT NULL,
    menu_id TEXT NOT NULL,
    quantity INTEGER NOT NULL CHECK (quantity > 0),
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
    FOREIGN KEY (menu_id) REFERENCES menus(id)
);

CREATE TABLE IF NOT EXISTS staff (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_menu_products_menu_id ON menu_products(menu_id);
CREATE INDEX IF NOT EXISTS idx_order_tables_table_group_id ON order_tables(table_group_id);
CREATE INDEX IF NOT EXISTS idx_orders_order_table_id ON orders(order_table_id);
CREATE INDEX IF NOT EXISTS idx_order_line_items_order_id ON order_line_items(order_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
