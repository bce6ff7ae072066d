package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema mirrors the SQLite layout. Prices are NUMERIC and cross the driver as
// text so decimal values never pass through float64.
const schema = `
CREATE TABLE IF NOT EXISTS products (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price NUMERIC NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
);

CREATE TABLE IF NOT EXISTS menu_groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
);

CREATE TABLE IF NOT EXISTS menus (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    price NUMERIC NOT NULL,
    menu_group_id TEXT NOT NULL REFERENCES menu_groups(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
);

CREATE TABLE IF NOT EXISTS menu_products (
    seq BIGSERIAL PRIMARY KEY,
    menu_id TEXT NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
    product_id TEXT NOT NULL REFERENCES products(id),
    quantity BIGINT NOT NULL CHECK (quantity > 0)
);

CREATE TABLE IF NOT EXISTS table_groups (
    id TEXT PRIMARY KEY,
    created_date TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS order_tables (
    id TEXT PRIMARY KEY,
    table_group_id TEXT REFERENCES table_groups(id) ON DELETE SET NULL,
    number_of_guests INTEGER NOT NULL DEFAULT 0,
    empty BOOLEAN NOT NULL DEFAULT TRUE,
    version BIGINT NOT NULL DEFAULT 1,
    created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
);

CREATE TABLE IF NOT EXISTS orders (
    id TEXT PRIMARY KEY,
    order_table_id TEXT NOT NULL REFERENCES order_tables(id),
    order_status TEXT NOT NULL CHECK (order_status IN ('COOKING', 'MEAL', 'COMPLETION')),
    ordered_time TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS order_line_items (
    seq BIGSERIAL PRIMARY KEY,
    order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    menu_id TEXT NOT NULL REFERENCES menus(id),
    quantity BIGINT NOT NULL CHECK (quantity > 0)
);

CREATE TABLE IF NOT EXISTS staff (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_menu_products_menu_id ON menu_products(menu_id);
CREATE INDEX IF NOT EXISTS idx_order_tables_table_group_id ON order_tables(table_group_id);
CREATE INDEX IF NOT EXISTS idx_orders_order_table_id ON orders(order_table_id);
CREATE INDEX IF NOT EXISTS idx_order_line_items_order_id ON order_line_items(order_id);
`

func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
