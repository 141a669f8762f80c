package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SchemaSQL is the canonical schema, applied idempotently on every start.
// All tables use CREATE TABLE IF NOT EXISTS so repeated invocation is a
// no-op; referential integrity is declared and enforced (foreign_keys=on in
// the connection DSN).
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	secret_hash TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('admin', 'manager', 'user')),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS shipments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tracking_id TEXT NOT NULL UNIQUE,
	sender_name TEXT NOT NULL,
	receiver_name TEXT NOT NULL,
	origin TEXT NOT NULL,
	destination TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('Pending', 'In Transit', 'Delivered')),
	account_id INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (account_id) REFERENCES accounts(id)
);

CREATE TABLE IF NOT EXISTS orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	shipment_id INTEGER NOT NULL,
	items TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	total_cost REAL NOT NULL,
	FOREIGN KEY (shipment_id) REFERENCES shipments(id)
);

CREATE INDEX IF NOT EXISTS idx_shipments_account ON shipments(account_id);
CREATE INDEX IF NOT EXISTS idx_orders_shipment ON orders(shipment_id);
`

// EnsureSchema creates the persistent tables if absent. Safe to call on
// every process start; failures here are fatal to startup.
func EnsureSchema(ctx context.Context, store *Store, logger *zap.Logger) error {
	if _, err := store.ExecContext(ctx, SchemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("schema ensured")
	return nil
}
