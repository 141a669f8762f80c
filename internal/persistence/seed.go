package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/trackswift/internal/auth"
	"github.com/spec-kit/trackswift/internal/domain"
)

type seedAccount struct {
	username string
	secret   string
	role     domain.Role
}

type seedShipment struct {
	sender      string
	receiver    string
	origin      string
	destination string
	status      domain.ShipmentStatus
	trackingID  string
	createdAt   string
	owner       string
	items       string
	quantity    int
	totalCost   float64
}

var demoAccounts = []seedAccount{
	{"admin", "admin", domain.RoleAdmin},
	{"manager", "manager", domain.RoleManager},
	{"customer1", "cust1", domain.RoleUser},
	{"customer2", "cust2", domain.RoleUser},
	{"shipper", "ship1", domain.RoleUser},
}

var demoShipments = []seedShipment{
	{"John Doe", "Jane Smith", "New York", "Los Angeles", domain.StatusPending, "TRK001", "2024-01-01 10:00:00", "admin", "Laptop, Phone", 2, 1500.0},
	{"Alice Brown", "Bob Wilson", "Chicago", "Miami", domain.StatusInTransit, "TRK002", "2024-01-02 11:00:00", "manager", "Books, Notebook", 5, 200.0},
	{"Customer One", "Receiver A", "Boston", "Seattle", domain.StatusDelivered, "TRK003", "2024-01-03 12:00:00", "customer1", "Clothes", 10, 300.0},
	{"Customer Two", "Receiver B", "Dallas", "Denver", domain.StatusPending, "TRK004", "2024-01-04 13:00:00", "customer2", "Electronics", 1, 800.0},
	{"Shipper X", "Receiver C", "Phoenix", "Portland", domain.StatusInTransit, "TRK005", "2024-01-05 14:00:00", "shipper", "Furniture", 3, 500.0},
	{"Admin Test", "User Test", "Atlanta", "Austin", domain.StatusDelivered, "TRK006", "2024-01-06 15:00:00", "admin", "Test Items", 4, 100.0},
	{"Manager Shipment", "Client D", "San Francisco", "San Diego", domain.StatusPending, "TRK007", "2024-01-07 16:00:00", "manager", "Manager Goods", 6, 400.0},
	{"User Shipment", "Friend E", "Houston", "Honolulu", domain.StatusInTransit, "TRK008", "2024-01-08 17:00:00", "customer1", "User Parcel", 2, 250.0},
}

// SeedIfEmpty inserts the demo accounts and demo shipments (one order each)
// when the respective tables hold no rows. Individual uniqueness conflicts
// are skipped rather than aborting the pass, which makes a re-run after a
// partial seed converge instead of failing. Running twice leaves row counts
// unchanged.
func SeedIfEmpty(ctx context.Context, store *Store, bcryptCost int, logger *zap.Logger) error {
	accountCount, err := tableCount(ctx, store, "accounts")
	if err != nil {
		return err
	}
	if accountCount == 0 {
		if err := seedAccounts(ctx, store, bcryptCost, logger); err != nil {
			return err
		}
	}

	shipmentCount, err := tableCount(ctx, store, "shipments")
	if err != nil {
		return err
	}
	if shipmentCount == 0 {
		if err := seedShipments(ctx, store, logger); err != nil {
			return err
		}
	}

	return nil
}

func seedAccounts(ctx context.Context, store *Store, bcryptCost int, logger *zap.Logger) error {
	for _, acc := range demoAccounts {
		hash, err := auth.HashSecret(acc.secret, bcryptCost)
		if err != nil {
			return fmt.Errorf("hash seed secret for %s: %w", acc.username, err)
		}
		// INSERT OR IGNORE implements the skip-on-conflict seed policy.
		_, err = store.ExecContext(ctx,
			`INSERT OR IGNORE INTO accounts (username, secret_hash, role) VALUES (?, ?, ?)`,
			acc.username, hash, string(acc.role),
		)
		if err != nil {
			return fmt.Errorf("seed account %s: %w", acc.username, err)
		}
	}
	logger.Info("seeded demo accounts", zap.Int("count", len(demoAccounts)))
	return nil
}

func seedShipments(ctx context.Context, store *Store, logger *zap.Logger) error {
	inserted := 0
	for _, sh := range demoShipments {
		res, err := store.ExecContext(ctx,
			`INSERT OR IGNORE INTO shipments (tracking_id, sender_name, receiver_name, origin, destination, status, account_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, (SELECT id FROM accounts WHERE username = ?), ?)`,
			sh.trackingID, sh.sender, sh.receiver, sh.origin, sh.destination, string(sh.status), sh.owner, sh.createdAt,
		)
		if err != nil {
			return fmt.Errorf("seed shipment %s: %w", sh.trackingID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			// Tracking id already present from an earlier partial seed.
			continue
		}
		shipmentID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := store.ExecContext(ctx,
			`INSERT INTO orders (shipment_id, items, quantity, total_cost) VALUES (?, ?, ?, ?)`,
			shipmentID, sh.items, sh.quantity, sh.totalCost,
		); err != nil {
			return fmt.Errorf("seed order for %s: %w", sh.trackingID, err)
		}
		inserted++
	}
	logger.Info("seeded demo shipments", zap.Int("count", inserted))
	return nil
}

func tableCount(ctx context.Context, store *Store, table string) (int, error) {
	var count int
	if err := store.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}
