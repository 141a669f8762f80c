package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/trackswift/internal/config"
	"github.com/spec-kit/trackswift/internal/domain"
	"github.com/spec-kit/trackswift/internal/persistence"
	util "github.com/spec-kit/trackswift/pkg/util"
)

func newTestStore(t *testing.T) *persistence.Store {
	t.Helper()
	store, err := persistence.Open(config.SQLiteConfig{Path: ":memory:", BusyTimeoutMS: 1000}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, persistence.EnsureSchema(context.Background(), store, zap.NewNop()))
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestAccount(t *testing.T, repo AccountRepository, username string, role domain.Role) *domain.Account {
	t.Helper()
	account := &domain.Account{Username: username, SecretHash: "hash-" + username, Role: role}
	require.NoError(t, repo.Create(context.Background(), account))
	return account
}

func TestAccountCreateAndLookup(t *testing.T) {
	store := newTestStore(t)
	repo := NewAccountRepository(store)
	ctx := context.Background()

	account := createTestAccount(t, repo, "alice", domain.RoleUser)
	require.NotZero(t, account.ID)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, account.ID, got.ID)
	require.Equal(t, "hash-alice", got.SecretHash)
	require.Equal(t, domain.RoleUser, got.Role)

	byID, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
}

func TestAccountDuplicateUsernameRejected(t *testing.T) {
	store := newTestStore(t)
	repo := NewAccountRepository(store)
	ctx := context.Background()

	createTestAccount(t, repo, "alice", domain.RoleUser)

	err := repo.Create(ctx, &domain.Account{Username: "alice", SecretHash: "other", Role: domain.RoleAdmin})
	require.Error(t, err)
	require.True(t, util.HasCode(err, util.CodeConflict))

	// The original row is untouched.
	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "hash-alice", got.SecretHash)
}

func TestAccountLookupMiss(t *testing.T) {
	store := newTestStore(t)
	repo := NewAccountRepository(store)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	require.True(t, util.HasCode(err, util.CodeNotFound))
}

func newShipment(owner *domain.Account, trackingID string, status domain.ShipmentStatus) *domain.Shipment {
	return &domain.Shipment{
		TrackingID:  trackingID,
		Sender:      "A",
		Receiver:    "B",
		Origin:      "NYC",
		Destination: "LA",
		Status:      status,
		AccountID:   owner.ID,
	}
}

func TestShipmentRoundTrip(t *testing.T) {
	store := newTestStore(t)
	accounts := NewAccountRepository(store)
	shipments := NewShipmentRepository(store)
	ctx := context.Background()

	alice := createTestAccount(t, accounts, "alice", domain.RoleUser)

	shipment := newShipment(alice, "AB12CD34", domain.StatusPending)
	require.NoError(t, shipments.Create(ctx, shipment))
	require.NotZero(t, shipment.ID)

	got, err := shipments.GetByTrackingID(ctx, "AB12CD34")
	require.NoError(t, err)
	require.Equal(t, "A", got.Sender)
	require.Equal(t, "B", got.Receiver)
	require.Equal(t, "NYC", got.Origin)
	require.Equal(t, "LA", got.Destination)
	require.Equal(t, domain.StatusPending, got.Status)
	require.Equal(t, alice.ID, got.AccountID)
	require.Equal(t, "alice", got.OwnerUsername)
	require.WithinDuration(t, time.Now().UTC(), got.CreatedAt, time.Minute)
}

func TestShipmentTrackingIDCollisionIsConflict(t *testing.T) {
	store := newTestStore(t)
	accounts := NewAccountRepository(store)
	shipments := NewShipmentRepository(store)
	ctx := context.Background()

	alice := createTestAccount(t, accounts, "alice", domain.RoleUser)

	require.NoError(t, shipments.Create(ctx, newShipment(alice, "SAME0000", domain.StatusPending)))

	err := shipments.Create(ctx, newShipment(alice, "SAME0000", domain.StatusDelivered))
	require.True(t, util.HasCode(err, util.CodeConflict))
}

func TestShipmentUpdateStatusIdempotent(t *testing.T) {
	store := newTestStore(t)
	accounts := NewAccountRepository(store)
	shipments := NewShipmentRepository(store)
	ctx := context.Background()

	alice := createTestAccount(t, accounts, "alice", domain.RoleUser)
	require.NoError(t, shipments.Create(ctx, newShipment(alice, "TRK00100", domain.StatusPending)))

	require.NoError(t, shipments.UpdateStatus(ctx, "TRK00100", domain.StatusDelivered))
	require.NoError(t, shipments.UpdateStatus(ctx, "TRK00100", domain.StatusDelivered))

	got, err := shipments.GetByTrackingID(ctx, "TRK00100")
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, got.Status)
}

func TestShipmentUpdateStatusMiss(t *testing.T) {
	store := newTestStore(t)
	shipments := NewShipmentRepository(store)

	err := shipments.UpdateStatus(context.Background(), "NOPE0000", domain.StatusPending)
	require.True(t, util.HasCode(err, util.CodeNotFound))
}

func TestShipmentListFilters(t *testing.T) {
	store := newTestStore(t)
	accounts := NewAccountRepository(store)
	shipments := NewShipmentRepository(store)
	ctx := context.Background()

	alice := createTestAccount(t, accounts, "alice", domain.RoleUser)
	bob := createTestAccount(t, accounts, "bob", domain.RoleUser)

	require.NoError(t, shipments.Create(ctx, newShipment(alice, "AAAA0001", domain.StatusPending)))
	require.NoError(t, shipments.Create(ctx, newShipment(alice, "AAAA0002", domain.StatusDelivered)))
	require.NoError(t, shipments.Create(ctx, newShipment(bob, "BBBB0001", domain.StatusPending)))

	all, err := shipments.List(ctx, ShipmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	mine, err := shipments.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	pending := domain.StatusPending
	pendingOnly, err := shipments.List(ctx, ShipmentFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, pendingOnly, 2)

	alicePending, err := shipments.List(ctx, ShipmentFilter{AccountID: &alice.ID, Status: &pending})
	require.NoError(t, err)
	require.Len(t, alicePending, 1)
	require.Equal(t, "AAAA0001", alicePending[0].TrackingID)
}

func TestShipmentListWithOrdersLeftJoin(t *testing.T) {
	store := newTestStore(t)
	accounts := NewAccountRepository(store)
	shipments := NewShipmentRepository(store)
	orders := NewOrderRepository(store)
	ctx := context.Background()

	alice := createTestAccount(t, accounts, "alice", domain.RoleUser)

	withOrder := newShipment(alice, "WITH0001", domain.StatusPending)
	require.NoError(t, shipments.Create(ctx, withOrder))
	require.NoError(t, orders.Create(ctx, &domain.Order{
		ShipmentID: withOrder.ID, Items: "Laptop, Phone", Quantity: 2, TotalCost: 1500,
	}))

	require.NoError(t, shipments.Create(ctx, newShipment(alice, "BARE0001", domain.StatusPending)))

	lines, err := shipments.ListWithOrders(ctx, nil)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	byTracking := map[string]domain.OrderLine{}
	for _, line := range lines {
		byTracking[line.TrackingID] = line
	}

	full := byTracking["WITH0001"]
	require.NotNil(t, full.OrderID)
	require.Equal(t, "Laptop, Phone", *full.Items)
	require.Equal(t, 2, *full.Quantity)
	require.Equal(t, 1500.0, *full.TotalCost)

	bare := byTracking["BARE0001"]
	require.Nil(t, bare.OrderID)
	require.Nil(t, bare.Items)
}

func TestOrderCreateRequiresExistingShipment(t *testing.T) {
	store := newTestStore(t)
	orders := NewOrderRepository(store)

	err := orders.Create(context.Background(), &domain.Order{
		ShipmentID: 9999, Items: "Books", Quantity: 1, TotalCost: 10,
	})
	require.True(t, util.HasCode(err, util.CodeNotFound))
}

func TestOrderListByShipment(t *testing.T) {
	store := newTestStore(t)
	accounts := NewAccountRepository(store)
	shipments := NewShipmentRepository(store)
	orders := NewOrderRepository(store)
	ctx := context.Background()

	alice := createTestAccount(t, accounts, "alice", domain.RoleUser)
	shipment := newShipment(alice, "ORDR0001", domain.StatusPending)
	require.NoError(t, shipments.Create(ctx, shipment))

	require.NoError(t, orders.Create(ctx, &domain.Order{ShipmentID: shipment.ID, Items: "Books", Quantity: 5, TotalCost: 200}))
	require.NoError(t, orders.Create(ctx, &domain.Order{ShipmentID: shipment.ID, Items: "Pens", Quantity: 10, TotalCost: 15}))

	got, err := orders.ListByShipment(ctx, shipment.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Books", got[0].Items)

	all, err := orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
