package service

import (
	"context"

	"github.com/spec-kit/trackswift/internal/domain"
	"github.com/spec-kit/trackswift/internal/repository"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// Ensure mocks implement the repository interfaces.
var (
	_ repository.AccountRepository  = (*mockAccountRepository)(nil)
	_ repository.ShipmentRepository = (*mockShipmentRepository)(nil)
	_ repository.OrderRepository    = (*mockOrderRepository)(nil)
)

// mockAccountRepository implements repository.AccountRepository for testing.
type mockAccountRepository struct {
	accounts map[string]*domain.Account
	nextID   int64
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{accounts: make(map[string]*domain.Account)}
}

func (m *mockAccountRepository) Create(_ context.Context, account *domain.Account) error {
	if _, exists := m.accounts[account.Username]; exists {
		return util.NewConflict("username already taken", map[string]any{"username": account.Username})
	}
	m.nextID++
	account.ID = m.nextID
	copied := *account
	m.accounts[account.Username] = &copied
	return nil
}

func (m *mockAccountRepository) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	account, ok := m.accounts[username]
	if !ok {
		return nil, util.NewNotFound("account", nil)
	}
	copied := *account
	return &copied, nil
}

func (m *mockAccountRepository) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	for _, account := range m.accounts {
		if account.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, util.NewNotFound("account", nil)
}

// mockShipmentRepository implements repository.ShipmentRepository for testing.
type mockShipmentRepository struct {
	shipments map[string]*domain.Shipment
	nextID    int64

	// conflictsRemaining forces Create to report a tracking-id conflict for
	// the first N attempts.
	conflictsRemaining int
	attemptedIDs       []string
}

func newMockShipmentRepository() *mockShipmentRepository {
	return &mockShipmentRepository{shipments: make(map[string]*domain.Shipment)}
}

func (m *mockShipmentRepository) Create(_ context.Context, shipment *domain.Shipment) error {
	m.attemptedIDs = append(m.attemptedIDs, shipment.TrackingID)
	if m.conflictsRemaining > 0 {
		m.conflictsRemaining--
		return util.NewConflict("tracking id already exists", nil)
	}
	if _, exists := m.shipments[shipment.TrackingID]; exists {
		return util.NewConflict("tracking id already exists", nil)
	}
	m.nextID++
	shipment.ID = m.nextID
	copied := *shipment
	m.shipments[shipment.TrackingID] = &copied
	return nil
}

func (m *mockShipmentRepository) GetByTrackingID(_ context.Context, trackingID string) (*domain.Shipment, error) {
	shipment, ok := m.shipments[trackingID]
	if !ok {
		return nil, util.NewNotFound("shipment", nil)
	}
	copied := *shipment
	return &copied, nil
}

func (m *mockShipmentRepository) ListByOwner(ctx context.Context, accountID int64) ([]domain.Shipment, error) {
	return m.List(ctx, repository.ShipmentFilter{AccountID: &accountID})
}

func (m *mockShipmentRepository) List(_ context.Context, filter repository.ShipmentFilter) ([]domain.Shipment, error) {
	var result []domain.Shipment
	for _, shipment := range m.shipments {
		if filter.AccountID != nil && shipment.AccountID != *filter.AccountID {
			continue
		}
		if filter.Status != nil && shipment.Status != *filter.Status {
			continue
		}
		result = append(result, *shipment)
	}
	return result, nil
}

func (m *mockShipmentRepository) ListWithOrders(_ context.Context, status *domain.ShipmentStatus) ([]domain.OrderLine, error) {
	var result []domain.OrderLine
	for _, shipment := range m.shipments {
		if status != nil && shipment.Status != *status {
			continue
		}
		result = append(result, domain.OrderLine{
			TrackingID: shipment.TrackingID,
			Sender:     shipment.Sender,
			Receiver:   shipment.Receiver,
			Status:     shipment.Status,
		})
	}
	return result, nil
}

func (m *mockShipmentRepository) UpdateStatus(_ context.Context, trackingID string, status domain.ShipmentStatus) error {
	shipment, ok := m.shipments[trackingID]
	if !ok {
		return util.NewNotFound("shipment", nil)
	}
	shipment.Status = status
	return nil
}

// mockOrderRepository implements repository.OrderRepository for testing.
type mockOrderRepository struct {
	orders    []*domain.Order
	nextID    int64
	createErr error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{}
}

func (m *mockOrderRepository) Create(_ context.Context, order *domain.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	order.ID = m.nextID
	copied := *order
	m.orders = append(m.orders, &copied)
	return nil
}

func (m *mockOrderRepository) List(_ context.Context) ([]domain.Order, error) {
	result := make([]domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		result = append(result, *order)
	}
	return result, nil
}

func (m *mockOrderRepository) ListByShipment(_ context.Context, shipmentID int64) ([]domain.Order, error) {
	var result []domain.Order
	for _, order := range m.orders {
		if order.ShipmentID == shipmentID {
			result = append(result, *order)
		}
	}
	return result, nil
}
