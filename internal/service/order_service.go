package service

import (
	"context"
	"strings"

	"github.com/spec-kit/trackswift/internal/domain"
	"github.com/spec-kit/trackswift/internal/repository"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// OrderService coordinates order creation and listings.
type OrderService struct {
	orders    repository.OrderRepository
	shipments repository.ShipmentRepository
}

// NewOrderService constructs the service.
func NewOrderService(orders repository.OrderRepository, shipments repository.ShipmentRepository) *OrderService {
	return &OrderService{orders: orders, shipments: shipments}
}

// CreateOrder attaches an order to an existing shipment. Quantity must be a
// positive integer and cost non-negative; the storage layer enforces that
// the shipment exists.
func (s *OrderService) CreateOrder(ctx context.Context, shipmentID int64, items string, quantity int, totalCost float64) (*domain.Order, error) {
	if strings.TrimSpace(items) == "" {
		return nil, util.NewValidationError("items required", nil)
	}
	if err := validateOrderInput(quantity, totalCost); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ShipmentID: shipmentID,
		Items:      items,
		Quantity:   quantity,
		TotalCost:  totalCost,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListOrders returns every order joined onto its shipment, optionally
// filtered by shipment status. Shipments without orders appear with empty
// order fields.
func (s *OrderService) ListOrders(ctx context.Context, statusFilter string) ([]domain.OrderLine, error) {
	var status *domain.ShipmentStatus
	if statusFilter != "" {
		parsed, ok := domain.ParseShipmentStatus(statusFilter)
		if !ok {
			return nil, util.NewValidationError("unknown status", map[string]any{"status": statusFilter})
		}
		status = &parsed
	}
	return s.shipments.ListWithOrders(ctx, status)
}

// ListByTracking returns the orders of one shipment.
func (s *OrderService) ListByTracking(ctx context.Context, trackingID string) ([]domain.Order, error) {
	shipment, err := s.shipments.GetByTrackingID(ctx, strings.ToUpper(strings.TrimSpace(trackingID)))
	if err != nil {
		return nil, err
	}
	return s.orders.ListByShipment(ctx, shipment.ID)
}

func validateOrderInput(quantity int, totalCost float64) error {
	if quantity <= 0 {
		return util.NewValidationError("quantity must be a positive integer", map[string]any{"quantity": quantity})
	}
	if totalCost < 0 {
		return util.NewValidationError("total cost must be non-negative", map[string]any{"total_cost": totalCost})
	}
	return nil
}
