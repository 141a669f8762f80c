package repository

import (
	"context"

	"github.com/spec-kit/trackswift/internal/domain"
	"github.com/spec-kit/trackswift/internal/persistence"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// OrderRepository encapsulates order persistence. Orders are append-only:
// created alongside their shipment and never updated or deleted.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
	ListByShipment(ctx context.Context, shipmentID int64) ([]domain.Order, error)
}

type orderRepository struct {
	store *persistence.Store
}

// NewOrderRepository instantiates repository.
func NewOrderRepository(store *persistence.Store) OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	res, err := r.store.ExecContext(ctx,
		`INSERT INTO orders (shipment_id, items, quantity, total_cost) VALUES (?, ?, ?, ?)`,
		order.ShipmentID, order.Items, order.Quantity, order.TotalCost,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return util.NewNotFound("shipment", map[string]any{"shipment_id": order.ShipmentID})
		}
		return util.NewUnavailable("order insert failed", err)
	}

	order.ID, err = res.LastInsertId()
	return err
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	const query = `SELECT id, shipment_id, items, quantity, total_cost FROM orders ORDER BY id`
	return r.fetchMany(ctx, query)
}

func (r *orderRepository) ListByShipment(ctx context.Context, shipmentID int64) ([]domain.Order, error) {
	const query = `SELECT id, shipment_id, items, quantity, total_cost FROM orders WHERE shipment_id = ? ORDER BY id`
	return r.fetchMany(ctx, query, shipmentID)
}

func (r *orderRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, util.NewUnavailable("order listing failed", err)
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.ShipmentID,
			&order.Items,
			&order.Quantity,
			&order.TotalCost,
		); err != nil {
			return nil, util.NewUnavailable("order row scan failed", err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, util.NewUnavailable("order listing failed", err)
	}
	return result, nil
}
