package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/trackswift/internal/domain"
	"github.com/spec-kit/trackswift/internal/persistence"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// ShipmentFilter captures listing parameters.
type ShipmentFilter struct {
	AccountID *int64
	Status    *domain.ShipmentStatus
}

// ShipmentRepository encapsulates shipment persistence.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *domain.Shipment) error
	GetByTrackingID(ctx context.Context, trackingID string) (*domain.Shipment, error)
	ListByOwner(ctx context.Context, accountID int64) ([]domain.Shipment, error)
	List(ctx context.Context, filter ShipmentFilter) ([]domain.Shipment, error)
	ListWithOrders(ctx context.Context, status *domain.ShipmentStatus) ([]domain.OrderLine, error)
	UpdateStatus(ctx context.Context, trackingID string, status domain.ShipmentStatus) error
}

type shipmentRepository struct {
	store *persistence.Store
}

// NewShipmentRepository instantiates repository.
func NewShipmentRepository(store *persistence.Store) ShipmentRepository {
	return &shipmentRepository{store: store}
}

const shipmentColumns = `s.id, s.tracking_id, s.sender_name, s.receiver_name, s.origin, s.destination,
       s.status, s.account_id, a.username, s.created_at`

// Create persists a shipment row. The caller supplies the tracking id; a
// collision with an existing id surfaces as a conflict so the service layer
// can regenerate and retry. The insert is a single statement, so a failure
// leaves no partial row behind.
func (r *shipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	if shipment.CreatedAt.IsZero() {
		shipment.CreatedAt = time.Now().UTC()
	}

	res, err := r.store.ExecContext(ctx,
		`INSERT INTO shipments (tracking_id, sender_name, receiver_name, origin, destination, status, account_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		shipment.TrackingID,
		shipment.Sender,
		shipment.Receiver,
		shipment.Origin,
		shipment.Destination,
		string(shipment.Status),
		shipment.AccountID,
		shipment.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return util.NewConflict("tracking id already exists", map[string]any{"tracking_id": shipment.TrackingID})
		}
		if isForeignKeyViolation(err) {
			return util.NewNotFound("owner account", map[string]any{"account_id": shipment.AccountID})
		}
		return util.NewUnavailable("shipment insert failed", err)
	}

	shipment.ID, err = res.LastInsertId()
	return err
}

func (r *shipmentRepository) GetByTrackingID(ctx context.Context, trackingID string) (*domain.Shipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM shipments s JOIN accounts a ON a.id = s.account_id WHERE s.tracking_id = ?`, shipmentColumns)

	var shipment domain.Shipment
	if err := r.store.QueryRowContext(ctx, query, trackingID).Scan(
		&shipment.ID,
		&shipment.TrackingID,
		&shipment.Sender,
		&shipment.Receiver,
		&shipment.Origin,
		&shipment.Destination,
		&shipment.Status,
		&shipment.AccountID,
		&shipment.OwnerUsername,
		&shipment.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.NewNotFound("shipment", map[string]any{"tracking_id": trackingID})
		}
		return nil, util.NewUnavailable("shipment lookup failed", err)
	}
	return &shipment, nil
}

func (r *shipmentRepository) ListByOwner(ctx context.Context, accountID int64) ([]domain.Shipment, error) {
	return r.List(ctx, ShipmentFilter{AccountID: &accountID})
}

func (r *shipmentRepository) List(ctx context.Context, filter ShipmentFilter) ([]domain.Shipment, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		clauses = append(clauses, "s.account_id = ?")
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		clauses = append(clauses, "s.status = ?")
	}

	query := fmt.Sprintf(`SELECT %s FROM shipments s JOIN accounts a ON a.id = s.account_id
		WHERE %s ORDER BY s.created_at DESC`, shipmentColumns, strings.Join(clauses, " AND "))

	rows, err := r.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, util.NewUnavailable("shipment listing failed", err)
	}
	defer rows.Close()
	return scanShipments(rows)
}

// ListWithOrders returns shipments left-joined onto their orders: shipments
// without an order still appear, with nil order fields.
func (r *shipmentRepository) ListWithOrders(ctx context.Context, status *domain.ShipmentStatus) ([]domain.OrderLine, error) {
	query := `SELECT s.tracking_id, s.sender_name, s.receiver_name, s.status,
	                 o.id, o.items, o.quantity, o.total_cost
	          FROM shipments s
	          LEFT JOIN orders o ON o.shipment_id = s.id`
	args := []any{}
	if status != nil {
		query += " WHERE s.status = ?"
		args = append(args, string(*status))
	}
	query += " ORDER BY s.created_at DESC"

	rows, err := r.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, util.NewUnavailable("order listing failed", err)
	}
	defer rows.Close()

	var result []domain.OrderLine
	for rows.Next() {
		var (
			line      domain.OrderLine
			orderID   sql.NullInt64
			items     sql.NullString
			quantity  sql.NullInt64
			totalCost sql.NullFloat64
		)
		if err := rows.Scan(
			&line.TrackingID,
			&line.Sender,
			&line.Receiver,
			&line.Status,
			&orderID,
			&items,
			&quantity,
			&totalCost,
		); err != nil {
			return nil, util.NewUnavailable("order row scan failed", err)
		}
		if orderID.Valid {
			line.OrderID = &orderID.Int64
			line.Items = &items.String
			qty := int(quantity.Int64)
			line.Quantity = &qty
			line.TotalCost = &totalCost.Float64
		}
		result = append(result, line)
	}
	if err := rows.Err(); err != nil {
		return nil, util.NewUnavailable("order listing failed", err)
	}
	return result, nil
}

// UpdateStatus overwrites the status unconditionally; any status may replace
// any other, including the same one, so the operation is idempotent.
func (r *shipmentRepository) UpdateStatus(ctx context.Context, trackingID string, status domain.ShipmentStatus) error {
	res, err := r.store.ExecContext(ctx,
		`UPDATE shipments SET status = ? WHERE tracking_id = ?`,
		string(status), trackingID,
	)
	if err != nil {
		return util.NewUnavailable("status update failed", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.NewNotFound("shipment", map[string]any{"tracking_id": trackingID})
	}
	return nil
}

func scanShipments(rows *sql.Rows) ([]domain.Shipment, error) {
	var result []domain.Shipment
	for rows.Next() {
		var shipment domain.Shipment
		if err := rows.Scan(
			&shipment.ID,
			&shipment.TrackingID,
			&shipment.Sender,
			&shipment.Receiver,
			&shipment.Origin,
			&shipment.Destination,
			&shipment.Status,
			&shipment.AccountID,
			&shipment.OwnerUsername,
			&shipment.CreatedAt,
		); err != nil {
			return nil, util.NewUnavailable("shipment row scan failed", err)
		}
		result = append(result, shipment)
	}
	if err := rows.Err(); err != nil {
		return nil, util.NewUnavailable("shipment listing failed", err)
	}
	return result, nil
}
