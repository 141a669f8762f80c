package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/trackswift/internal/domain"
	"github.com/spec-kit/trackswift/internal/events"
	"github.com/spec-kit/trackswift/internal/repository"
	"github.com/spec-kit/trackswift/internal/session"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// trackingIDAttempts bounds the regenerate-and-retry loop for tracking id
// collisions before the failure escalates.
const trackingIDAttempts = 5

// ShipmentService coordinates shipment workflows and role gating.
type ShipmentService struct {
	shipments  repository.ShipmentRepository
	orders     repository.OrderRepository
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
}

// ShipmentDependencies bundles repositories for the shipment service.
type ShipmentDependencies struct {
	ShipmentRepo repository.ShipmentRepository
	OrderRepo    repository.OrderRepository
	AccountRepo  repository.AccountRepository
	Dispatcher   events.Dispatcher
}

// ShipmentCreateInput describes shipment creation payload. When Items is
// non-empty an order is created alongside the shipment, mirroring the common
// path where both arrive from one form submission.
type ShipmentCreateInput struct {
	Sender      string
	Receiver    string
	Origin      string
	Destination string
	Status      string
	Items       string
	Quantity    int
	TotalCost   float64
}

// ShipmentListInput describes listing filters.
type ShipmentListInput struct {
	OwnerUsername string
	Status        string
}

// ProfileSummary is the per-user profile view: the account's own shipments
// with derived counts.
type ProfileSummary struct {
	Username     string
	Role         domain.Role
	Shipments    []domain.Shipment
	Total        int
	StatusCounts map[domain.ShipmentStatus]int
}

// NewShipmentService constructs the service.
func NewShipmentService(deps ShipmentDependencies) *ShipmentService {
	return &ShipmentService{
		shipments:  deps.ShipmentRepo,
		orders:     deps.OrderRepo,
		accounts:   deps.AccountRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateShipment persists a shipment owned by the calling session, plus an
// optional inline order. Any authenticated identity may create shipments.
// The tracking id is generated server-side; on a collision the insert is
// rejected by the uniqueness constraint and retried with a fresh id up to
// trackingIDAttempts times, after which the failure escalates as a storage
// error.
func (s *ShipmentService) CreateShipment(ctx context.Context, sess *session.Session, input ShipmentCreateInput) (*domain.Shipment, *domain.Order, error) {
	if err := validateShipmentInput(input); err != nil {
		return nil, nil, err
	}

	status := domain.StatusPending
	if input.Status != "" {
		parsed, ok := domain.ParseShipmentStatus(input.Status)
		if !ok {
			return nil, nil, util.NewValidationError("unknown status", map[string]any{"status": input.Status})
		}
		status = parsed
	}

	if input.Items != "" {
		if err := validateOrderInput(input.Quantity, input.TotalCost); err != nil {
			return nil, nil, err
		}
	}

	shipment := &domain.Shipment{
		Sender:        input.Sender,
		Receiver:      input.Receiver,
		Origin:        input.Origin,
		Destination:   input.Destination,
		Status:        status,
		AccountID:     sess.AccountID,
		OwnerUsername: sess.Username,
	}

	var err error
	for attempt := 0; attempt < trackingIDAttempts; attempt++ {
		shipment.TrackingID = newTrackingID()
		err = s.shipments.Create(ctx, shipment)
		if err == nil {
			break
		}
		if !util.HasCode(err, util.CodeConflict) {
			return nil, nil, err
		}
	}
	if err != nil {
		return nil, nil, util.NewUnavailable("could not allocate a unique tracking id", err)
	}

	var order *domain.Order
	if input.Items != "" {
		order = &domain.Order{
			ShipmentID: shipment.ID,
			Items:      input.Items,
			Quantity:   input.Quantity,
			TotalCost:  input.TotalCost,
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return nil, nil, err
		}
	}

	s.publish(ctx, sess, events.EventShipmentCreated, shipment.TrackingID, events.ShipmentCreatedPayload{
		Sender:      shipment.Sender,
		Receiver:    shipment.Receiver,
		Origin:      shipment.Origin,
		Destination: shipment.Destination,
		Status:      shipment.Status,
	})

	return shipment, order, nil
}

// Track looks a shipment up by tracking id together with its orders. A miss
// is a normal outcome, reported as not-found rather than a fault.
func (s *ShipmentService) Track(ctx context.Context, trackingID string) (*domain.Shipment, []domain.Order, error) {
	trackingID = strings.ToUpper(strings.TrimSpace(trackingID))
	if trackingID == "" {
		return nil, nil, util.NewValidationError("tracking id required", nil)
	}

	shipment, err := s.shipments.GetByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, nil, err
	}
	orders, err := s.orders.ListByShipment(ctx, shipment.ID)
	if err != nil {
		return nil, nil, err
	}
	return shipment, orders, nil
}

// List returns shipments visible to the session: admins and managers see
// every account's shipments (optionally narrowed to one owner), everyone
// else only their own.
func (s *ShipmentService) List(ctx context.Context, sess *session.Session, input ShipmentListInput) ([]domain.Shipment, error) {
	filter := repository.ShipmentFilter{}

	if input.Status != "" {
		status, ok := domain.ParseShipmentStatus(input.Status)
		if !ok {
			return nil, util.NewValidationError("unknown status", map[string]any{"status": input.Status})
		}
		filter.Status = &status
	}

	if sess.Role.CanViewAll() {
		if input.OwnerUsername != "" {
			owner, err := s.accounts.GetByUsername(ctx, input.OwnerUsername)
			if err != nil {
				return nil, err
			}
			filter.AccountID = &owner.ID
		}
	} else {
		accountID := sess.AccountID
		filter.AccountID = &accountID
	}

	return s.shipments.List(ctx, filter)
}

// UpdateStatus overwrites the status of a shipment. Only admins and managers
// may invoke it; the write is unconditional, so repeating it with the same
// status is a no-op.
func (s *ShipmentService) UpdateStatus(ctx context.Context, sess *session.Session, trackingID, newStatus string) (*domain.Shipment, error) {
	if !sess.Role.CanUpdateStatus() {
		return nil, util.NewForbidden("only admins and managers can update status")
	}

	status, ok := domain.ParseShipmentStatus(newStatus)
	if !ok {
		return nil, util.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	trackingID = strings.ToUpper(strings.TrimSpace(trackingID))
	shipment, err := s.shipments.GetByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	if err := s.shipments.UpdateStatus(ctx, trackingID, status); err != nil {
		return nil, err
	}

	oldStatus := shipment.Status
	shipment.Status = status

	s.publish(ctx, sess, events.EventShipmentStatusChanged, trackingID, events.ShipmentStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: status,
	})

	return shipment, nil
}

// Profile assembles the per-user view: own shipments plus derived counts.
func (s *ShipmentService) Profile(ctx context.Context, sess *session.Session) (*ProfileSummary, error) {
	shipments, err := s.shipments.ListByOwner(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}

	counts := map[domain.ShipmentStatus]int{
		domain.StatusPending:   0,
		domain.StatusInTransit: 0,
		domain.StatusDelivered: 0,
	}
	for _, shipment := range shipments {
		counts[shipment.Status]++
	}

	return &ProfileSummary{
		Username:     sess.Username,
		Role:         sess.Role,
		Shipments:    shipments,
		Total:        len(shipments),
		StatusCounts: counts,
	}, nil
}

func (s *ShipmentService) publish(ctx context.Context, sess *session.Session, eventType events.EventType, trackingID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		TrackingID: trackingID,
		Actor: events.Actor{
			AccountID: sess.AccountID,
			Username:  sess.Username,
			Role:      sess.Role,
		},
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

func validateShipmentInput(input ShipmentCreateInput) error {
	missing := []string{}
	for field, value := range map[string]string{
		"sender":      input.Sender,
		"receiver":    input.Receiver,
		"origin":      input.Origin,
		"destination": input.Destination,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return util.NewValidationError("missing required fields", map[string]any{"fields": missing})
	}
	return nil
}

// newTrackingID derives an 8-character uppercase token from a random uuid.
// Collisions are possible over a long run; the caller handles them by
// regenerating.
func newTrackingID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
