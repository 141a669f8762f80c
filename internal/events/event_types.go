package events

import (
	"time"

	"github.com/spec-kit/trackswift/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventShipmentCreated       EventType = "shipment_created"
	EventShipmentStatusChanged EventType = "shipment_status_changed"
)

// Actor identifies the session that triggered the event.
type Actor struct {
	AccountID int64       `json:"account_id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	TrackingID string      `json:"tracking_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// ShipmentCreatedPayload payload.
type ShipmentCreatedPayload struct {
	Sender      string                `json:"sender"`
	Receiver    string                `json:"receiver"`
	Origin      string                `json:"origin"`
	Destination string                `json:"destination"`
	Status      domain.ShipmentStatus `json:"status"`
}

// ShipmentStatusChangedPayload payload.
type ShipmentStatusChangedPayload struct {
	OldStatus domain.ShipmentStatus `json:"old_status"`
	NewStatus domain.ShipmentStatus `json:"new_status"`
}
