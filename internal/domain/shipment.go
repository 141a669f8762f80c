package domain

import "time"

// ShipmentStatus enumerates shipment lifecycle states. Transitions are
// unconstrained: any status may be overwritten with any other.
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "Pending"
	StatusInTransit ShipmentStatus = "In Transit"
	StatusDelivered ShipmentStatus = "Delivered"
)

// ParseShipmentStatus validates a status string.
func ParseShipmentStatus(s string) (ShipmentStatus, bool) {
	switch ShipmentStatus(s) {
	case StatusPending, StatusInTransit, StatusDelivered:
		return ShipmentStatus(s), true
	}
	return "", false
}

// Shipment is the aggregate for a tracked consignment. The tracking id is
// server-generated, globally unique and immutable once persisted.
type Shipment struct {
	ID            int64
	TrackingID    string
	Sender        string
	Receiver      string
	Origin        string
	Destination   string
	Status        ShipmentStatus
	AccountID     int64
	OwnerUsername string
	CreatedAt     time.Time
}
