package dto

import (
	"time"

	"github.com/spec-kit/trackswift/internal/domain"
)

// ShipmentCreateRequest payload for shipment creation. Items, quantity and
// total cost are optional; when items are present an order is created with
// the shipment.
type ShipmentCreateRequest struct {
	Sender      string  `json:"sender"`
	Receiver    string  `json:"receiver"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Status      string  `json:"status,omitempty"`
	Items       string  `json:"items,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	TotalCost   float64 `json:"total_cost,omitempty"`
}

// StatusUpdateRequest payload for status overwrites.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// ShipmentResponse renders one shipment row.
type ShipmentResponse struct {
	TrackingID  string    `json:"tracking_id"`
	Sender      string    `json:"sender"`
	Receiver    string    `json:"receiver"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Status      string    `json:"status"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewShipmentResponse maps the domain model.
func NewShipmentResponse(s domain.Shipment) ShipmentResponse {
	return ShipmentResponse{
		TrackingID:  s.TrackingID,
		Sender:      s.Sender,
		Receiver:    s.Receiver,
		Origin:      s.Origin,
		Destination: s.Destination,
		Status:      string(s.Status),
		Owner:       s.OwnerUsername,
		CreatedAt:   s.CreatedAt,
	}
}

// NewShipmentResponses maps a slice, keeping an empty (non-nil) slice for
// JSON rendering.
func NewShipmentResponses(shipments []domain.Shipment) []ShipmentResponse {
	result := make([]ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		result = append(result, NewShipmentResponse(s))
	}
	return result
}
