package dto

import "github.com/spec-kit/trackswift/internal/domain"

// OrderCreateRequest payload for attaching an order to a shipment.
type OrderCreateRequest struct {
	ShipmentID int64   `json:"shipment_id"`
	Items      string  `json:"items"`
	Quantity   int     `json:"quantity"`
	TotalCost  float64 `json:"total_cost"`
}

// OrderResponse renders one order row.
type OrderResponse struct {
	ID         int64   `json:"id"`
	ShipmentID int64   `json:"shipment_id"`
	Items      string  `json:"items"`
	Quantity   int     `json:"quantity"`
	TotalCost  float64 `json:"total_cost"`
}

// NewOrderResponse maps the domain model.
func NewOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID,
		ShipmentID: o.ShipmentID,
		Items:      o.Items,
		Quantity:   o.Quantity,
		TotalCost:  o.TotalCost,
	}
}

// NewOrderResponses maps a slice.
func NewOrderResponses(orders []domain.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, NewOrderResponse(o))
	}
	return result
}

// OrderLineResponse renders an order joined onto its shipment; order fields
// stay null for shipments without orders.
type OrderLineResponse struct {
	TrackingID string   `json:"tracking_id"`
	Sender     string   `json:"sender"`
	Receiver   string   `json:"receiver"`
	Status     string   `json:"status"`
	OrderID    *int64   `json:"order_id"`
	Items      *string  `json:"items"`
	Quantity   *int     `json:"quantity"`
	TotalCost  *float64 `json:"total_cost"`
}

// NewOrderLineResponses maps joined rows.
func NewOrderLineResponses(lines []domain.OrderLine) []OrderLineResponse {
	result := make([]OrderLineResponse, 0, len(lines))
	for _, line := range lines {
		result = append(result, OrderLineResponse{
			TrackingID: line.TrackingID,
			Sender:     line.Sender,
			Receiver:   line.Receiver,
			Status:     string(line.Status),
			OrderID:    line.OrderID,
			Items:      line.Items,
			Quantity:   line.Quantity,
			TotalCost:  line.TotalCost,
		})
	}
	return result
}
