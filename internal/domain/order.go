package domain

// Order holds the goods manifest for a shipment. Items may encode several
// entries as a comma-separated list; orders are never updated or deleted.
type Order struct {
	ID         int64
	ShipmentID int64
	Items      string
	Quantity   int
	TotalCost  float64
}

// OrderLine is an order joined onto its shipment, as rendered by the order
// listing. Shipments without an order still produce a line with nil order
// fields (left-join semantics).
type OrderLine struct {
	TrackingID string
	Sender     string
	Receiver   string
	Status     ShipmentStatus
	OrderID    *int64
	Items      *string
	Quantity   *int
	TotalCost  *float64
}
