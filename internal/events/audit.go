package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditLog subscribes a logging handler to every shipment event,
// producing an audit trail of who created or re-statused which shipment.
func RegisterAuditLog(dispatcher Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event Event) error {
		logger.Info("shipment event",
			zap.String("event", string(event.Type)),
			zap.String("tracking_id", event.TrackingID),
			zap.String("actor", event.Actor.Username),
			zap.String("role", string(event.Actor.Role)),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	dispatcher.Subscribe(EventShipmentCreated, handler)
	dispatcher.Subscribe(EventShipmentStatusChanged, handler)
}
