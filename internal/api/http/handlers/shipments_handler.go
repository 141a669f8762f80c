package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trackswift/internal/api/dto"
	"github.com/spec-kit/trackswift/internal/auth"
	"github.com/spec-kit/trackswift/internal/service"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// ShipmentsHandler exposes shipment creation, tracking, listing, status
// updates and the per-user profile view.
type ShipmentsHandler struct {
	shipments *service.ShipmentService
	orders    *service.OrderService
}

// NewShipmentsHandler constructs handler.
func NewShipmentsHandler(shipments *service.ShipmentService, orders *service.OrderService) *ShipmentsHandler {
	return &ShipmentsHandler{shipments: shipments, orders: orders}
}

// Create handles POST /shipments.
func (h *ShipmentsHandler) Create(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	var req dto.ShipmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	shipment, order, err := h.shipments.CreateShipment(c.UserContext(), sess, service.ShipmentCreateInput{
		Sender:      req.Sender,
		Receiver:    req.Receiver,
		Origin:      req.Origin,
		Destination: req.Destination,
		Status:      req.Status,
		Items:       req.Items,
		Quantity:    req.Quantity,
		TotalCost:   req.TotalCost,
	})
	if err != nil {
		return err
	}

	data := fiber.Map{"shipment": dto.NewShipmentResponse(*shipment)}
	if order != nil {
		data["order"] = dto.NewOrderResponse(*order)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": data})
}

// List handles GET /shipments with optional status and owner filters.
func (h *ShipmentsHandler) List(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	shipments, err := h.shipments.List(c.UserContext(), sess, service.ShipmentListInput{
		OwnerUsername: c.Query("owner"),
		Status:        c.Query("status"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"shipments": dto.NewShipmentResponses(shipments)}})
}

// Get handles GET /shipments/:trackingID.
func (h *ShipmentsHandler) Get(c *fiber.Ctx) error {
	shipment, orders, err := h.shipments.Track(c.UserContext(), c.Params("trackingID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"shipment": dto.NewShipmentResponse(*shipment),
		"orders":   dto.NewOrderResponses(orders),
	}})
}

// UpdateStatus handles PATCH /shipments/:trackingID/status.
func (h *ShipmentsHandler) UpdateStatus(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	shipment, err := h.shipments.UpdateStatus(c.UserContext(), sess, c.Params("trackingID"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"shipment": dto.NewShipmentResponse(*shipment)}})
}

// ListOrders handles GET /shipments/:trackingID/orders.
func (h *ShipmentsHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListByTracking(c.UserContext(), c.Params("trackingID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"orders": dto.NewOrderResponses(orders)}})
}

// Profile handles GET /me.
func (h *ShipmentsHandler) Profile(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	profile, err := h.shipments.Profile(c.UserContext(), sess)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"username":      profile.Username,
		"role":          profile.Role,
		"shipments":     dto.NewShipmentResponses(profile.Shipments),
		"total":         profile.Total,
		"status_counts": profile.StatusCounts,
	}})
}
