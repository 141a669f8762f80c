package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trackswift/internal/api/dto"
	"github.com/spec-kit/trackswift/internal/service"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// OrdersHandler exposes order creation and the joined order listing.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Create handles POST /orders.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	order, err := h.orders.CreateOrder(c.UserContext(), req.ShipmentID, req.Items, req.Quantity, req.TotalCost)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"order": dto.NewOrderResponse(*order)}})
}

// List handles GET /orders with an optional shipment-status filter.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	lines, err := h.orders.ListOrders(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"orders": dto.NewOrderLineResponses(lines)}})
}
