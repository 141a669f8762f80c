package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trackswift/internal/service"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// DashboardHandler exposes the reporting aggregates.
type DashboardHandler struct {
	reports *service.ReportService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(reports *service.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// Dashboard handles GET /dashboard with optional from/to/bucket queries.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	bucket, ok := service.ParseBucket(c.Query("bucket"))
	if !ok {
		return util.NewValidationError("bucket must be daily, weekly or monthly", map[string]any{"bucket": c.Query("bucket")})
	}

	rng, err := service.ParseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return err
	}

	aggregates, err := h.reports.Dashboard(c.UserContext(), rng, bucket)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": aggregates})
}
