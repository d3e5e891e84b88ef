package registry

import (
	"registry-ingest/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the observability API.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the registry routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:uid", h.HandleGetRun)
	group.Get("/companies/:number", h.HandleGetCompany)
	group.Get("/summary", h.HandleSummary)
}

// HandleListRuns returns the most recent ingestion runs.
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit := c.QueryInt("limit", 20)
	runs, err := h.service.RecentRuns(c.Context(), limit)
	if err != nil {
		l.Error("failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"runs": runs})
}

// HandleGetRun returns a single run by its UID.
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	run, err := h.service.RunByUID(c.Context(), c.Params("uid"))
	if err != nil {
		l.Error("failed to get run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if run == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "run not found"})
	}
	return c.JSON(run)
}

// HandleGetCompany returns the persisted row for a registration number.
func (h *Handler) HandleGetCompany(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	company, err := h.service.CompanyByRegistration(c.Context(), c.Params("number"))
	if err != nil {
		l.Error("failed to get company", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if company == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "company not found"})
	}
	return c.JSON(company)
}

// HandleSummary returns the persisted company count and the latest run.
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	count, err := h.service.CompanyCount(c.Context())
	if err != nil {
		l.Error("failed to count companies", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	runs, err := h.service.RecentRuns(c.Context(), 1)
	if err != nil {
		l.Error("failed to load latest run", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	summary := fiber.Map{"companies": count}
	if len(runs) > 0 {
		summary["last_run"] = runs[0]
	}
	return c.JSON(summary)
}
