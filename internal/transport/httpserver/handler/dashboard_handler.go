package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"site-content-service/internal/app/service"
	"site-content-service/internal/domain"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	content *service.ContentService
	query   *service.QueryService
	logger  *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(content *service.ContentService, query *service.QueryService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		content: content,
		query:   query,
		logger:  logger,
	}
}

// Render handles GET /dashboard
// Renders the content status page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	status := h.content.Status()
	validation := h.content.Validation()

	// Stats are best-effort; the page still renders while loading.
	var stats domain.PackageStats
	var testimonials int
	if _, s, err := h.query.Packages(domain.PackageFilter{}); err == nil {
		stats = s
	}
	if list, err := h.query.Testimonials(domain.TestimonialFilter{}); err == nil {
		testimonials = len(list)
	}

	return c.Render("pages/dashboard", fiber.Map{
		"Title":        "Site Content Dashboard",
		"State":        string(status.State),
		"Error":        status.Err,
		"Version":      status.Version,
		"Warnings":     len(validation.Warnings),
		"Packages":     stats.Total,
		"Testimonials": testimonials,
	}, "layouts/base")
}
