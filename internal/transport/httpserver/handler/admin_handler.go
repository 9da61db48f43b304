package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"site-content-service/internal/app/service"
	"site-content-service/internal/transport/httpserver/dto"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	content *service.ContentService
	logger  *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(content *service.ContentService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		content: content,
		logger:  logger,
	}
}

// Refresh handles POST /api/v1/admin/refresh
// Cancels any pending retry and reloads the bundle, bypassing the cache.
func (h *AdminHandler) Refresh(c *fiber.Ctx) error {
	h.logger.Info("manual refresh triggered")

	if err := h.content.Refresh(c.Context()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error:   err.Error(),
			Code:    "REFRESH_FAILED",
			Details: dto.FromStatus(h.content.Status(), h.content.Validation()),
		})
	}

	return c.JSON(dto.FromStatus(h.content.Status(), h.content.Validation()))
}

// Retry handles POST /api/v1/admin/retry
// Re-attempts a failed load without resetting the backoff counter.
func (h *AdminHandler) Retry(c *fiber.Ctx) error {
	h.logger.Info("manual retry triggered")

	if err := h.content.Retry(c.Context()); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error:   err.Error(),
			Code:    "RETRY_FAILED",
			Details: dto.FromStatus(h.content.Status(), h.content.Validation()),
		})
	}

	return c.JSON(dto.FromStatus(h.content.Status(), h.content.Validation()))
}

// Status handles GET /api/v1/admin/status
func (h *AdminHandler) Status(c *fiber.Ctx) error {
	return c.JSON(dto.FromStatus(h.content.Status(), h.content.Validation()))
}

// Findings handles GET /api/v1/admin/findings
// Returns the full validation findings for author awareness.
func (h *AdminHandler) Findings(c *fiber.Ctx) error {
	return c.JSON(h.content.Validation())
}
