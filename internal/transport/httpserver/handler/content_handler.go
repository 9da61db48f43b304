// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"site-content-service/internal/app/service"
	"site-content-service/internal/transport/httpserver/dto"
	"site-content-service/internal/validator"
)

// ContentHandler handles content read requests.
type ContentHandler struct {
	content   *service.ContentService
	query     *service.QueryService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(
	content *service.ContentService,
	query *service.QueryService,
	v *validator.Validator,
	logger *zap.Logger,
) *ContentHandler {
	return &ContentHandler{
		content:   content,
		query:     query,
		validator: v,
		logger:    logger,
	}
}

// GetContent handles GET /api/v1/content
func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	snapshot, ok := h.content.Snapshot()
	if !ok {
		return h.notReady(c)
	}

	return c.JSON(dto.FromSnapshot(snapshot))
}

// GetSection handles GET /api/v1/content/sections/:section
func (h *ContentHandler) GetSection(c *fiber.Ctx) error {
	name := c.Params("section")

	view, err := h.query.Section(name)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSection) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "unknown section: " + name,
				Code:  "UNKNOWN_SECTION",
			})
		}

		return h.notReady(c)
	}

	return c.JSON(dto.FromSectionView(view))
}

// GetPackages handles GET /api/v1/content/packages
func (h *ContentHandler) GetPackages(c *fiber.Ctx) error {
	var req dto.PackagesRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	packages, stats, err := h.query.Packages(req.ToFilter())
	if err != nil {
		return h.notReady(c)
	}

	return c.JSON(dto.PackagesResponse{
		Packages: packages,
		Stats:    stats,
	})
}

// GetTestimonials handles GET /api/v1/content/testimonials
func (h *ContentHandler) GetTestimonials(c *fiber.Ctx) error {
	var req dto.TestimonialsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	testimonials, err := h.query.Testimonials(req.ToFilter())
	if err != nil {
		return h.notReady(c)
	}

	return c.JSON(dto.TestimonialsResponse{
		Testimonials: testimonials,
		Count:        len(testimonials),
	})
}

// Search handles GET /api/v1/content/search
func (h *ContentHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	matches, err := h.query.Search(req.ToParams())
	if err != nil {
		return h.notReady(c)
	}

	return c.JSON(dto.SearchResponse{
		Query:   req.Query,
		Matches: matches,
		Count:   len(matches),
	})
}

// notReady reports the accessor's loading/error state. Presentation is
// expected to render a placeholder or fallback from this.
func (h *ContentHandler) notReady(c *fiber.Ctx) error {
	status := h.content.Status()

	code := "CONTENT_NOT_READY"
	message := "content is not ready"
	if status.State == service.StateError {
		code = "CONTENT_ERROR"
		message = status.Err
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Error:   message,
		Code:    code,
		Details: dto.FromStatus(status, h.content.Validation()),
	})
}
