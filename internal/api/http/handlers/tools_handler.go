package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/drakehanguyen/devpockit/internal/api/dto"
	"github.com/drakehanguyen/devpockit/internal/service"
	apperrors "github.com/drakehanguyen/devpockit/pkg/util"
)

// ToolsHandler exposes the stateless developer utilities.
type ToolsHandler struct {
	tools *service.ToolsService
}

// NewToolsHandler constructs handler.
func NewToolsHandler(toolsService *service.ToolsService) *ToolsHandler {
	return &ToolsHandler{tools: toolsService}
}

// FormatJSON handles POST /tools/json/format.
func (h *ToolsHandler) FormatJSON(c *fiber.Ctx) error {
	var req dto.JSONFormatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("validation failed", dto.ValidationDetails(err))
	}

	result, err := h.tools.FormatJSON(req.Data, req.Minify)
	if err != nil {
		return c.JSON(dto.Fail("JSON formatting failed", err.Error()))
	}
	return c.JSON(dto.OK("JSON formatted successfully", result))
}

// ConvertYAML handles POST /tools/yaml/convert.
func (h *ToolsHandler) ConvertYAML(c *fiber.Ctx) error {
	var req dto.YAMLConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("validation failed", dto.ValidationDetails(err))
	}

	result, err := h.tools.ConvertYAML(req.Data, req.FromFormat, req.ToFormat)
	if err != nil {
		return c.JSON(dto.Fail("Conversion failed", err.Error()))
	}
	return c.JSON(dto.OK("Conversion completed successfully", result))
}

// GenerateUUID handles POST /tools/uuid/generate.
func (h *ToolsHandler) GenerateUUID(c *fiber.Ctx) error {
	var req dto.UUIDGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("validation failed", dto.ValidationDetails(err))
	}

	result, err := h.tools.GenerateUUIDs(req.Version, req.Count, req.Namespace)
	if err != nil {
		return c.JSON(dto.Fail("UUID generation failed", err.Error()))
	}
	return c.JSON(dto.OK("UUIDs generated successfully", result))
}

// Health handles GET /tools/health.
func (h *ToolsHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.OK("Tools service is healthy", fiber.Map{
		"status": "operational",
	}))
}
