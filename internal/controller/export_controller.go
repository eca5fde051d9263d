package controller

import (
	"ai-datavault-be/internal/dto"
	"ai-datavault-be/internal/pkg/serverutils"
	"ai-datavault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	ExportConversation(ctx *fiber.Ctx) error
	ExportMessages(ctx *fiber.Ctx) error
}

type exportController struct {
	exportService service.IExportService
}

func NewExportController(exportService service.IExportService) IExportController {
	return &exportController{
		exportService: exportService,
	}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/export/v1")
	h.Get("conversation/:uuid", c.ExportConversation)
	h.Post("messages", c.ExportMessages)
}

func (c *exportController) ExportConversation(ctx *fiber.Ctx) error {
	conv, err := c.exportService.ExportConversation(ctx.Context(), ctx.Params("uuid"))
	if err != nil {
		return err
	}
	if conv == nil {
		return fiber.ErrNotFound
	}
	return ctx.JSON(serverutils.SuccessResponse("Success export conversation", conv))
}

func (c *exportController) ExportMessages(ctx *fiber.Ctx) error {
	var req dto.ExportMessagesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	data, contentType, err := c.exportService.ExportMessages(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if data == nil {
		return fiber.ErrNotFound
	}

	ctx.Set(fiber.HeaderContentType, contentType)
	return ctx.Send(data)
}
