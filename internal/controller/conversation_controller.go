package controller

import (
	"ai-datavault-be/internal/pkg/serverutils"
	"ai-datavault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	ShowAttachment(ctx *fiber.Ctx) error
}

type conversationController struct {
	searchService service.ISearchService
}

func NewConversationController(searchService service.ISearchService) IConversationController {
	return &conversationController{
		searchService: searchService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversations/v1")
	h.Get(":uuid", c.Show)
	h.Get(":uuid/attachments/:msg/:att", c.ShowAttachment)
}

func (c *conversationController) Show(ctx *fiber.Ctx) error {
	conv, err := c.searchService.GetConversation(ctx.Context(), ctx.Params("uuid"))
	if err != nil {
		return err
	}
	if conv == nil {
		return fiber.ErrNotFound
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show conversation", conv))
}

func (c *conversationController) ShowAttachment(ctx *fiber.Ctx) error {
	msgIndex, err := ctx.ParamsInt("msg")
	if err != nil {
		return fiber.ErrBadRequest
	}
	attIndex, err := ctx.ParamsInt("att")
	if err != nil {
		return fiber.ErrBadRequest
	}

	att, err := c.searchService.GetAttachment(ctx.Context(), ctx.Params("uuid"), msgIndex, attIndex)
	if err != nil {
		return err
	}
	if att == nil {
		return fiber.ErrNotFound
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show attachment", att))
}
