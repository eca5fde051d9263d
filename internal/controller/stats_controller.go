package controller

import (
	"ai-datavault-be/internal/pkg/serverutils"
	"ai-datavault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStatsController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Accounts(ctx *fiber.Ctx) error
}

type statsController struct {
	statsService service.IStatsService
}

func NewStatsController(statsService service.IStatsService) IStatsController {
	return &statsController{
		statsService: statsService,
	}
}

func (c *statsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/stats/v1")
	h.Get("", c.Show)
	h.Get("accounts", c.Accounts)
}

func (c *statsController) Show(ctx *fiber.Ctx) error {
	res, err := c.statsService.GetStats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show stats", res))
}

func (c *statsController) Accounts(ctx *fiber.Ctx) error {
	res, err := c.statsService.GetAccounts(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show accounts", res))
}
