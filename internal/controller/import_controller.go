package controller

import (
	"io"

	"ai-datavault-be/internal/pkg/apperrors"
	"ai-datavault-be/internal/pkg/serverutils"
	"ai-datavault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IImportController interface {
	RegisterRoutes(r fiber.Router)
	UploadArchive(ctx *fiber.Ctx) error
	ShowJob(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type importController struct {
	importService  service.IImportService
	maxArchiveSize int // Megabytes
}

func NewImportController(importService service.IImportService, maxArchiveSize int) IImportController {
	return &importController{
		importService:  importService,
		maxArchiveSize: maxArchiveSize,
	}
}

func (c *importController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/import/v1")
	h.Post("archive", c.UploadArchive)
	h.Get("jobs/:id", c.ShowJob)
	h.Get("history", c.History)
}

func (c *importController) UploadArchive(ctx *fiber.Ctx) error {
	accountName := ctx.FormValue("account_name")
	if accountName == "" {
		return apperrors.NewValidationError("account_name", "required")
	}

	fileHeader, err := ctx.FormFile("archive")
	if err != nil {
		return apperrors.NewValidationError("archive", "zip file is required")
	}
	if fileHeader.Size > int64(c.maxArchiveSize)*1024*1024 {
		return apperrors.NewValidationError("archive", "exceeds the size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	// Default is async; ?async=false runs the batch inline.
	if ctx.Query("async", "true") == "false" {
		result, err := c.importService.ProcessArchive(ctx.Context(), data, accountName)
		if err != nil {
			if result == nil {
				return err
			}
			// A mid-batch failure still reports what landed before it.
			code := serverutils.StatusFor(err)
			return ctx.Status(code).JSON(serverutils.ErrorResponseWithData(code, err.Error(), result))
		}
		return ctx.JSON(serverutils.SuccessResponse("Success import archive", result))
	}

	job, err := c.importService.SubmitArchive(ctx.Context(), data, accountName)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Import queued", job))
}

func (c *importController) ShowJob(ctx *fiber.Ctx) error {
	job, ok := c.importService.GetJob(ctx.Params("id"))
	if !ok {
		return fiber.ErrNotFound
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show import job", job))
}

func (c *importController) History(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	res, err := c.importService.GetHistory(ctx.Context(), limit, ctx.Query("account_name"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show import history", res))
}
