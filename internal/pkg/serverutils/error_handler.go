package serverutils

import (
	"ai-datavault-be/internal/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps the error taxonomy onto HTTP statuses:
// ValidationError -> 400, StorageError -> 502, anything else -> 500.
func StatusFor(err error) int {
	if fe, ok := err.(*fiber.Error); ok {
		return fe.Code
	}
	if apperrors.IsValidation(err) {
		return fiber.StatusBadRequest
	}
	if apperrors.IsStorage(err) {
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		code := StatusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
