package serverutils

import (
	"errors"

	"creative-critique-be/internal/dto"
	"creative-critique-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain error types returned by downstream
// handlers to status codes. Anything unrecognized is logged with detail and
// answered with a generic 500 so provider and database internals never leak
// to the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var quotaErr *dto.QuotaExceededError
		if errors.As(err, &quotaErr) {
			return ctx.Status(fiber.StatusForbidden).JSON(dto.QuotaExceededResponse{
				Success:      false,
				Code:         fiber.StatusForbidden,
				Message:      quotaErr.Error(),
				Used:         quotaErr.Used,
				Limit:        quotaErr.Limit,
				NeedsUpgrade: true,
			})
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, validationErr.Message))
		}

		var unsupportedErr *dto.UnsupportedFileTypeError
		if errors.As(err, &unsupportedErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, unsupportedErr.Error()))
		}

		var notFoundErr *dto.NotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, notFoundErr.Error()))
		}

		var forbiddenErr *dto.ForbiddenError
		if errors.As(err, &forbiddenErr) {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(403, forbiddenErr.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":   ctx.Path(),
			"method": ctx.Method(),
			"error":  err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(
			ErrorResponse(500, "Something went wrong, please try again"))
	}
}
