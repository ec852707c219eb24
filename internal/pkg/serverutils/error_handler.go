package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-coursechat-be/pkg/apperrors"
)

// ErrorHandlerMiddleware maps domain errors bubbling out of controllers to
// HTTP status codes so services never deal with fiber directly.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(statusFor(err)).JSON(ErrorResponse(err.Error()))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, apperrors.ErrIngestion):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrEmbeddingModelMismatch):
		return fiber.StatusConflict
	case errors.Is(err, apperrors.ErrLockTimeout):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, apperrors.ErrIndexUnavailable):
		return fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrGeneration):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
