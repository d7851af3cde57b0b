package serverutils

import (
	"errors"

	"farewell-wall-be/internal/pkg/apperror"
	"farewell-wall-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbling out of controllers into
// the response envelope. Store errors keep their detail in the log only;
// the client sees a generic message.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			status := apperror.HTTPStatus(appErr)
			message := appErr.Message
			if appErr.Kind == apperror.KindStore {
				log.Error("http", "storage failure", map[string]interface{}{
					"path":  ctx.Path(),
					"error": appErr.Err.Error(),
				})
				message = "internal server error"
			}
			return ctx.Status(status).JSON(ErrorResponse(status, message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
