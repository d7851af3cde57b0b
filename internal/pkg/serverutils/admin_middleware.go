package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// AdminAuthMiddleware guards the admin routes with the configured
// Authenticator. Expects "Authorization: Bearer <token>".
func AdminAuthMiddleware(auth Authenticator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}

		if err := auth.ValidateToken(authHeader[7:]); err != nil {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}

		return ctx.Next()
	}
}
