package middleware

import (
	apimodels "maintenance-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func AdminRole() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation is not available"))
		}
		return ctx.Next()
	}
}
