package middleware

import (
	authutils "maintenance-backend/lib/utils/auth-utils"
	"maintenance-backend/models"

	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	sub, ok := claims["sub"].(string)
	if !ok {
		return ""
	}
	return sub
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	role, ok := claims["role"].(string)
	if !ok {
		return ""
	}
	return models.UserRole(role)
}
