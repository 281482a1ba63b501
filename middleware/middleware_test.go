package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"maintenance-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// withClaims stands in for the jwt middleware, which stores the parsed
// token under the "user" local.
func withClaims(userID string, role models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals("user", &jwt.Token{Claims: jwt.MapClaims{
			"sub":  userID,
			"role": string(role),
		}})
		return ctx.Next()
	}
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(16))
	ok := func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) }
	app.Post("/api/v1/requests/list", ok)
	app.Post("/api/v1/requests/req-1/files/request_photo", ok)

	t.Run(`oversized json body is refused`, func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/requests/list", strings.NewReader(strings.Repeat("x", 64)))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	})

	t.Run(`body within the limit passes`, func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/requests/list", strings.NewReader("{}"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`file uploads are exempt`, func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/requests/req-1/files/request_photo",
			strings.NewReader(strings.Repeat("x", 64)))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestAdminRole(t *testing.T) {
	newApp := func(role models.UserRole) *fiber.App {
		app := fiber.New()
		app.Use(withClaims("user-1", role))
		app.Use(AdminRole())
		app.Put("/sup-1/approve", func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) })
		return app
	}

	t.Run(`admin passes`, func(t *testing.T) {
		resp, err := newApp(models.AdminRole).Test(httptest.NewRequest("PUT", "/sup-1/approve", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`technician is refused`, func(t *testing.T) {
		resp, err := newApp(models.TechnicianRole).Test(httptest.NewRequest("PUT", "/sup-1/approve", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run(`missing claims are refused`, func(t *testing.T) {
		app := fiber.New()
		app.Use(AdminRole())
		app.Put("/sup-1/approve", func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusOK) })
		resp, err := app.Test(httptest.NewRequest("PUT", "/sup-1/approve", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
