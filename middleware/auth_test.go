package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"potrack-app/config"
	"potrack-app/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.JWTSecret))
	require.NoError(t, err)
	return signed
}

func newAuthTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", middleware.AuthMiddleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":  c.Locals("userID"),
			"is_admin": c.Locals("isAdmin"),
		})
	})
	return app
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	config.LoadConfig()
	app := newAuthTestApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	config.LoadConfig()
	app := newAuthTestApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	config.LoadConfig()
	app := newAuthTestApp()

	tokenString := signTestToken(t, jwt.MapClaims{
		"user_id":      float64(7),
		"username":     "op1",
		"department":   "Production",
		"is_admin":     false,
		"excel_access": true,
		"session_id":   "session-1",
		"exp":          time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	config.LoadConfig()
	app := newAuthTestApp()

	tokenString := signTestToken(t, jwt.MapClaims{
		"user_id":    float64(7),
		"session_id": "session-1",
		"exp":        time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func guardTestApp(locals map[string]interface{}, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", func(c *fiber.Ctx) error {
		for k, v := range locals {
			c.Locals(k, v)
		}
		return c.Next()
	}, guard, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestAdminOnly(t *testing.T) {
	cases := []struct {
		name    string
		isAdmin bool
		want    int
	}{
		{"admin allowed", true, fiber.StatusOK},
		{"non-admin refused", false, fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := guardTestApp(map[string]interface{}{"isAdmin": tc.isAdmin}, middleware.AdminOnly)
			resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestExportAccess(t *testing.T) {
	cases := []struct {
		name        string
		isAdmin     bool
		excelAccess bool
		want        int
	}{
		{"admin allowed", true, false, fiber.StatusOK},
		{"excel access allowed", false, true, fiber.StatusOK},
		{"neither refused", false, false, fiber.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := guardTestApp(map[string]interface{}{
				"isAdmin":     tc.isAdmin,
				"excelAccess": tc.excelAccess,
			}, middleware.ExportAccess)
			resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
