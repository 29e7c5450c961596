package middleware

import (
	"strings"

	"potrack-app/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware(ctx *fiber.Ctx) error {
	// Ambil header Authorization
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Missing Authorization header",
		})
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid Authorization header format",
		})
	}

	token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: Invalid signing method")
		}
		return []byte(config.JWTSecret), nil
	})

	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid token",
			"error":   err.Error(),
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid token",
		})
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid user ID",
		})
	}

	sessionID, ok := claims["session_id"].(string)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid sessionID",
		})
	}

	username, _ := claims["username"].(string)
	department, _ := claims["department"].(string)
	isAdmin, _ := claims["is_admin"].(bool)
	excelAccess, _ := claims["excel_access"].(bool)

	// Simpan identitas user ke context; handler tidak membaca session global
	ctx.Locals("userID", userID)
	ctx.Locals("sessionID", sessionID)
	ctx.Locals("username", username)
	ctx.Locals("department", department)
	ctx.Locals("isAdmin", isAdmin)
	ctx.Locals("excelAccess", excelAccess)
	ctx.Locals("userData", claims)

	return ctx.Next()
}

// AdminOnly menolak request non-admin sebelum handler menyentuh database.
func AdminOnly(ctx *fiber.Ctx) error {
	isAdmin, ok := ctx.Locals("isAdmin").(bool)
	if !ok || !isAdmin {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Access denied. Admin privileges required.",
		})
	}
	return ctx.Next()
}

// ExportAccess mengizinkan user dengan excel_access atau admin.
func ExportAccess(ctx *fiber.Ctx) error {
	isAdmin, _ := ctx.Locals("isAdmin").(bool)
	excelAccess, _ := ctx.Locals("excelAccess").(bool)
	if !isAdmin && !excelAccess {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Access denied. Excel export permission required.",
		})
	}
	return ctx.Next()
}
