package controllers

import (
	"errors"
	"time"

	"potrack-app/config"
	"potrack-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(DB *gorm.DB) *AuthController {
	return &AuthController{DB: DB}
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
		})
	}

	if input.Username == "" || input.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields",
		})
	}

	var mUser models.User
	result := c.DB.Where("username = ? AND is_active = ?", input.Username, true).First(&mUser)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid username or password",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": result.Error.Error(),
		})
	}

	if bcrypt.CompareHashAndPassword([]byte(mUser.Password), []byte(input.Password)) != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid username or password",
		})
	}

	sessionID := uuid.New().String()
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":      float64(mUser.ID),
		"username":     mUser.Username,
		"name":         mUser.Name,
		"department":   mUser.Department,
		"is_admin":     mUser.IsAdmin,
		"excel_access": mUser.ExcelAccess,
		"session_id":   sessionID,
		"iat":          now.Unix(),
		"exp":          now.Add(time.Duration(config.JWTExpiration) * time.Second).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to sign token",
			"error":   err.Error(),
		})
	}

	ctx.Cookie(config.GetTokenCookie(tokenString))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": fiber.Map{
			"token": tokenString,
			"user": fiber.Map{
				"id":           mUser.ID,
				"username":     mUser.Username,
				"name":         mUser.Name,
				"department":   mUser.Department,
				"is_admin":     mUser.IsAdmin,
				"excel_access": mUser.ExcelAccess,
			},
		},
	})
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	// Stateless JWT: cukup hapus cookie di sisi client
	ctx.Cookie(config.GetTokenCookie(""))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

func (c *AuthController) Profile(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(float64)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid user ID",
		})
	}

	var user models.User
	if err := c.DB.First(&user, uint(userID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}
