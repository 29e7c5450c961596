package controllers

import (
	"errors"

	"potrack-app/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(DB *gorm.DB) *UserController {
	return &UserController{DB: DB}
}

func (c *UserController) CreateUser(ctx *fiber.Ctx) error {
	var userInput struct {
		Username    string `json:"username" validate:"required,min=3"`
		Name        string `json:"name"`
		Department  string `json:"department"`
		Password    string `json:"password" validate:"required,min=6"`
		IsAdmin     bool   `json:"is_admin"`
		ExcelAccess bool   `json:"excel_access"`
	}

	if err := ctx.BodyParser(&userInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(userInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.User
	if err := c.DB.Where("username = ?", userInput.Username).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Username already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userInput.Password), bcrypt.DefaultCost)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash password"})
	}

	user := models.User{
		Username:    userInput.Username,
		Name:        userInput.Name,
		Department:  userInput.Department,
		Password:    string(hashedPassword),
		IsAdmin:     userInput.IsAdmin,
		ExcelAccess: userInput.ExcelAccess,
		IsActive:    true,
	}

	if err := c.DB.Create(&user).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User created successfully",
	})
}

func (c *UserController) GetAllUsers(ctx *fiber.Ctx) error {
	var users []models.User
	if err := c.DB.Find(&users).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    users,
		"total":   len(users),
		"success": true,
	})
}

func (c *UserController) GetUserByID(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var user models.User
	if err := c.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    user,
		"success": true,
	})
}

func (c *UserController) UpdateUser(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var user models.User
	if err := c.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var userInput struct {
		Username    string `json:"username" validate:"required,min=3"`
		Name        string `json:"name"`
		Department  string `json:"department"`
		Password    string `json:"password"` // kosong = tidak diganti
		IsAdmin     bool   `json:"is_admin"`
		ExcelAccess bool   `json:"excel_access"`
		IsActive    bool   `json:"is_active"`
	}

	if err := ctx.BodyParser(&userInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(userInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.User
	if err := c.DB.Where("username = ?", userInput.Username).First(&existing).Error; err == nil && existing.ID != user.ID {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"message": "Username already exists",
		})
	}

	user.Username = userInput.Username
	user.Name = userInput.Name
	user.Department = userInput.Department
	user.IsAdmin = userInput.IsAdmin
	user.ExcelAccess = userInput.ExcelAccess
	user.IsActive = userInput.IsActive

	if userInput.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userInput.Password), bcrypt.DefaultCost)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to hash password"})
		}
		user.Password = string(hashedPassword)
	}

	if err := c.DB.Save(&user).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
	})
}

func (c *UserController) DeleteUser(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var user models.User
	if err := c.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	currentUserID, _ := ctx.Locals("userID").(float64)
	if uint(currentUserID) == user.ID {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Cannot delete your own account",
		})
	}

	if err := c.DB.Unscoped().Delete(&user).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}
