package controllers

import (
	"errors"

	"potrack-app/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DepartmentController struct {
	DB *gorm.DB
}

func NewDepartmentController(DB *gorm.DB) *DepartmentController {
	return &DepartmentController{DB: DB}
}

func (c *DepartmentController) GetAllDepartments(ctx *fiber.Ctx) error {
	var departments []models.Department
	if err := c.DB.Find(&departments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    departments,
		"total":   len(departments),
		"success": true,
	})
}

func (c *DepartmentController) CreateDepartment(ctx *fiber.Ctx) error {
	var input struct {
		Name string `json:"name" validate:"required"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	department := models.Department{
		Name:     input.Name,
		IsActive: true,
	}

	if err := c.DB.Create(&department).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Department created successfully",
	})
}

func (c *DepartmentController) UpdateDepartment(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var department models.Department
	if err := c.DB.First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Department not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input struct {
		Name     string `json:"name" validate:"required"`
		IsActive bool   `json:"is_active"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	department.Name = input.Name
	department.IsActive = input.IsActive

	if err := c.DB.Save(&department).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Department updated successfully",
	})
}

func (c *DepartmentController) DeleteDepartment(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var department models.Department
	if err := c.DB.First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Department not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&department).Association("WorkCenters").Clear(); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Unscoped().Delete(&department).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Department deleted successfully",
	})
}
