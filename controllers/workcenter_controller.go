package controllers

import (
	"errors"

	"potrack-app/models"
	"potrack-app/repositories"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WorkCenterController struct {
	DB *gorm.DB
}

func NewWorkCenterController(DB *gorm.DB) *WorkCenterController {
	return &WorkCenterController{DB: DB}
}

func (c *WorkCenterController) GetAllWorkCenters(ctx *fiber.Ctx) error {
	var workcenters []models.WorkCenter
	if err := c.DB.Preload("Departments").Find(&workcenters).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":    workcenters,
		"total":   len(workcenters),
		"success": true,
	})
}

func (c *WorkCenterController) CreateWorkCenter(ctx *fiber.Ctx) error {
	var input struct {
		Name          string `json:"name" validate:"required"`
		DepartmentIDs []uint `json:"department_ids"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	workcenter := models.WorkCenter{
		Name:     input.Name,
		IsActive: true,
	}

	if err := c.DB.Create(&workcenter).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(input.DepartmentIDs) > 0 {
		var departments []models.Department
		if err := c.DB.Where("id IN ?", input.DepartmentIDs).Find(&departments).Error; err == nil {
			c.DB.Model(&workcenter).Association("Departments").Replace(departments)
		}
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Work center created successfully",
	})
}

func (c *WorkCenterController) UpdateWorkCenter(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var workcenter models.WorkCenter
	if err := c.DB.First(&workcenter, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Work center not found",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var input struct {
		Name          string `json:"name" validate:"required"`
		IsActive      bool   `json:"is_active"`
		DepartmentIDs []uint `json:"department_ids"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	workcenter.Name = input.Name
	workcenter.IsActive = input.IsActive

	if err := c.DB.Save(&workcenter).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var departments []models.Department
	if len(input.DepartmentIDs) > 0 {
		if err := c.DB.Where("id IN ?", input.DepartmentIDs).Find(&departments).Error; err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}
	if err := c.DB.Model(&workcenter).Association("Departments").Replace(departments); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Work center updated successfully",
	})
}

func (c *WorkCenterController) DeleteWorkCenter(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	idValue, err := ctx.ParamsInt("id")
	if err != nil || idValue <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid work center id: " + id,
		})
	}

	workcenter_repo := repositories.NewWorkCenterRepository(c.DB)
	if err := workcenter_repo.Delete(uint(idValue)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Work center not found",
			})
		}
		if errors.Is(err, repositories.ErrWorkCenterInUse) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"message": "Work center has production orders and cannot be deleted",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Work center deleted successfully",
	})
}
