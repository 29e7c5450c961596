package controllers

import (
	"strconv"
	"strings"
	"time"

	"potrack-app/controllers/idgen"
	"potrack-app/models"
	"potrack-app/repositories"
	"potrack-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(DB *gorm.DB) *OrderController {
	return &OrderController{DB: DB}
}

// GetWorkCenters lists the active work centers the current user may book
// movements against. Users with a department only see that department's work
// centers; admins and department-less users see all of them.
func (c *OrderController) GetWorkCenters(ctx *fiber.Ctx) error {
	isAdmin, _ := ctx.Locals("isAdmin").(bool)
	department, _ := ctx.Locals("department").(string)

	workcenter_repo := repositories.NewWorkCenterRepository(c.DB)

	var workcenters []models.WorkCenter
	var err error
	if !isAdmin && department != "" {
		workcenters, err = workcenter_repo.GetActiveForDepartment(department)
	} else {
		workcenters, err = workcenter_repo.GetActive()
	}

	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"workcenters": workcenters},
	})
}

// OrderRow is one typed batch-save line after parsing/validation.
type OrderRow struct {
	WorkCenterID    uint   `json:"workcenter_id"`
	ProductionOrder string `json:"production_order"`
	Quantity        int    `json:"quantity"`
	Remark          string `json:"remark"`
}

// ParseOrderRows converts the legacy pipe-delimited submission format
// ("workcenter_id|production_order|quantity|remark") into typed rows. A line
// without a work-center id is dropped, a non-numeric quantity becomes 0. The
// second return value is the number of non-blank lines that were dropped.
func ParseOrderRows(raw []string) ([]OrderRow, int) {
	var rows []OrderRow
	dropped := 0

	for _, line := range raw {
		if line == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) != 4 {
			dropped++
			continue
		}

		wcField := strings.TrimSpace(parts[0])
		if wcField == "" {
			dropped++
			continue
		}
		workCenterID, err := strconv.ParseUint(wcField, 10, 64)
		if err != nil || workCenterID == 0 {
			dropped++
			continue
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || quantity < 0 {
			quantity = 0
		}

		rows = append(rows, OrderRow{
			WorkCenterID:    uint(workCenterID),
			ProductionOrder: strings.TrimSpace(parts[1]),
			Quantity:        quantity,
			Remark:          strings.TrimSpace(parts[3]),
		})
	}

	return rows, dropped
}

// SaveOrders records one batch of movements. The whole batch carries a single
// direction and is committed in one transaction.
func (c *OrderController) SaveOrders(ctx *fiber.Ctx) error {
	var payload struct {
		OrderType string     `json:"order_type" validate:"required,oneof=IN OUT"`
		Rows      []OrderRow `json:"rows"`
		Orders    []string   `json:"orders"` // legacy pipe-delimited lines
	}

	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}

	validate := validator.New()
	if err := validate.Struct(payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID, ok := ctx.Locals("userID").(float64)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized: Invalid user ID",
		})
	}

	parsed, dropped := ParseOrderRows(payload.Orders)
	rows := append(payload.Rows, parsed...)

	var events []models.ProductionOrder
	skipped := dropped
	for _, row := range rows {
		// Baris tanpa work center di-skip, bukan error
		if row.WorkCenterID == 0 {
			skipped++
			continue
		}

		quantity := row.Quantity
		if quantity < 0 {
			quantity = 0
		}

		events = append(events, models.ProductionOrder{
			ID:              types.SnowflakeID(idgen.GenerateID()),
			ProductionOrder: strings.TrimSpace(row.ProductionOrder),
			WorkCenterID:    row.WorkCenterID,
			Quantity:        quantity,
			OrderType:       payload.OrderType,
			Remark:          strings.TrimSpace(row.Remark),
			UserID:          uint(userID),
			CreatedAt:       time.Now().UTC(),
		})
	}

	order_repo := repositories.NewOrderRepository(c.DB)
	if err := order_repo.CreateBatch(events); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error saving orders",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": payload.OrderType + " orders saved successfully",
		"data": fiber.Map{
			"saved":   len(events),
			"skipped": skipped,
		},
	})
}
