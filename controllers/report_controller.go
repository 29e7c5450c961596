package controllers

import (
	"strconv"

	"potrack-app/config"
	"potrack-app/models"
	"potrack-app/repositories"
	"potrack-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(DB *gorm.DB) *ReportController {
	return &ReportController{DB: DB}
}

func filterFromQuery(ctx *fiber.Ctx) repositories.OrderFilter {
	filter := repositories.OrderFilter{
		Search:   ctx.Query("search"),
		DateFrom: ctx.Query("date_from"),
		DateTo:   ctx.Query("date_to"),
	}

	if wc := ctx.Query("workcenter"); wc != "" {
		if id, err := strconv.ParseUint(wc, 10, 64); err == nil {
			filter.WorkCenterID = uint(id)
		}
	}

	return filter
}

// movementView is one report line with the timestamp rendered at the
// configured report offset.
type movementView struct {
	repositories.MovementRow
	CreatedAtDisplay string `json:"created_at_display"`
}

func renderMovements(rows []repositories.MovementRow) []movementView {
	loc := config.ReportLocation()
	views := make([]movementView, 0, len(rows))
	for _, row := range rows {
		views = append(views, movementView{
			MovementRow:      row,
			CreatedAtDisplay: row.CreatedAt.In(loc).Format("2006-01-02 15:04:05"),
		})
	}
	return views
}

// GetOrders is the movement report: every filtered ledger event, newest first.
func (c *ReportController) GetOrders(ctx *fiber.Ctx) error {
	order_repo := repositories.NewOrderRepository(c.DB)
	rows, err := order_repo.Search(filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	isAdmin, _ := ctx.Locals("isAdmin").(bool)
	excelAccess, _ := ctx.Locals("excelAccess").(bool)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"orders":           renderMovements(rows),
			"has_excel_access": isAdmin || excelAccess,
		},
	})
}

// GetBalanceReport aggregates the filtered ledger per production order and
// work center.
func (c *ReportController) GetBalanceReport(ctx *fiber.Ctx) error {
	order_repo := repositories.NewOrderRepository(c.DB)
	rows, err := order_repo.SearchUnordered(filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	summaries := services.SummarizeBalances(rows, false, config.ReportLocation())

	isAdmin, _ := ctx.Locals("isAdmin").(bool)
	excelAccess, _ := ctx.Locals("excelAccess").(bool)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"balances":         summaries,
			"has_excel_access": isAdmin || excelAccess,
		},
	})
}

// GetAdminBalanceReport additionally splits every balance line per author and
// reports the author's last activity.
func (c *ReportController) GetAdminBalanceReport(ctx *fiber.Ctx) error {
	order_repo := repositories.NewOrderRepository(c.DB)
	rows, err := order_repo.SearchUnordered(filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	summaries := services.SummarizeBalances(rows, true, config.ReportLocation())

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"balances": summaries},
	})
}

func (c *ReportController) GetDashboard(ctx *fiber.Ctx) error {
	var totalUsers, totalWorkCenters int64
	if err := c.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&totalUsers).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.DB.Model(&models.WorkCenter{}).Where("is_active = ?", true).Count(&totalWorkCenters).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	order_repo := repositories.NewOrderRepository(c.DB)

	totalIn, err := order_repo.CountByType(models.OrderTypeIn)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	totalOut, err := order_repo.CountByType(models.OrderTypeOut)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	recent, err := order_repo.Recent(10)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_users":       totalUsers,
			"total_workcenters": totalWorkCenters,
			"total_in_orders":   totalIn,
			"total_out_orders":  totalOut,
			"recent_orders":     renderMovements(recent),
		},
	})
}

// BulkDeleteOrders removes the selected ledger events by id, all in one
// transaction.
func (c *ReportController) BulkDeleteOrders(ctx *fiber.Ctx) error {
	var payload struct {
		OrderIDs []string `json:"order_ids"`
	}

	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}

	if len(payload.OrderIDs) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No orders selected for deletion",
		})
	}

	ids := make([]int64, 0, len(payload.OrderIDs))
	for _, raw := range payload.OrderIDs {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Invalid order id: " + raw,
			})
		}
		ids = append(ids, id)
	}

	order_repo := repositories.NewOrderRepository(c.DB)
	deleted, err := order_repo.BulkDeleteByIDs(ids)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error deleting orders",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Successfully deleted " + strconv.FormatInt(deleted, 10) + " production order(s)",
		"data":    fiber.Map{"deleted": deleted},
	})
}

// BulkDeleteByProductionOrder removes every event of the selected
// (production order, work center) keys.
func (c *ReportController) BulkDeleteByProductionOrder(ctx *fiber.Ctx) error {
	var payload struct {
		Keys []repositories.OrderKey `json:"keys"`
	}

	if err := ctx.BodyParser(&payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid payload",
			"error":   err.Error(),
		})
	}

	if len(payload.Keys) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "No production orders selected for deletion",
		})
	}

	order_repo := repositories.NewOrderRepository(c.DB)
	deleted, err := order_repo.BulkDeleteByKeys(payload.Keys)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error deleting production orders",
			"error":   err.Error(),
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Successfully deleted " + strconv.FormatInt(deleted, 10) + " production order(s)",
		"data":    fiber.Map{"deleted": deleted},
	})
}
