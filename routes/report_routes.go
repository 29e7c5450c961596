package routes

import (
	"potrack-app/config"
	"potrack-app/controllers"
	"potrack-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB) {
	reportController := controllers.NewReportController(db)
	exportController := controllers.NewExportController(db)

	api := app.Group(config.MAIN_ROUTES+"/reports", middleware.AuthMiddleware)

	api.Get("/orders", reportController.GetOrders)
	api.Get("/balance", reportController.GetBalanceReport)
	api.Get("/export", middleware.ExportAccess, exportController.ExportExcel)

	admin := app.Group(config.MAIN_ROUTES+"/admin", middleware.AuthMiddleware, middleware.AdminOnly)

	admin.Get("/dashboard", reportController.GetDashboard)
	admin.Get("/reports/orders", reportController.GetOrders)
	admin.Get("/reports/balance", reportController.GetAdminBalanceReport)
	admin.Get("/reports/export", exportController.AdminExportExcel)
	admin.Post("/reports/email", exportController.EmailReport)
	admin.Post("/orders/bulk-delete", reportController.BulkDeleteOrders)
	admin.Post("/orders/bulk-delete-by-po", reportController.BulkDeleteByProductionOrder)
}
