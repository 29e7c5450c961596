package routes

import (
	"potrack-app/config"
	"potrack-app/controllers"
	"potrack-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMasterDataRoutes(app *fiber.App, db *gorm.DB) {
	workCenterController := controllers.NewWorkCenterController(db)
	departmentController := controllers.NewDepartmentController(db)

	api := app.Group(config.MAIN_ROUTES+"/admin", middleware.AuthMiddleware, middleware.AdminOnly)

	api.Get("/workcenters", workCenterController.GetAllWorkCenters)
	api.Post("/workcenters", workCenterController.CreateWorkCenter)
	api.Put("/workcenters/:id", workCenterController.UpdateWorkCenter)
	api.Delete("/workcenters/:id", workCenterController.DeleteWorkCenter)

	api.Get("/departments", departmentController.GetAllDepartments)
	api.Post("/departments", departmentController.CreateDepartment)
	api.Put("/departments/:id", departmentController.UpdateDepartment)
	api.Delete("/departments/:id", departmentController.DeleteDepartment)
}
