package routes

import (
	"potrack-app/config"
	"potrack-app/controllers"
	"potrack-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupOrderRoutes(app *fiber.App, db *gorm.DB) {
	orderController := controllers.NewOrderController(db)

	api := app.Group(config.MAIN_ROUTES+"/orders", middleware.AuthMiddleware)

	api.Get("/workcenters", orderController.GetWorkCenters)
	api.Post("/", orderController.SaveOrders)
}
