package routes

import (
	"potrack-app/config"
	"potrack-app/controllers"
	"potrack-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB) {
	userController := controllers.NewUserController(db)

	api := app.Group(config.MAIN_ROUTES+"/admin/users", middleware.AuthMiddleware, middleware.AdminOnly)

	api.Post("/", userController.CreateUser)
	api.Get("/", userController.GetAllUsers)
	api.Get("/:id", userController.GetUserByID)
	api.Put("/:id", userController.UpdateUser)
	api.Delete("/:id", userController.DeleteUser)
}
