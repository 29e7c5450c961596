package main

import (
	"fmt"
	"log"

	"potrack-app/config"
	"potrack-app/controllers/idgen"
	"potrack-app/database"
	"potrack-app/migration"
	"potrack-app/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	// Pastikan database ada
	database.EnsureDatabaseExists(config.DBName)

	db, err := database.OpenDatabaseConnection(config.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models
	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	// Setup CORS middleware
	config.SetupCORS(app)

	// Setup routes
	routes.SetupAuthRoutes(app, db)
	routes.SetupOrderRoutes(app, db)
	routes.SetupReportRoutes(app, db)
	routes.SetupUserRoutes(app, db)
	routes.SetupMasterDataRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server berjalan di port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
