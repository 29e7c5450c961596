package migration

import (
	"potrack-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.WorkCenter{},
		&models.ProductionOrder{},
	)
}
