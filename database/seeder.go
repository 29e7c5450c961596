// database/seeder.go
package database

import (
	"log"

	"potrack-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedAdminUser(db)
	SeedWorkCenters(db)
	SeedDepartments(db)
}

func SeedAdminUser(db *gorm.DB) {
	var existing models.User
	if err := db.Where("username = ?", "admin").First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("Failed to hash admin password: %v", err)
			}
			admin := models.User{
				Username: "admin",
				Password: string(hashed),
				IsAdmin:  true,
				IsActive: true,
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Fatalf("Failed to seed admin user: %v", err)
			}
		} else {
			log.Fatalf("Unexpected DB error: %v", err)
		}
	}
}

func SeedWorkCenters(db *gorm.DB) {
	var count int64
	db.Model(&models.WorkCenter{}).Count(&count)
	if count > 0 {
		return
	}

	workcenters := []string{
		"WC001 - Assembly",
		"WC002 - Machining",
		"WC003 - Welding",
		"WC004 - Painting",
		"WC005 - Quality Control",
	}

	for _, name := range workcenters {
		db.Create(&models.WorkCenter{Name: name, IsActive: true})
	}
}

func SeedDepartments(db *gorm.DB) {
	var count int64
	db.Model(&models.Department{}).Count(&count)
	if count > 0 {
		return
	}

	departments := []string{
		"Engineering",
		"Production",
		"Quality Control",
		"Maintenance",
		"Operations",
		"Management",
	}

	for _, name := range departments {
		db.Create(&models.Department{Name: name, IsActive: true})
	}
}
