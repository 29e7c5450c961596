package database

import (
	"fmt"
	"log"

	"potrack-app/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// EnsureDatabaseExists membuat database jika belum ada (server-based drivers
// only; sqlite creates its file on open).
func EnsureDatabaseExists(dbName string) {
	var dsn string
	var db *gorm.DB
	var err error

	// Connect tanpa nama database
	switch config.DBDriver {
	case "postgres":
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, config.DBPort)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "mssql":
		dsn = fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=master",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort)
		db, err = gorm.Open(sqlserver.Open(dsn), &gorm.Config{})
	case "sqlite":
		return
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", config.DBDriver)
	}

	if err != nil {
		log.Fatalf("Failed to connect to DB server: %v", err)
	}

	switch config.DBDriver {
	case "postgres":
		db.Exec("CREATE DATABASE " + dbName)
	case "mysql":
		db.Exec("CREATE DATABASE IF NOT EXISTS " + dbName)
	case "mssql":
		db.Exec("IF DB_ID('" + dbName + "') IS NULL CREATE DATABASE " + dbName)
	}
}

func OpenDatabaseConnection(dbName string) (*gorm.DB, error) {
	_, dialector := getDSNAndDialector(dbName)
	return gorm.Open(dialector, &gorm.Config{})
}

func getDSNAndDialector(dbName string) (string, gorm.Dialector) {
	switch config.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			config.DBHost, config.DBUser, config.DBPassword, dbName, config.DBPort)
		return dsn, postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dsn, mysql.Open(dsn)
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			config.DBUser, config.DBPassword, config.DBHost, config.DBPort, dbName)
		return dsn, sqlserver.Open(dsn)
	case "sqlite":
		// Development fallback, no server required
		dsn := dbName + ".db"
		return dsn, sqlite.Open(dsn)
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", config.DBDriver)
		return "", nil
	}
}
