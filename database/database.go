package database

import (
	"fmt"
	"log"
	"os"

	"learncraft/config"
	"learncraft/models"
	"learncraft/progress"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// Ledger is the shared progress write authority; Views is the read side.
// Both are wired once in ConnectDb so the ledger's per-key locks are shared
// across all requests.
var (
	Ledger *progress.Ledger
	Views  *progress.Aggregator
)

// ConnectDb establishes the database connection. The driver is selected by
// DB_DRIVER (postgres by default; mysql and sqlite are also supported, the
// latter mainly for local development).
func ConnectDb() {
	db, err := gorm.Open(openDialector(), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	runMigrations(db)

	Database = DbInstance{Db: db}

	store := NewProgressStore(db)
	Ledger = progress.NewLedger(store)
	Views = progress.NewAggregator(store)
}

func openDialector() gorm.Dialector {
	switch config.AppConfig.DBDriver {
	case "sqlite":
		return sqlite.Open(config.AppConfig.DBName)
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
		)
		return mysql.Open(dsn)
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
		return postgres.Open(dsn)
	}
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lecture{},
		&models.QuizQuestion{},
		&models.StudentProgress{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}
