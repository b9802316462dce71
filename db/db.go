package db

import (
	"log"
	"os"

	"snackgames/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the catalog store and runs migrations and seeding.
// With DATABASE_URL set it connects to postgres, otherwise it uses a
// local sqlite file (SQLITE_PATH, default snackgames.db).
func InitDB() {
	var dialector gorm.Dialector
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "snackgames.db"
		}
		dialector = sqlite.Open(path)
	}

	var openErr error
	DB, openErr = gorm.Open(dialector, &gorm.Config{})
	if openErr != nil {
		log.Fatal("failed to connect to the database:", openErr)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("failed to migrate:", err)
	}

	if err := SeedIfEmpty(DB); err != nil {
		log.Fatal("failed to seed:", err)
	}

	log.Println("Database connected and migrated")
}

// Migrate creates or updates the catalog tables.
func Migrate(g *gorm.DB) error {
	return g.AutoMigrate(
		&models.Game{},
		&models.Comment{},
		&models.Rating{},
		&models.PlayHistory{},
	)
}
