package database

import (
	"log"

	"sqlfinance-backend/internal/config"
	"sqlfinance-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	if cfg.DatabaseDSN != "" {
		DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	} else {
		// fallback de desarrollo: sqlite local
		DB, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	log.Println("Base de datos conectada. Migración completada.")
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Platform{},
		&models.Client{},
		&models.Invoice{},
		&models.Transaction{},
	)
}

// WithCtx ata la consulta al contexto de la petición (timeout por request)
func WithCtx(c *fiber.Ctx) *gorm.DB {
	return DB.WithContext(c.UserContext())
}
