// Package testutil arma bases de datos sqlite en memoria para los tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"sqlfinance-backend/internal/database"
	"sqlfinance-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB abre una base sqlite en memoria aislada por test, migra el esquema y
// la deja también en database.DB para los handlers.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abriendo sqlite en memoria: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrando esquema: %v", err)
	}

	database.DB = db
	return db
}

// SeedPlatform inserta una plataforma.
func SeedPlatform(t *testing.T, db *gorm.DB, id, name string) models.Platform {
	t.Helper()
	p := models.Platform{ID: id, PlatformName: name}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("insertando plataforma %s: %v", id, err)
	}
	return p
}

// SeedClient inserta un cliente; platformID puede ser "" (sin plataforma).
func SeedClient(t *testing.T, db *gorm.DB, id, nombre, correo, platformID string) models.Client {
	t.Helper()
	c := models.Client{ID: id, Nombre: nombre, Correo: correo}
	if platformID != "" {
		c.IDPlatform = &platformID
	}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("insertando cliente %s: %v", id, err)
	}
	return c
}

// SeedInvoice inserta una factura.
func SeedInvoice(t *testing.T, db *gorm.DB, number, clientID, period string, invoiced, paid float64) models.Invoice {
	t.Helper()
	i := models.Invoice{
		InvoiceNumber:  number,
		IDClient:       clientID,
		BillingPeriod:  period,
		InvoicedAmount: invoiced,
		AmountPaid:     paid,
	}
	if err := db.Create(&i).Error; err != nil {
		t.Fatalf("insertando factura %s: %v", number, err)
	}
	return i
}

// SeedTransaction inserta una transacción.
func SeedTransaction(t *testing.T, db *gorm.DB, id, clientID string, when time.Time, amount float64, status models.TransactionStatus, tipo string) models.Transaction {
	t.Helper()
	tx := models.Transaction{
		IDTransaction:       id,
		IDClient:            clientID,
		DateTimeTransaction: when,
		AmountTransaction:   amount,
		StatusTransaction:   status,
		TypeTransaction:     tipo,
	}
	if err := db.Create(&tx).Error; err != nil {
		t.Fatalf("insertando transacción %s: %v", id, err)
	}
	return tx
}
