package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Helpers de dialecto: el backend corre sobre Postgres en producción y sobre
// sqlite en desarrollo/tests, y un par de expresiones no son portables.

// LikeOp devuelve el operador de comparación insensible a mayúsculas.
// En sqlite LIKE ya es case-insensitive para ASCII.
func LikeOp(db *gorm.DB) string {
	if db.Dialector.Name() == "postgres" {
		return "ILIKE"
	}
	return "LIKE"
}

// MonthExpr trunca un timestamp a mes y lo devuelve como texto YYYY-MM.
func MonthExpr(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("to_char(date_trunc('month', %s), 'YYYY-MM')", column)
	}
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
}
