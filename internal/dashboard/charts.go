package dashboard

import (
	"fmt"
	"time"

	"sqlfinance-backend/internal/database"

	"gorm.io/gorm"
)

// PeriodBucket - facturas agrupadas por período de facturación
type PeriodBucket struct {
	BillingPeriod  string  `json:"billing_period"`
	Cantidad       int64   `json:"cantidad"`
	TotalFacturado float64 `json:"total_facturado"`
	TotalPagado    float64 `json:"total_pagado"`
}

// InvoicesByPeriod agrupa las facturas por período, los 12 períodos más recientes.
func InvoicesByPeriod(db *gorm.DB) ([]PeriodBucket, error) {
	var rows []PeriodBucket
	err := db.Raw(`
		SELECT
			billing_period,
			COUNT(*) AS cantidad,
			SUM(invoiced_amount) AS total_facturado,
			SUM(amount_paid) AS total_pagado
		FROM invoices
		GROUP BY billing_period
		ORDER BY billing_period DESC
		LIMIT 12
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// StatusBucket - transacciones agrupadas por estado
type StatusBucket struct {
	StatusTransaction string  `json:"status_transaction"`
	Cantidad          int64   `json:"cantidad"`
	TotalMonto        float64 `json:"total_monto"`
}

func TransactionsByStatus(db *gorm.DB) ([]StatusBucket, error) {
	var rows []StatusBucket
	err := db.Raw(`
		SELECT
			status_transaction,
			COUNT(*) AS cantidad,
			SUM(amount_transaction) AS total_monto
		FROM transactions
		GROUP BY status_transaction
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PlatformClientBucket - clientes por plataforma; las plataformas sin
// clientes aparecen con cantidad 0 gracias al outer join.
type PlatformClientBucket struct {
	PlatformName string `json:"platform_name"`
	Cantidad     int64  `json:"cantidad"`
}

func ClientsByPlatform(db *gorm.DB) ([]PlatformClientBucket, error) {
	var rows []PlatformClientBucket
	err := db.Raw(`
		SELECT
			p.platform_name,
			COUNT(c.id) AS cantidad
		FROM platform p
		LEFT JOIN clientes c ON p.id = c.id_platform
		GROUP BY p.id, p.platform_name
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthBucket - transacciones agrupadas por mes calendario (etiqueta YYYY-MM)
type MonthBucket struct {
	Mes        string  `json:"mes"`
	Cantidad   int64   `json:"cantidad"`
	TotalMonto float64 `json:"total_monto"`
}

// TransactionsByMonth agrupa las transacciones de los últimos 12 meses por mes
// calendario. Los meses sin transacciones se omiten, no se rellenan con cero.
func TransactionsByMonth(db *gorm.DB, now time.Time) ([]MonthBucket, error) {
	monthExpr := database.MonthExpr(db, "date_time_transaction")
	since := now.AddDate(0, -12, 0)

	var rows []MonthBucket
	err := db.Raw(fmt.Sprintf(`
		SELECT
			%s AS mes,
			COUNT(*) AS cantidad,
			SUM(amount_transaction) AS total_monto
		FROM transactions
		WHERE date_time_transaction >= ?
		GROUP BY %s
		ORDER BY mes DESC
	`, monthExpr, monthExpr), since).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
