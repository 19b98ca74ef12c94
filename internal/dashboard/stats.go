// Package dashboard implementa el motor de agregación y reporte: estadísticas
// generales, series para gráficos y búsqueda de texto libre. Todas las
// operaciones son de solo lectura y cada subestadística se calcula de forma
// independiente (no hay garantía de snapshot entre ellas).
package dashboard

import (
	"time"

	"gorm.io/gorm"
)

// GeneralCounts - conteo de las cuatro entidades base
type GeneralCounts struct {
	TotalClientes      int64 `json:"total_clientes"`
	TotalFacturas      int64 `json:"total_facturas"`
	TotalTransacciones int64 `json:"total_transacciones"`
	TotalPlataformas   int64 `json:"total_plataformas"`
}

func Counts(db *gorm.DB) (*GeneralCounts, error) {
	var counts GeneralCounts
	err := db.Raw(`
		SELECT
			(SELECT COUNT(*) FROM clientes) AS total_clientes,
			(SELECT COUNT(*) FROM invoices) AS total_facturas,
			(SELECT COUNT(*) FROM transactions) AS total_transacciones,
			(SELECT COUNT(*) FROM platform) AS total_plataformas
	`).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

// PlatformBreakdownRow - desglose por plataforma. Incluye plataformas sin
// clientes (outer join) con todos los agregados en cero.
type PlatformBreakdownRow struct {
	PlatformName        string  `json:"platform_name"`
	Clientes            int64   `json:"clientes"`
	Facturas            int64   `json:"facturas"`
	Transacciones       int64   `json:"transacciones"`
	TotalFacturado      float64 `json:"total_facturado"`
	TotalPagado         float64 `json:"total_pagado"`
	TotalTransaccionado float64 `json:"total_transaccionado"`
}

// PlatformBreakdown agrega por plataforma. Un cliente con N facturas y M
// transacciones produce N×M filas en un join plano, así que facturas y
// transacciones se preagregan por cliente antes de unirlas a la plataforma.
func PlatformBreakdown(db *gorm.DB) ([]PlatformBreakdownRow, error) {
	var rows []PlatformBreakdownRow
	err := db.Raw(`
		SELECT
			p.platform_name,
			COUNT(DISTINCT c.id) AS clientes,
			COALESCE(SUM(ci.num_facturas), 0) AS facturas,
			COALESCE(SUM(ct.num_transacciones), 0) AS transacciones,
			COALESCE(SUM(ci.total_facturado), 0) AS total_facturado,
			COALESCE(SUM(ci.total_pagado), 0) AS total_pagado,
			COALESCE(SUM(ct.total_transaccionado), 0) AS total_transaccionado
		FROM platform p
		LEFT JOIN clientes c ON c.id_platform = p.id
		LEFT JOIN (
			SELECT id_client, COUNT(*) AS num_facturas,
			       SUM(invoiced_amount) AS total_facturado,
			       SUM(amount_paid) AS total_pagado
			FROM invoices GROUP BY id_client
		) ci ON ci.id_client = c.id
		LEFT JOIN (
			SELECT id_client, COUNT(*) AS num_transacciones,
			       SUM(amount_transaction) AS total_transaccionado
			FROM transactions GROUP BY id_client
		) ct ON ct.id_client = c.id
		GROUP BY p.id, p.platform_name
		ORDER BY p.platform_name
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopClientRow - cliente del top 5 por monto facturado
type TopClientRow struct {
	Nombre         string  `json:"nombre"`
	Correo         string  `json:"correo"`
	PlatformName   *string `json:"platform_name"`
	TotalFacturado float64 `json:"total_facturado"`
	TotalPagado    float64 `json:"total_pagado"`
	TotalFacturas  int64   `json:"total_facturas"`
}

// TopClients devuelve los 5 clientes con mayor monto facturado. El desempate
// por c.id ascendente hace el orden reproducible entre llamadas.
func TopClients(db *gorm.DB) ([]TopClientRow, error) {
	var rows []TopClientRow
	err := db.Raw(`
		SELECT
			c.nombre,
			c.correo,
			p.platform_name,
			COALESCE(SUM(i.invoiced_amount), 0) AS total_facturado,
			COALESCE(SUM(i.amount_paid), 0) AS total_pagado,
			COUNT(i.invoice_number) AS total_facturas
		FROM clientes c
		LEFT JOIN platform p ON c.id_platform = p.id
		LEFT JOIN invoices i ON c.id = i.id_client
		GROUP BY c.id, c.nombre, c.correo, p.platform_name
		ORDER BY total_facturado DESC, c.id ASC
		LIMIT 5
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RecentInvoiceRow - factura reciente con nombre de cliente y plataforma.
// Cliente o plataforma ausentes quedan en null, nunca se descarta la fila.
type RecentInvoiceRow struct {
	InvoiceNumber  string  `json:"invoice_number"`
	BillingPeriod  string  `json:"billing_period"`
	InvoicedAmount float64 `json:"invoiced_amount"`
	AmountPaid     float64 `json:"amount_paid"`
	ClienteNombre  *string `json:"cliente_nombre"`
	PlatformName   *string `json:"platform_name"`
}

func RecentInvoices(db *gorm.DB) ([]RecentInvoiceRow, error) {
	var rows []RecentInvoiceRow
	err := db.Raw(`
		SELECT
			i.invoice_number,
			i.billing_period,
			i.invoiced_amount,
			i.amount_paid,
			c.nombre AS cliente_nombre,
			p.platform_name
		FROM invoices i
		LEFT JOIN clientes c ON i.id_client = c.id
		LEFT JOIN platform p ON c.id_platform = p.id
		ORDER BY i.created_at DESC
		LIMIT 10
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RecentTransactionRow - transacción reciente con nombre de cliente y plataforma
type RecentTransactionRow struct {
	IDTransaction       string    `gorm:"column:id_transaction" json:"id_transaction"`
	DateTimeTransaction time.Time `json:"date_time_transaction"`
	AmountTransaction   float64   `json:"amount_transaction"`
	StatusTransaction   string    `json:"status_transaction"`
	TypeTransaction     string    `json:"type_transaction"`
	ClienteNombre       *string   `json:"cliente_nombre"`
	PlatformName        *string   `json:"platform_name"`
}

func RecentTransactions(db *gorm.DB) ([]RecentTransactionRow, error) {
	var rows []RecentTransactionRow
	err := db.Raw(`
		SELECT
			t.id_transaction,
			t.date_time_transaction,
			t.amount_transaction,
			t.status_transaction,
			t.type_transaction,
			c.nombre AS cliente_nombre,
			p.platform_name
		FROM transactions t
		LEFT JOIN clientes c ON t.id_client = c.id
		LEFT JOIN platform p ON c.id_platform = p.id
		ORDER BY t.date_time_transaction DESC
		LIMIT 10
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
