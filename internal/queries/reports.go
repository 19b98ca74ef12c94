// Package queries implementa las consultas analíticas cruzadas: saldo por
// cliente, facturas pendientes con su transacción de pago y transacciones por
// plataforma.
package queries

import (
	"time"

	"gorm.io/gorm"
)

// ClientBalanceRow - totales pagado/facturado/pendiente por cliente. Clientes
// sin facturas aparecen con ceros (outer join + COALESCE).
type ClientBalanceRow struct {
	ID             string  `json:"id"`
	ClientName     string  `json:"client_name"`
	ClientEmail    string  `json:"client_email"`
	PlatformName   *string `json:"platform_name"`
	TotalPaid      float64 `json:"total_paid"`
	TotalInvoiced  float64 `json:"total_invoiced"`
	PendingBalance float64 `json:"pending_balance"` // puede ser negativo por sobrepago
}

func TotalPaidByClient(db *gorm.DB) ([]ClientBalanceRow, error) {
	var rows []ClientBalanceRow
	err := db.Raw(`
		SELECT
			c.id,
			c.nombre AS client_name,
			c.correo AS client_email,
			p.platform_name,
			COALESCE(SUM(i.amount_paid), 0) AS total_paid,
			COALESCE(SUM(i.invoiced_amount), 0) AS total_invoiced,
			COALESCE(SUM(i.invoiced_amount) - SUM(i.amount_paid), 0) AS pending_balance
		FROM clientes c
		LEFT JOIN platform p ON c.id_platform = p.id
		LEFT JOIN invoices i ON c.id = i.id_client
		GROUP BY c.id, c.nombre, c.correo, p.platform_name
		ORDER BY total_paid DESC, c.id ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PendingInvoiceRow - factura con saldo pendiente, junto con la transacción de
// pago asociada (tipo fijo 'Pago de Factura') si existe.
type PendingInvoiceRow struct {
	InvoiceNumber       string     `json:"invoice_number"`
	BillingPeriod       string     `json:"billing_period"`
	InvoicedAmount      float64    `json:"invoiced_amount"`
	AmountPaid          float64    `json:"amount_paid"`
	PendingAmount       float64    `json:"pending_amount"`
	ClientName          *string    `json:"client_name"`
	ClientEmail         *string    `json:"client_email"`
	ClientPhone         *string    `json:"client_phone"`
	PlatformName        *string    `json:"platform_name"`
	IDTransaction       *string    `gorm:"column:id_transaction" json:"id_transaction"`
	AmountTransaction   *float64   `json:"amount_transaction"`
	StatusTransaction   *string    `json:"status_transaction"`
	DateTimeTransaction *time.Time `json:"date_time_transaction"`
}

// PendingInvoices lista las facturas con amount_paid < invoiced_amount. El
// join con las transacciones de pago se hace por cliente: si un cliente tiene
// varias transacciones de ese tipo, la factura se repite una vez por cada una;
// los consumidores del reporte dependen de esa forma.
func PendingInvoices(db *gorm.DB) ([]PendingInvoiceRow, error) {
	var rows []PendingInvoiceRow
	err := db.Raw(`
		SELECT
			i.invoice_number,
			i.billing_period,
			i.invoiced_amount,
			i.amount_paid,
			(i.invoiced_amount - i.amount_paid) AS pending_amount,
			c.nombre AS client_name,
			c.correo AS client_email,
			c.telefono AS client_phone,
			p.platform_name,
			t.id_transaction,
			t.amount_transaction,
			t.status_transaction,
			t.date_time_transaction
		FROM invoices i
		LEFT JOIN clientes c ON i.id_client = c.id
		LEFT JOIN platform p ON c.id_platform = p.id
		LEFT JOIN transactions t ON i.id_client = t.id_client
			AND t.type_transaction = 'Pago de Factura'
		WHERE i.amount_paid < i.invoiced_amount
		ORDER BY (i.invoiced_amount - i.amount_paid) DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PlatformTransactionRow - transacción de un cliente de la plataforma, con la
// factura del cliente al lado. Un cliente con varias facturas repite la
// transacción por cada una (fan-out conservado).
type PlatformTransactionRow struct {
	IDTransaction       string    `gorm:"column:id_transaction" json:"id_transaction"`
	AmountTransaction   float64   `json:"amount_transaction"`
	StatusTransaction   string    `json:"status_transaction"`
	TypeTransaction     string    `json:"type_transaction"`
	DateTimeTransaction time.Time `json:"date_time_transaction"`
	ClientName          *string   `json:"client_name"`
	ClientEmail         *string   `json:"client_email"`
	InvoiceNumber       *string   `json:"invoice_number"`
	InvoicedAmount      *float64  `json:"invoiced_amount"`
	AmountPaid          *float64  `json:"amount_paid"`
	PlatformName        *string   `json:"platform_name"`
}

// TransactionsByPlatform resuelve la plataforma vía la clave foránea del
// cliente y filtra por su id.
func TransactionsByPlatform(db *gorm.DB, platformID string) ([]PlatformTransactionRow, error) {
	var rows []PlatformTransactionRow
	err := db.Raw(`
		SELECT
			t.id_transaction,
			t.amount_transaction,
			t.status_transaction,
			t.type_transaction,
			t.date_time_transaction,
			c.nombre AS client_name,
			c.correo AS client_email,
			i.invoice_number,
			i.invoiced_amount,
			i.amount_paid,
			p.platform_name
		FROM transactions t
		LEFT JOIN clientes c ON t.id_client = c.id
		LEFT JOIN platform p ON c.id_platform = p.id
		LEFT JOIN invoices i ON t.id_client = i.id_client
		WHERE p.id = ?
		ORDER BY t.date_time_transaction DESC
	`, platformID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
