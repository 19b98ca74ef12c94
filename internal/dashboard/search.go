package dashboard

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"sqlfinance-backend/internal/apperr"
	"sqlfinance-backend/internal/database"

	"gorm.io/gorm"
)

// Resultados de búsqueda: tres listas independientes, sin ranking combinado,
// cada clase limitada a 10 filas.

type ClientHit struct {
	ID           string  `json:"id"`
	Nombre       string  `json:"nombre"`
	Correo       string  `json:"correo"`
	Telefono     string  `json:"telefono"`
	PlatformName *string `json:"platform_name"`
	Tipo         string  `json:"tipo"`
}

type InvoiceHit struct {
	ID             string  `json:"id"`
	InvoiceNumber  string  `json:"invoice_number"`
	BillingPeriod  string  `json:"billing_period"`
	InvoicedAmount float64 `json:"invoiced_amount"`
	ClienteNombre  *string `json:"cliente_nombre"`
	Tipo           string  `json:"tipo"`
}

type TransactionHit struct {
	ID                  string    `json:"id"`
	IDTransaction       string    `gorm:"column:id_transaction" json:"id_transaction"`
	AmountTransaction   float64   `json:"amount_transaction"`
	StatusTransaction   string    `json:"status_transaction"`
	DateTimeTransaction time.Time `json:"date_time_transaction"`
	ClienteNombre       *string   `json:"cliente_nombre"`
	Tipo                string    `json:"tipo"`
}

type SearchResults struct {
	Clientes      []ClientHit      `json:"clientes"`
	Facturas      []InvoiceHit     `json:"facturas"`
	Transacciones []TransactionHit `json:"transacciones"`
}

// Search busca el término como subcadena, sin distinguir mayúsculas, en
// clientes (nombre, correo, identificación), facturas (número, nombre del
// cliente) y transacciones (id, nombre del cliente).
func Search(db *gorm.DB, q string) (*SearchResults, error) {
	// mínimo en caracteres, no en bytes ("ñ" sola no pasa)
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < 2 {
		return nil, apperr.Validation("El término de búsqueda debe tener al menos 2 caracteres")
	}

	like := database.LikeOp(db)
	term := "%" + q + "%"
	results := &SearchResults{
		Clientes:      []ClientHit{},
		Facturas:      []InvoiceHit{},
		Transacciones: []TransactionHit{},
	}

	err := db.Raw(fmt.Sprintf(`
		SELECT
			c.id,
			c.nombre,
			c.correo,
			c.telefono,
			p.platform_name,
			'cliente' AS tipo
		FROM clientes c
		LEFT JOIN platform p ON c.id_platform = p.id
		WHERE c.nombre %[1]s ? OR c.correo %[1]s ? OR c.numero_identificacion %[1]s ?
		LIMIT 10
	`, like), term, term, term).Scan(&results.Clientes).Error
	if err != nil {
		return nil, err
	}

	err = db.Raw(fmt.Sprintf(`
		SELECT
			i.invoice_number AS id,
			i.invoice_number,
			i.billing_period,
			i.invoiced_amount,
			c.nombre AS cliente_nombre,
			'factura' AS tipo
		FROM invoices i
		LEFT JOIN clientes c ON i.id_client = c.id
		WHERE i.invoice_number %[1]s ? OR c.nombre %[1]s ?
		LIMIT 10
	`, like), term, term).Scan(&results.Facturas).Error
	if err != nil {
		return nil, err
	}

	err = db.Raw(fmt.Sprintf(`
		SELECT
			t.id_transaction AS id,
			t.id_transaction,
			t.amount_transaction,
			t.status_transaction,
			t.date_time_transaction,
			c.nombre AS cliente_nombre,
			'transaccion' AS tipo
		FROM transactions t
		LEFT JOIN clientes c ON t.id_client = c.id
		WHERE t.id_transaction %[1]s ? OR c.nombre %[1]s ?
		LIMIT 10
	`, like), term, term).Scan(&results.Transacciones).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
