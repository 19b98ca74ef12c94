package models

import "time"

// Invoice - factura emitida a un cliente.
// amount_paid puede superar invoiced_amount (sobrepago): el saldo
// pendiente se calcula como invoiced_amount - amount_paid y puede ser negativo.
type Invoice struct {
	InvoiceNumber  string    `gorm:"primaryKey;size:60" json:"invoice_number"`
	IDClient       string    `gorm:"column:id_client;size:50;index;not null" json:"id_client"`
	Client         *Client   `gorm:"foreignKey:IDClient" json:"-"`
	BillingPeriod  string    `gorm:"size:20;index" json:"billing_period"` // formato YYYY-MM
	InvoicedAmount float64   `gorm:"not null" json:"invoiced_amount"`
	AmountPaid     float64   `gorm:"not null;default:0" json:"amount_paid"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }
