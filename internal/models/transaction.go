package models

import "time"

type TransactionStatus string

const (
	StatusCompletada TransactionStatus = "Completada"
	StatusPendiente  TransactionStatus = "Pendiente"
	StatusFallida    TransactionStatus = "Fallida"
)

// TypePagoFactura - tipo fijo que enlaza una transacción con el pago de facturas
const TypePagoFactura = "Pago de Factura"

// Transaction - movimiento de dinero asociado a un cliente
type Transaction struct {
	IDTransaction       string            `gorm:"column:id_transaction;primaryKey;size:60" json:"id_transaction"`
	IDClient            string            `gorm:"column:id_client;size:50;index;not null" json:"id_client"`
	Client              *Client           `gorm:"foreignKey:IDClient" json:"-"`
	DateTimeTransaction time.Time         `gorm:"index;not null" json:"date_time_transaction"`
	AmountTransaction   float64           `gorm:"not null" json:"amount_transaction"`
	StatusTransaction   TransactionStatus `gorm:"size:20;not null;index" json:"status_transaction"` // Completada / Pendiente / Fallida
	TypeTransaction     string            `gorm:"size:100;not null" json:"type_transaction"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

func (Transaction) TableName() string { return "transactions" }
