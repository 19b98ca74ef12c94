// Package ident genera los identificadores de las entidades. Se usan UUIDs en
// lugar de ids derivados del reloj para evitar colisiones bajo creación
// concurrente; se conservan los prefijos históricos FAC/TXN.
package ident

import "github.com/google/uuid"

func NewClientID() string {
	return uuid.NewString()
}

func NewPlatformID() string {
	return uuid.NewString()
}

func NewInvoiceNumber() string {
	return "FAC-" + uuid.NewString()
}

func NewTransactionID() string {
	return "TXN-" + uuid.NewString()
}
