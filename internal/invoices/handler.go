package invoices

import (
	"errors"
	"time"

	"sqlfinance-backend/internal/apperr"
	"sqlfinance-backend/internal/database"
	"sqlfinance-backend/internal/ident"
	"sqlfinance-backend/internal/models"
	"sqlfinance-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// InvoiceRow - factura enriquecida con datos del cliente
type InvoiceRow struct {
	InvoiceNumber   string    `json:"invoice_number"`
	IDClient        string    `gorm:"column:id_client" json:"id_client"`
	BillingPeriod   string    `json:"billing_period"`
	InvoicedAmount  float64   `json:"invoiced_amount"`
	AmountPaid      float64   `json:"amount_paid"`
	ClienteNombre   *string   `json:"cliente_nombre"`
	ClienteEmail    *string   `json:"cliente_email"`
	ClienteTelefono *string   `json:"cliente_telefono,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type InvoiceRequest struct {
	IDClient       string   `json:"id_client"`
	BillingPeriod  string   `json:"billing_period"`
	InvoicedAmount *float64 `json:"invoiced_amount"`
	AmountPaid     *float64 `json:"amount_paid"`
}

// InvoiceStats - resumen agregado de facturación. Los SUM van con COALESCE
// para que una tabla vacía devuelva ceros y no nulls.
type InvoiceStats struct {
	TotalFacturas      int64   `json:"total_facturas"`
	TotalFacturado     float64 `json:"total_facturado"`
	TotalPagado        float64 `json:"total_pagado"`
	TotalPendiente     float64 `json:"total_pendiente"`
	PromedioFactura    float64 `json:"promedio_factura"`
	FacturasPendientes int64   `json:"facturas_pendientes"`
	FacturasPagadas    int64   `json:"facturas_pagadas"`
}

// Stats calcula el resumen de facturación sobre toda la tabla.
func Stats(db *gorm.DB) (*InvoiceStats, error) {
	var stats InvoiceStats
	err := db.Raw(`
		SELECT
			COUNT(*) AS total_facturas,
			COALESCE(SUM(invoiced_amount), 0) AS total_facturado,
			COALESCE(SUM(amount_paid), 0) AS total_pagado,
			COALESCE(SUM(invoiced_amount) - SUM(amount_paid), 0) AS total_pendiente,
			COALESCE(AVG(invoiced_amount), 0) AS promedio_factura,
			COUNT(CASE WHEN amount_paid = 0 THEN 1 END) AS facturas_pendientes,
			COUNT(CASE WHEN amount_paid >= invoiced_amount THEN 1 END) AS facturas_pagadas
		FROM invoices
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

const selectWithClient = `invoices.invoice_number, invoices.id_client, invoices.billing_period,
	invoices.invoiced_amount, invoices.amount_paid, invoices.created_at,
	clientes.nombre AS cliente_nombre, clientes.correo AS cliente_email`

// GET /api/invoices
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []InvoiceRow
		if err := database.WithCtx(c).
			Model(&models.Invoice{}).
			Select(selectWithClient).
			Joins("LEFT JOIN clientes ON clientes.id = invoices.id_client").
			Order("invoices.billing_period DESC, invoices.invoice_number").
			Scan(&rows).Error; err != nil {
			return apperr.Internal("Error obteniendo facturas", err)
		}

		return response.OKCount(c, rows, len(rows))
	}
}

// GET /api/invoices/:invoiceNumber
func GetInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("invoiceNumber")

		var row InvoiceRow
		res := database.WithCtx(c).
			Model(&models.Invoice{}).
			Select(selectWithClient + ", clientes.telefono AS cliente_telefono").
			Joins("LEFT JOIN clientes ON clientes.id = invoices.id_client").
			Where("invoices.invoice_number = ?", number).
			Limit(1).
			Scan(&row)
		if res.Error != nil {
			return apperr.Internal("Error obteniendo factura", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("Factura no encontrada")
		}

		return response.OK(c, row)
	}
}

// POST /api/invoices
func CreateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body InvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Cuerpo de la petición inválido")
		}

		if body.IDClient == "" || body.BillingPeriod == "" || body.InvoicedAmount == nil {
			return apperr.Validation("Cliente, período de facturación y monto facturado son campos obligatorios")
		}

		invoice := models.Invoice{
			InvoiceNumber:  ident.NewInvoiceNumber(),
			IDClient:       body.IDClient,
			BillingPeriod:  body.BillingPeriod,
			InvoicedAmount: *body.InvoicedAmount,
		}
		if body.AmountPaid != nil {
			invoice.AmountPaid = *body.AmountPaid
		}

		if err := database.WithCtx(c).Create(&invoice).Error; err != nil {
			return apperr.Internal("Error creando factura", err)
		}

		return response.Created(c, "Factura creada exitosamente", invoice)
	}
}

// PUT /api/invoices/:invoiceNumber
func UpdateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("invoiceNumber")

		var invoice models.Invoice
		if err := database.WithCtx(c).First(&invoice, "invoice_number = ?", number).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Factura no encontrada")
			}
			return apperr.Internal("Error obteniendo factura", err)
		}

		var body InvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Cuerpo de la petición inválido")
		}

		invoice.IDClient = body.IDClient
		invoice.BillingPeriod = body.BillingPeriod
		if body.InvoicedAmount != nil {
			invoice.InvoicedAmount = *body.InvoicedAmount
		}
		if body.AmountPaid != nil {
			invoice.AmountPaid = *body.AmountPaid
		}

		if err := database.WithCtx(c).Save(&invoice).Error; err != nil {
			return apperr.Internal("Error actualizando factura", err)
		}

		return response.OKMessage(c, "Factura actualizada exitosamente", invoice)
	}
}

// DELETE /api/invoices/:invoiceNumber
func DeleteInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := c.Params("invoiceNumber")

		res := database.WithCtx(c).Delete(&models.Invoice{}, "invoice_number = ?", number)
		if res.Error != nil {
			return apperr.Internal("Error eliminando factura", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("Factura no encontrada")
		}

		return response.OKMessage(c, "Factura eliminada exitosamente", nil)
	}
}

// GET /api/invoices/stats/summary
func InvoiceStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := Stats(database.WithCtx(c))
		if err != nil {
			return apperr.Internal("Error obteniendo estadísticas", err)
		}
		return response.OK(c, stats)
	}
}

// GET /api/invoices/by-period/:period
func ListInvoicesByPeriodHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Params("period")

		var rows []InvoiceRow
		if err := database.WithCtx(c).
			Model(&models.Invoice{}).
			Select(selectWithClient).
			Joins("LEFT JOIN clientes ON clientes.id = invoices.id_client").
			Where("invoices.billing_period = ?", period).
			Order("invoices.invoice_number").
			Scan(&rows).Error; err != nil {
			return apperr.Internal("Error obteniendo facturas por período", err)
		}

		return response.OKCount(c, rows, len(rows))
	}
}
