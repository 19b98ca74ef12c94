package platforms

import (
	"errors"
	"strings"

	"sqlfinance-backend/internal/apperr"
	"sqlfinance-backend/internal/clients"
	"sqlfinance-backend/internal/database"
	"sqlfinance-backend/internal/ident"
	"sqlfinance-backend/internal/models"
	"sqlfinance-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PlatformRequest struct {
	PlatformName string `json:"platform_name"`
}

// PlatformStats - resumen de una plataforma. Facturas y transacciones se
// preagregan por cliente antes del join para que el producto N×M de filas no
// infle los totales.
type PlatformStats struct {
	PlatformName        string  `json:"platform_name"`
	TotalClientes       int64   `json:"total_clientes"`
	TotalFacturas       int64   `json:"total_facturas"`
	TotalTransacciones  int64   `json:"total_transacciones"`
	TotalFacturado      float64 `json:"total_facturado"`
	TotalPagado         float64 `json:"total_pagado"`
	TotalTransaccionado float64 `json:"total_transaccionado"`
	PromedioFactura     float64 `json:"promedio_factura"`
	PromedioTransaccion float64 `json:"promedio_transaccion"`
}

// Stats calcula el resumen de una sola plataforma. Devuelve (nil, nil) si la
// plataforma no existe.
func Stats(db *gorm.DB, platformID string) (*PlatformStats, error) {
	var stats PlatformStats
	res := db.Raw(`
		SELECT
			p.platform_name,
			COUNT(DISTINCT c.id) AS total_clientes,
			COALESCE(SUM(ci.num_facturas), 0) AS total_facturas,
			COALESCE(SUM(ct.num_transacciones), 0) AS total_transacciones,
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
		WHERE p.id = ?
		GROUP BY p.id, p.platform_name
	`, platformID).Scan(&stats)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	// promedios a partir de los totales preagregados
	if stats.TotalFacturas > 0 {
		stats.PromedioFactura = stats.TotalFacturado / float64(stats.TotalFacturas)
	}
	if stats.TotalTransacciones > 0 {
		stats.PromedioTransaccion = stats.TotalTransaccionado / float64(stats.TotalTransacciones)
	}

	return &stats, nil
}

// GET /api/platform
func ListPlatformsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var platforms []models.Platform
		if err := database.WithCtx(c).
			Order("platform_name").
			Find(&platforms).Error; err != nil {
			return apperr.Internal("Error obteniendo plataformas", err)
		}

		return response.OKCount(c, platforms, len(platforms))
	}
}

// GET /api/platform/:id
func GetPlatformHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var platform models.Platform
		if err := database.WithCtx(c).First(&platform, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Plataforma no encontrada")
			}
			return apperr.Internal("Error obteniendo plataforma", err)
		}

		return response.OK(c, platform)
	}
}

// GET /api/platform/:id/clientes
func ListPlatformClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var rows []clients.ClientRow
		if err := database.WithCtx(c).
			Model(&models.Client{}).
			Select(`clientes.id, clientes.nombre, clientes.direccion, clientes.correo,
				clientes.numero_identificacion, clientes.telefono, clientes.id_platform,
				platform.platform_name, clientes.created_at`).
			Joins("LEFT JOIN platform ON platform.id = clientes.id_platform").
			Where("clientes.id_platform = ?", id).
			Order("clientes.nombre").
			Scan(&rows).Error; err != nil {
			return apperr.Internal("Error obteniendo clientes de la plataforma", err)
		}

		return response.OKCount(c, rows, len(rows))
	}
}

// GET /api/platform/:id/stats
func PlatformStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		stats, err := Stats(database.WithCtx(c), id)
		if err != nil {
			return apperr.Internal("Error obteniendo estadísticas de la plataforma", err)
		}
		if stats == nil {
			return apperr.NotFound("Plataforma no encontrada")
		}

		return response.OK(c, stats)
	}
}

// POST /api/platform
func CreatePlatformHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PlatformRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Cuerpo de la petición inválido")
		}

		body.PlatformName = strings.TrimSpace(body.PlatformName)
		if body.PlatformName == "" {
			return apperr.Validation("Nombre de plataforma es obligatorio")
		}

		platform := models.Platform{
			ID:           ident.NewPlatformID(),
			PlatformName: body.PlatformName,
		}

		if err := database.WithCtx(c).Create(&platform).Error; err != nil {
			return apperr.Internal("Error creando plataforma", err)
		}

		return response.Created(c, "Plataforma creada exitosamente", platform)
	}
}

// PUT /api/platform/:id
func UpdatePlatformHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var platform models.Platform
		if err := database.WithCtx(c).First(&platform, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Plataforma no encontrada")
			}
			return apperr.Internal("Error obteniendo plataforma", err)
		}

		var body PlatformRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Cuerpo de la petición inválido")
		}

		platform.PlatformName = body.PlatformName

		if err := database.WithCtx(c).Save(&platform).Error; err != nil {
			return apperr.Internal("Error actualizando plataforma", err)
		}

		return response.OKMessage(c, "Plataforma actualizada exitosamente", platform)
	}
}

// DELETE /api/platform/:id
// Chequeo de clientes dependientes y borrado en una sola transacción.
func DeletePlatformHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		err := database.WithCtx(c).Transaction(func(tx *gorm.DB) error {
			var platform models.Platform
			if err := tx.First(&platform, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("Plataforma no encontrada")
				}
				return apperr.Internal("Error obteniendo plataforma", err)
			}

			var numClientes int64
			if err := tx.Model(&models.Client{}).Where("id_platform = ?", id).Count(&numClientes).Error; err != nil {
				return apperr.Internal("Error verificando clientes asociados", err)
			}
			if numClientes > 0 {
				return apperr.Conflict("No se puede eliminar la plataforma porque tiene clientes asociados")
			}

			if err := tx.Delete(&platform).Error; err != nil {
				return apperr.Internal("Error eliminando plataforma", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		return response.OKMessage(c, "Plataforma eliminada exitosamente", nil)
	}
}
