package queries

import (
	"sqlfinance-backend/internal/apperr"
	"sqlfinance-backend/internal/database"
	"sqlfinance-backend/internal/models"
	"sqlfinance-backend/internal/response"

	"github.com/gofiber/fiber/v2"
)

// GET /api/queries/total-paid-by-client
func TotalPaidByClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := TotalPaidByClient(database.WithCtx(c))
		if err != nil {
			return apperr.Internal("Error obteniendo total pagado por cliente", err)
		}
		return response.OKMessage(c, "Total pagado por cada cliente obtenido exitosamente", rows)
	}
}

// GET /api/queries/pending-invoices
func PendingInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := PendingInvoices(database.WithCtx(c))
		if err != nil {
			return apperr.Internal("Error obteniendo facturas pendientes", err)
		}
		return response.OKMessage(c, "Facturas pendientes con cliente y transacción obtenidas exitosamente", rows)
	}
}

// GET /api/queries/transactions-by-platform/:platformId
func TransactionsByPlatformHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		platformID := c.Params("platformId")

		rows, err := TransactionsByPlatform(database.WithCtx(c), platformID)
		if err != nil {
			return apperr.Internal("Error obteniendo transacciones por plataforma", err)
		}
		return response.OKMessage(c, "Transacciones de la plataforma "+platformID+" obtenidas exitosamente", rows)
	}
}

// GET /api/queries/platforms
// Listado liviano para el selector de plataformas del frontend.
func ListPlatformsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		type platformOption struct {
			ID           string `json:"id"`
			PlatformName string `json:"platform_name"`
		}

		var rows []platformOption
		if err := database.WithCtx(c).
			Model(&models.Platform{}).
			Select("id, platform_name").
			Order("platform_name").
			Scan(&rows).Error; err != nil {
			return apperr.Internal("Error obteniendo plataformas", err)
		}

		return response.OKMessage(c, "Plataformas obtenidas exitosamente", rows)
	}
}
