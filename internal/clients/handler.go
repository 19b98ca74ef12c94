package clients

import (
	"errors"
	"strings"
	"time"

	"sqlfinance-backend/internal/apperr"
	"sqlfinance-backend/internal/database"
	"sqlfinance-backend/internal/ident"
	"sqlfinance-backend/internal/models"
	"sqlfinance-backend/internal/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ClientRow - cliente enriquecido con el nombre de su plataforma
type ClientRow struct {
	ID                   string    `json:"id"`
	Nombre               string    `json:"nombre"`
	Direccion            string    `json:"direccion"`
	Correo               string    `json:"correo"`
	NumeroIdentificacion string    `json:"numero_identificacion"`
	Telefono             string    `json:"telefono"`
	IDPlatform           *string   `gorm:"column:id_platform" json:"id_platform"`
	PlatformName         *string   `json:"platform_name"`
	CreatedAt            time.Time `json:"created_at"`
}

type ClientRequest struct {
	Nombre               string  `json:"nombre"`
	Direccion            string  `json:"direccion"`
	Correo               string  `json:"correo"`
	NumeroIdentificacion string  `json:"numero_identificacion"`
	Telefono             string  `json:"telefono"`
	IDPlatform           *string `json:"id_platform"`
}

const selectWithPlatform = `clientes.id, clientes.nombre, clientes.direccion, clientes.correo,
	clientes.numero_identificacion, clientes.telefono, clientes.id_platform,
	platform.platform_name, clientes.created_at`

// GET /api/clientes
func ListClientsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []ClientRow
		if err := database.WithCtx(c).
			Model(&models.Client{}).
			Select(selectWithPlatform).
			Joins("LEFT JOIN platform ON platform.id = clientes.id_platform").
			Order("clientes.nombre").
			Scan(&rows).Error; err != nil {
			return apperr.Internal("Error obteniendo clientes", err)
		}

		return response.OKCount(c, rows, len(rows))
	}
}

// GET /api/clientes/:id
func GetClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var row ClientRow
		res := database.WithCtx(c).
			Model(&models.Client{}).
			Select(selectWithPlatform).
			Joins("LEFT JOIN platform ON platform.id = clientes.id_platform").
			Where("clientes.id = ?", id).
			Limit(1).
			Scan(&row)
		if res.Error != nil {
			return apperr.Internal("Error obteniendo cliente", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("Cliente no encontrado")
		}

		return response.OK(c, row)
	}
}

// POST /api/clientes
func CreateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ClientRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Cuerpo de la petición inválido")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" || body.IDPlatform == nil || *body.IDPlatform == "" {
			return apperr.Validation("Nombre y plataforma son campos obligatorios")
		}

		client := models.Client{
			ID:                   ident.NewClientID(),
			Nombre:               body.Nombre,
			Direccion:            body.Direccion,
			Correo:               body.Correo,
			NumeroIdentificacion: body.NumeroIdentificacion,
			Telefono:             body.Telefono,
			IDPlatform:           body.IDPlatform,
		}

		if err := database.WithCtx(c).Create(&client).Error; err != nil {
			return apperr.Internal("Error creando cliente", err)
		}

		return response.Created(c, "Cliente creado exitosamente", client)
	}
}

// PUT /api/clientes/:id
// Reemplazo completo de la fila por clave.
func UpdateClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var client models.Client
		if err := database.WithCtx(c).First(&client, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Cliente no encontrado")
			}
			return apperr.Internal("Error obteniendo cliente", err)
		}

		var body ClientRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Cuerpo de la petición inválido")
		}

		client.Nombre = body.Nombre
		client.Direccion = body.Direccion
		client.Correo = body.Correo
		client.NumeroIdentificacion = body.NumeroIdentificacion
		client.Telefono = body.Telefono
		client.IDPlatform = body.IDPlatform

		if err := database.WithCtx(c).Save(&client).Error; err != nil {
			return apperr.Internal("Error actualizando cliente", err)
		}

		return response.OKMessage(c, "Cliente actualizado exitosamente", client)
	}
}

// DELETE /api/clientes/:id
// La verificación de dependientes y el borrado van en una sola transacción.
func DeleteClientHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		err := database.WithCtx(c).Transaction(func(tx *gorm.DB) error {
			var client models.Client
			if err := tx.First(&client, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("Cliente no encontrado")
				}
				return apperr.Internal("Error obteniendo cliente", err)
			}

			var numFacturas, numTransacciones int64
			if err := tx.Model(&models.Invoice{}).Where("id_client = ?", id).Count(&numFacturas).Error; err != nil {
				return apperr.Internal("Error verificando facturas asociadas", err)
			}
			if err := tx.Model(&models.Transaction{}).Where("id_client = ?", id).Count(&numTransacciones).Error; err != nil {
				return apperr.Internal("Error verificando transacciones asociadas", err)
			}
			if numFacturas > 0 || numTransacciones > 0 {
				return apperr.Conflict("No se puede eliminar el cliente porque tiene facturas o transacciones asociadas")
			}

			if err := tx.Delete(&client).Error; err != nil {
				return apperr.Internal("Error eliminando cliente", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		return response.OKMessage(c, "Cliente eliminado exitosamente", nil)
	}
}

// GET /api/clientes/:id/invoices
func ListClientInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var invoices []models.Invoice
		if err := database.WithCtx(c).
			Where("id_client = ?", id).
			Order("billing_period DESC").
			Find(&invoices).Error; err != nil {
			return apperr.Internal("Error obteniendo facturas del cliente", err)
		}

		return response.OKCount(c, invoices, len(invoices))
	}
}

// GET /api/clientes/:id/transactions
func ListClientTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var transactions []models.Transaction
		if err := database.WithCtx(c).
			Where("id_client = ?", id).
			Order("date_time_transaction DESC").
			Find(&transactions).Error; err != nil {
			return apperr.Internal("Error obteniendo transacciones del cliente", err)
		}

		return response.OKCount(c, transactions, len(transactions))
	}
}
