package transactions

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

// TransactionRow - transacción enriquecida con datos del cliente
type TransactionRow struct {
	IDTransaction       string    `gorm:"column:id_transaction" json:"id_transaction"`
	IDClient            string    `gorm:"column:id_client" json:"id_client"`
	DateTimeTransaction time.Time `json:"date_time_transaction"`
	AmountTransaction   float64   `json:"amount_transaction"`
	StatusTransaction   string    `json:"status_transaction"`
	TypeTransaction     string    `json:"type_transaction"`
	ClienteNombre       *string   `json:"cliente_nombre"`
	ClienteEmail        *string   `json:"cliente_email"`
	ClienteTelefono     *string   `json:"cliente_telefono,omitempty"`
}

type TransactionRequest struct {
	IDClient            string     `json:"id_client"`
	DateTimeTransaction *time.Time `json:"date_time_transaction"`
	AmountTransaction   *float64   `json:"amount_transaction"`
	StatusTransaction   string     `json:"status_transaction"`
	TypeTransaction     string     `json:"type_transaction"`
}

// TransactionStats - resumen agregado de transacciones, particionado por estado
type TransactionStats struct {
	TotalTransacciones       int64   `json:"total_transacciones"`
	TotalMonto               float64 `json:"total_monto"`
	PromedioMonto            float64 `json:"promedio_monto"`
	TransaccionesCompletadas int64   `json:"transacciones_completadas"`
	TransaccionesPendientes  int64   `json:"transacciones_pendientes"`
	TransaccionesFallidas    int64   `json:"transacciones_fallidas"`
	MontoCompletado          float64 `json:"monto_completado"`
	MontoPendiente           float64 `json:"monto_pendiente"`
}

// Stats calcula el resumen de transacciones sobre toda la tabla.
func Stats(db *gorm.DB) (*TransactionStats, error) {
	var stats TransactionStats
	err := db.Raw(`
		SELECT
			COUNT(*) AS total_transacciones,
			COALESCE(SUM(amount_transaction), 0) AS total_monto,
			COALESCE(AVG(amount_transaction), 0) AS promedio_monto,
			COUNT(CASE WHEN status_transaction = 'Completada' THEN 1 END) AS transacciones_completadas,
			COUNT(CASE WHEN status_transaction = 'Pendiente' THEN 1 END) AS transacciones_pendientes,
			COUNT(CASE WHEN status_transaction = 'Fallida' THEN 1 END) AS transacciones_fallidas,
			COALESCE(SUM(CASE WHEN status_transaction = 'Completada' THEN amount_transaction ELSE 0 END), 0) AS monto_completado,
			COALESCE(SUM(CASE WHEN status_transaction = 'Pendiente' THEN amount_transaction ELSE 0 END), 0) AS monto_pendiente
		FROM transactions
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

const selectWithClient = `transactions.id_transaction, transactions.id_client,
	transactions.date_time_transaction, transactions.amount_transaction,
	transactions.status_transaction, transactions.type_transaction,
	clientes.nombre AS cliente_nombre, clientes.correo AS cliente_email`

// GET /api/transactions
func ListTransactionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []TransactionRow
		if err := database.WithCtx(c).
			Model(&models.Transaction{}).
			Select(selectWithClient).
			Joins("LEFT JOIN clientes ON clientes.id = transactions.id_client").
			Order("transactions.date_time_transaction DESC").
			Scan(&rows).Error; err != nil {
			return apperr.Internal("Error obteniendo transacciones", err)
		}

		return response.OKCount(c, rows, len(rows))
	}
}

// GET /api/transactions/:id
func GetTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var row TransactionRow
		res := database.WithCtx(c).
			Model(&models.Transaction{}).
			Select(selectWithClient + ", clientes.telefono AS cliente_telefono").
			Joins("LEFT JOIN clientes ON clientes.id = transactions.id_client").
			Where("transactions.id_transaction = ?", id).
			Limit(1).
			Scan(&row)
		if res.Error != nil {
			return apperr.Internal("Error obteniendo transacción", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("Transacción no encontrada")
		}

		return response.OK(c, row)
	}
}

// POST /api/transactions
func CreateTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body TransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Cuerpo de la petición inválido")
		}

		if body.IDClient == "" || body.AmountTransaction == nil ||
			body.StatusTransaction == "" || body.TypeTransaction == "" {
			return apperr.Validation("Cliente, monto, estado y tipo de transacción son campos obligatorios")
		}

		when := time.Now()
		if body.DateTimeTransaction != nil {
			when = *body.DateTimeTransaction
		}

		transaction := models.Transaction{
			IDTransaction:       ident.NewTransactionID(),
			IDClient:            body.IDClient,
			DateTimeTransaction: when,
			AmountTransaction:   *body.AmountTransaction,
			StatusTransaction:   models.TransactionStatus(body.StatusTransaction),
			TypeTransaction:     body.TypeTransaction,
		}

		if err := database.WithCtx(c).Create(&transaction).Error; err != nil {
			return apperr.Internal("Error creando transacción", err)
		}

		return response.Created(c, "Transacción creada exitosamente", transaction)
	}
}

// PUT /api/transactions/:id
func UpdateTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var transaction models.Transaction
		if err := database.WithCtx(c).First(&transaction, "id_transaction = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Transacción no encontrada")
			}
			return apperr.Internal("Error obteniendo transacción", err)
		}

		var body TransactionRequest
		if err := c.BodyParser(&body); err != nil {
			return apperr.Validation("Cuerpo de la petición inválido")
		}

		transaction.IDClient = body.IDClient
		if body.DateTimeTransaction != nil {
			transaction.DateTimeTransaction = *body.DateTimeTransaction
		}
		if body.AmountTransaction != nil {
			transaction.AmountTransaction = *body.AmountTransaction
		}
		transaction.StatusTransaction = models.TransactionStatus(body.StatusTransaction)
		transaction.TypeTransaction = body.TypeTransaction

		if err := database.WithCtx(c).Save(&transaction).Error; err != nil {
			return apperr.Internal("Error actualizando transacción", err)
		}

		return response.OKMessage(c, "Transacción actualizada exitosamente", transaction)
	}
}

// DELETE /api/transactions/:id
func DeleteTransactionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		res := database.WithCtx(c).Delete(&models.Transaction{}, "id_transaction = ?", id)
		if res.Error != nil {
			return apperr.Internal("Error eliminando transacción", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("Transacción no encontrada")
		}

		return response.OKMessage(c, "Transacción eliminada exitosamente", nil)
	}
}

// GET /api/transactions/stats/summary
func TransactionStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := Stats(database.WithCtx(c))
		if err != nil {
			return apperr.Internal("Error obteniendo estadísticas", err)
		}
		return response.OK(c, stats)
	}
}

// GET /api/transactions/by-status/:status
func ListTransactionsByStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := c.Params("status")

		var rows []TransactionRow
		if err := database.WithCtx(c).
			Model(&models.Transaction{}).
			Select(selectWithClient).
			Joins("LEFT JOIN clientes ON clientes.id = transactions.id_client").
			Where("transactions.status_transaction = ?", status).
			Order("transactions.date_time_transaction DESC").
			Scan(&rows).Error; err != nil {
			return apperr.Internal("Error obteniendo transacciones por estado", err)
		}

		return response.OKCount(c, rows, len(rows))
	}
}

// GET /api/transactions/by-type/:type
func ListTransactionsByTypeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tipo := c.Params("type")

		var rows []TransactionRow
		if err := database.WithCtx(c).
			Model(&models.Transaction{}).
			Select(selectWithClient).
			Joins("LEFT JOIN clientes ON clientes.id = transactions.id_client").
			Where("transactions.type_transaction = ?", tipo).
			Order("transactions.date_time_transaction DESC").
			Scan(&rows).Error; err != nil {
			return apperr.Internal("Error obteniendo transacciones por tipo", err)
		}

		return response.OKCount(c, rows, len(rows))
	}
}
