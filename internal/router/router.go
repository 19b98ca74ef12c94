package router

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"sqlfinance-backend/internal/apperr"
	"sqlfinance-backend/internal/clients"
	"sqlfinance-backend/internal/config"
	"sqlfinance-backend/internal/dashboard"
	"sqlfinance-backend/internal/invoices"
	"sqlfinance-backend/internal/platforms"
	"sqlfinance-backend/internal/queries"
	"sqlfinance-backend/internal/response"
	"sqlfinance-backend/internal/transactions"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// statusFor traduce la categoría del error a código HTTP. Es el único punto
// donde se decide el código; los handlers solo devuelven apperr.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return fiber.StatusBadRequest
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		errMsg := ""
		if ae.Err != nil {
			// el mensaje de la causa se expone tal cual (ver apperr)
			errMsg = ae.Err.Error()
		}
		return response.Fail(c, statusFor(ae.Kind), ae.Message, errMsg)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return response.Fail(c, fe.Code, fe.Message, "")
	}

	log.Println("Error no previsto:", err)
	return response.Fail(c, fiber.StatusInternalServerError, "Error interno del servidor", err.Error())
}

func New(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// timeout por petición: toda consulta hereda este contexto
	app.Use(func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), cfg.QueryTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"message":   "SQLFinance API funcionando correctamente",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Clientes
	api.Get("/clientes", clients.ListClientsHandler())
	api.Post("/clientes", clients.CreateClientHandler())
	api.Get("/clientes/:id", clients.GetClientHandler())
	api.Put("/clientes/:id", clients.UpdateClientHandler())
	api.Delete("/clientes/:id", clients.DeleteClientHandler())
	api.Get("/clientes/:id/invoices", clients.ListClientInvoicesHandler())
	api.Get("/clientes/:id/transactions", clients.ListClientTransactionsHandler())

	// Facturas (las rutas fijas van antes que :invoiceNumber)
	api.Get("/invoices", invoices.ListInvoicesHandler())
	api.Post("/invoices", invoices.CreateInvoiceHandler())
	api.Get("/invoices/stats/summary", invoices.InvoiceStatsHandler())
	api.Get("/invoices/by-period/:period", invoices.ListInvoicesByPeriodHandler())
	api.Get("/invoices/:invoiceNumber", invoices.GetInvoiceHandler())
	api.Put("/invoices/:invoiceNumber", invoices.UpdateInvoiceHandler())
	api.Delete("/invoices/:invoiceNumber", invoices.DeleteInvoiceHandler())

	// Transacciones
	api.Get("/transactions", transactions.ListTransactionsHandler())
	api.Post("/transactions", transactions.CreateTransactionHandler())
	api.Get("/transactions/stats/summary", transactions.TransactionStatsHandler())
	api.Get("/transactions/by-status/:status", transactions.ListTransactionsByStatusHandler())
	api.Get("/transactions/by-type/:type", transactions.ListTransactionsByTypeHandler())
	api.Get("/transactions/:id", transactions.GetTransactionHandler())
	api.Put("/transactions/:id", transactions.UpdateTransactionHandler())
	api.Delete("/transactions/:id", transactions.DeleteTransactionHandler())

	// Plataformas
	api.Get("/platform", platforms.ListPlatformsHandler())
	api.Post("/platform", platforms.CreatePlatformHandler())
	api.Get("/platform/:id", platforms.GetPlatformHandler())
	api.Put("/platform/:id", platforms.UpdatePlatformHandler())
	api.Delete("/platform/:id", platforms.DeletePlatformHandler())
	api.Get("/platform/:id/clientes", platforms.ListPlatformClientsHandler())
	api.Get("/platform/:id/stats", platforms.PlatformStatsHandler())

	// Dashboard
	api.Get("/dashboard/stats", dashboard.StatsHandler())
	api.Get("/dashboard/charts", dashboard.ChartsHandler())
	api.Get("/dashboard/search", dashboard.SearchHandler())

	// Consultas analíticas
	api.Get("/queries/total-paid-by-client", queries.TotalPaidByClientHandler())
	api.Get("/queries/pending-invoices", queries.PendingInvoicesHandler())
	api.Get("/queries/transactions-by-platform/:platformId", queries.TransactionsByPlatformHandler())
	api.Get("/queries/platforms", queries.ListPlatformsHandler())

	return app
}
